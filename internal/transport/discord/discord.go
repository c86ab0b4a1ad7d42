// Package discord connects the command dispatcher to a Discord bot session.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/atbot/internal/command"
)

// Transport listens for message events on a Discord gateway session.
type Transport struct {
	session    *discordgo.Session
	dispatcher *command.Dispatcher
	logger     *slog.Logger
	ctx        context.Context
}

// New creates the session. It connects on Run.
func New(token string, d *command.Dispatcher, logger *slog.Logger) (*Transport, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token cannot be empty")
	}
	if d == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	t := &Transport{
		session:    session,
		dispatcher: d,
		logger:     logger.With("component", "discord"),
		ctx:        context.Background(),
	}
	session.AddHandler(t.handleReady)
	session.AddHandler(t.handleMessageCreate)
	return t, nil
}

// Name identifies the transport in logs.
func (t *Transport) Name() string { return "discord" }

// Run opens the gateway connection and holds it until ctx is cancelled.
func (t *Transport) Run(ctx context.Context) error {
	t.ctx = ctx
	if err := t.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	t.logger.Info("Discord session opened")

	<-ctx.Done()

	if err := t.session.Close(); err != nil {
		t.logger.Error("Error closing discord session", "error", err)
	}
	t.logger.Info("Discord session closed")
	return nil
}

func (t *Transport) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	t.logger.Info("Discord bot logged in", "username", r.User.Username, "guilds", len(r.Guilds))
}

func (t *Transport) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	var selfID string
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}

	ev, ok := EventFromMessage(m.Message, selfID, t.dispatcher.Self())
	if !ok {
		return
	}

	ctx := t.ctx
	replier := command.ReplierFunc(func(ctx context.Context, target, text string) error {
		_, err := s.ChannelMessageSend(ResolveChannel(target, ev.Sender, m.ChannelID), text, discordgo.WithContext(ctx))
		return err
	})

	if err := t.dispatcher.Dispatch(ctx, ev, replier); err != nil {
		t.logger.ErrorContext(ctx, "Failed to deliver reply", "channel_id", m.ChannelID, "error", err)
	}
}

// EventFromMessage converts a message into a dispatcher event. The bot's own
// messages are dropped; direct messages are addressed to self.
func EventFromMessage(m *discordgo.Message, botUserID, self string) (command.Event, bool) {
	if m == nil || m.Author == nil || m.Content == "" {
		return command.Event{}, false
	}
	if botUserID != "" && m.Author.ID == botUserID {
		return command.Event{}, false
	}

	ev := command.Event{
		Sender:      m.Author.Username,
		Destination: m.ChannelID,
		Text:        m.Content,
	}
	if m.GuildID == "" {
		ev.Destination = self
	}
	return ev, true
}

// ResolveChannel maps a reply target back to a channel ID. A target naming
// the sender is the DM channel the message came from.
func ResolveChannel(target, sender, origin string) string {
	if target == sender {
		return origin
	}
	return target
}
