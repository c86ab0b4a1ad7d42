// Package telegram connects the command dispatcher to a Telegram bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/atbot/internal/command"
)

// Transport receives Telegram updates and dispatches the commands in them.
type Transport struct {
	bot        *bot.Bot
	dispatcher *command.Dispatcher
	logger     *slog.Logger
}

// New creates the Telegram bot client. Private chats are presented to the
// dispatcher as direct messages to its own identity.
func New(token string, d *command.Dispatcher, logger *slog.Logger, opts ...bot.Option) (*Transport, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if d == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	t := &Transport{
		dispatcher: d,
		logger:     logger.With("component", "telegram"),
	}

	opts = append([]bot.Option{
		bot.WithMiddlewares(Middleware(t.logger)),
		bot.WithDefaultHandler(t.handleUpdate),
	}, opts...)

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	t.bot = b

	t.logger.Info("Telegram bot instance created")
	return t, nil
}

// Name identifies the transport in logs.
func (t *Transport) Name() string { return "telegram" }

// Run polls for updates until ctx is cancelled.
func (t *Transport) Run(ctx context.Context) error {
	t.logger.Info("Starting Telegram bot listener")
	t.bot.Start(ctx)
	t.logger.Info("Telegram bot listener stopped")

	if ctx.Err() == nil {
		return errors.New("telegram listener stopped unexpectedly")
	}
	return nil
}

func (t *Transport) handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	ev, ok := EventFromMessage(update.Message, t.dispatcher.Self())
	if !ok {
		return
	}

	chat := update.Message.Chat.ID
	replier := command.ReplierFunc(func(ctx context.Context, target, text string) error {
		chatID, err := ResolveChat(target, ev.Sender, chat)
		if err != nil {
			return err
		}
		_, err = b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return err
	})

	if err := t.dispatcher.Dispatch(ctx, ev, replier); err != nil {
		t.logger.ErrorContext(ctx, "Failed to deliver reply", "chat_id", chat, "error", err)
	}
}

// EventFromMessage converts a text message into a dispatcher event. Messages
// in private chats are addressed to self.
func EventFromMessage(msg *models.Message, self string) (command.Event, bool) {
	if msg == nil || msg.Text == "" {
		return command.Event{}, false
	}

	ev := command.Event{
		Sender:      SenderName(msg.From),
		Destination: strconv.FormatInt(msg.Chat.ID, 10),
		Text:        msg.Text,
	}
	if msg.Chat.Type == models.ChatTypePrivate {
		ev.Destination = self
	}
	return ev, true
}

// SenderName is the username, or the first name for users without one.
func SenderName(u *models.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// ResolveChat maps a reply target back to a chat ID. A target naming the
// sender is the private chat the message came from; any other target is a
// chat ID.
func ResolveChat(target, sender string, origin int64) (int64, error) {
	if target == sender {
		return origin, nil
	}
	id, err := strconv.ParseInt(target, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat %q: %w", target, err)
	}
	return id, nil
}
