// Package console runs the dispatcher over line-oriented text streams, for
// local use without a chat network.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/edgard/atbot/internal/command"
)

// Defaults for the simulated identity.
const (
	DefaultNick    = "console"
	DefaultChannel = "#console"
)

// Transport reads one chat line per input line. A few slash commands change
// the simulated identity:
//
//	/nick <name>     speak as name
//	/join <channel>  speak in channel
//	/query           speak in a direct message to the bot
type Transport struct {
	in         io.Reader
	out        io.Writer
	outMu      sync.Mutex
	dispatcher *command.Dispatcher
	logger     *slog.Logger

	nick    string
	channel string
}

// New returns a console transport speaking as nick in channel.
func New(in io.Reader, out io.Writer, d *command.Dispatcher, nick, channel string, logger *slog.Logger) *Transport {
	if nick == "" {
		nick = DefaultNick
	}
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		in:         in,
		out:        out,
		dispatcher: d,
		logger:     logger.With("component", "console"),
		nick:       nick,
		channel:    channel,
	}
}

// Name identifies the transport in logs.
func (t *Transport) Name() string { return "console" }

// Run processes input until EOF or ctx is cancelled. On cancellation an input
// that implements io.Closer is closed so a pending read returns.
func (t *Transport) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go t.readLines(lines, readErr, done)

	for {
		select {
		case <-ctx.Done():
			t.closeInput()
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read console input: %w", err)
				}
				return nil
			}
			if ctx.Err() != nil {
				t.closeInput()
				return nil
			}
			t.handle(ctx, line)
		}
	}
}

func (t *Transport) readLines(lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(t.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-done:
			return
		}
	}
	readErr <- scanner.Err()
}

func (t *Transport) handle(ctx context.Context, line string) {
	if t.control(line) {
		return
	}
	ev := command.Event{Sender: t.nick, Destination: t.channel, Text: line}
	if err := t.dispatcher.Dispatch(ctx, ev, t); err != nil {
		t.logger.ErrorContext(ctx, "Failed to deliver reply", "error", err)
	}
}

func (t *Transport) closeInput() {
	c, ok := t.in.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		t.logger.Warn("Failed to close console input", "error", err)
	}
}

// Reply writes "[target] text".
func (t *Transport) Reply(_ context.Context, target, text string) error {
	t.outMu.Lock()
	defer t.outMu.Unlock()
	_, err := fmt.Fprintf(t.out, "[%s] %s\n", target, text)
	return err
}

func (t *Transport) control(line string) bool {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "/nick":
		if arg != "" {
			t.nick = arg
		}
	case "/join":
		if arg != "" {
			t.channel = arg
		}
	case "/query":
		t.channel = t.dispatcher.Self()
	default:
		return false
	}
	return true
}
