// Package command turns raw chat lines into commands and routes them to the
// handler registered for their verb.
package command

import (
	"strings"
	"unicode"
)

// DefaultPrefix marks a chat line as a command.
const DefaultPrefix = "@"

// Event is one inbound chat line as delivered by a transport.
type Event struct {
	Sender      string // nickname of the author, may be empty
	Destination string // channel, or the bot's own identity for a direct message
	Text        string
}

// Command is a parsed Event.
type Command struct {
	Verb    string // leading token, prefix included
	Args    string // rest of the line after one space, right-trimmed
	ReplyTo string
	Invoker string
}

// Parser extracts commands addressed to the bot named Self.
type Parser struct {
	Self   string
	Prefix string
}

// Parse reports whether ev carries a command and, if so, returns it.
// A line without the prefix is a normal non-match, not an error.
func (p Parser) Parse(ev Event) (Command, bool) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasPrefix(ev.Text, prefix) {
		return Command{}, false
	}

	// Only a plain space separates the verb; tabs stay part of the token.
	line := strings.TrimRightFunc(ev.Text, unicode.IsSpace)
	verb, args, _ := strings.Cut(line, " ")

	replyTo := ev.Destination
	if ev.Destination == p.Self {
		replyTo = ev.Sender
	}

	return Command{
		Verb:    verb,
		Args:    args,
		ReplyTo: replyTo,
		Invoker: ev.Sender,
	}, true
}

// Parse is Parser{Self: self}.Parse(ev) with the default prefix.
func Parse(ev Event, self string) (Command, bool) {
	return Parser{Self: self}.Parse(ev)
}
