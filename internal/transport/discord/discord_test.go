package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromMessage(t *testing.T) {
	t.Parallel()

	alice := &discordgo.User{ID: "100", Username: "alice"}
	botUser := &discordgo.User{ID: "999", Username: "atbot"}

	tests := []struct {
		name     string
		msg      *discordgo.Message
		wantDest string
		ok       bool
	}{
		{name: "nil message", msg: nil},
		{name: "no author", msg: &discordgo.Message{Content: "@help"}},
		{name: "own message", msg: &discordgo.Message{Author: botUser, Content: "@help", ChannelID: "c1", GuildID: "g1"}},
		{name: "empty content", msg: &discordgo.Message{Author: alice, ChannelID: "c1", GuildID: "g1"}},
		{
			name:     "guild channel",
			msg:      &discordgo.Message{Author: alice, Content: "@help", ChannelID: "c1", GuildID: "g1"},
			wantDest: "c1",
			ok:       true,
		},
		{
			name:     "direct message",
			msg:      &discordgo.Message{Author: alice, Content: "@help", ChannelID: "dm1"},
			wantDest: "atbot",
			ok:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ev, ok := EventFromMessage(tc.msg, botUser.ID, "atbot")
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, "alice", ev.Sender)
			assert.Equal(t, tc.wantDest, ev.Destination)
			assert.Equal(t, "@help", ev.Text)
		})
	}
}

func TestResolveChannel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "dm1", ResolveChannel("alice", "alice", "dm1"))
	assert.Equal(t, "c1", ResolveChannel("c1", "alice", "c1"))
}

func TestNewValidatesArguments(t *testing.T) {
	t.Parallel()
	_, err := New("", nil, nil)
	assert.Error(t, err)
	_, err = New("token", nil, nil)
	assert.Error(t, err)
}
