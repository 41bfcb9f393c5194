package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Session interface abstracts discordgo.Session for testing
type Session interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	User(userID string) (*discordgo.User, error)
}

// DiscordSession adapts discordgo.Session to the Session interface
type DiscordSession struct {
	*discordgo.Session
}

func (s *DiscordSession) User(userID string) (*discordgo.User, error) {
	return s.Session.User(userID)
}

// Renderer builds the ship image for two avatar URLs
type Renderer interface {
	Render(ctx context.Context, avatarURLA, avatarURLB string, percentage int) ([]byte, error)
}

// PrefixStore resolves and updates per-guild text command prefixes
type PrefixStore interface {
	Get(guildID string) string
	Set(ctx context.Context, guildID, prefix string) error
}

// ErrorLogger records failures that end an invocation. Recover is deferred
// by every event handler.
type ErrorLogger interface {
	Error(err error)
	Recover(where string)
}
