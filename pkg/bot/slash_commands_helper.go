package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// getUserFromInteraction extracts the invoking user
// It handles both guild (Member) and DM (User) contexts
func getUserFromInteraction(i *discordgo.InteractionCreate) (*discordgo.User, error) {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User, nil
	}
	if i.User != nil {
		return i.User, nil
	}
	return nil, fmt.Errorf("could not determine user from interaction")
}

// displayName prefers the global display name over the username
func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		out[opt.Name] = opt
	}
	return out
}

// resolveOptionUser reads a user option, preferring the resolved payload
// Discord sends along and falling back to a REST lookup
func (h *Handler) resolveOptionUser(s Session, data discordgo.ApplicationCommandInteractionData, opt *discordgo.ApplicationCommandInteractionDataOption) (*discordgo.User, error) {
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil, fmt.Errorf("missing user option")
	}
	userID, _ := opt.Value.(string)
	if userID == "" {
		return nil, fmt.Errorf("user option %s has no ID", opt.Name)
	}

	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[userID]; ok {
			return u, nil
		}
	}

	u, err := s.User(userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	return u, nil
}
