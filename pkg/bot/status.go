package bot

import (
	"github.com/bwmarrin/discordgo"
)

// StatusUpdater is the part of discordgo.Session that sets presence
type StatusUpdater interface {
	UpdateStatusComplex(usd discordgo.UpdateStatusData) error
}

// SetStatus shows text as the bot's custom status
func SetStatus(s StatusUpdater, text string) error {
	return s.UpdateStatusComplex(statusData(text))
}

func statusData(text string) discordgo.UpdateStatusData {
	return discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name:  "Custom Status",
				Type:  discordgo.ActivityTypeCustom,
				State: text,
				Emoji: discordgo.Emoji{Name: "💘"},
			},
		},
		Status: "online",
	}
}
