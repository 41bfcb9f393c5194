package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// reply answers m in its channel, logging send failures
func (h *Handler) reply(s Session, m *discordgo.MessageCreate, content string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Printf("Error sending reply in %s: %v", m.ChannelID, err)
		h.errs.Error(err)
	}
}

func (h *Handler) replyComplex(s Session, m *discordgo.MessageCreate, data *discordgo.MessageSend) {
	data.Reference = m.Reference()
	if _, err := s.ChannelMessageSendComplex(m.ChannelID, data); err != nil {
		log.Printf("Error sending message in %s: %v", m.ChannelID, err)
		h.errs.Error(err)
	}
}

func (h *Handler) respond(s Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
		h.errs.Error(err)
	}
}

func (h *Handler) respondEphemeral(s Session, i *discordgo.InteractionCreate, content string) {
	h.respond(s, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}
