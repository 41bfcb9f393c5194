package bot

import (
	"context"
	"errors"
	"fmt"
	"log"

	"shipbot/pkg/dialogue"
	"shipbot/pkg/zodiac"

	"github.com/bwmarrin/discordgo"
)

const (
	kundliColor     = 0xFFCC00
	kundliBusyReply = "You already have a Kundli match going! Finish that one first."
)

func handleKundliText(h *Handler, s Session, m *discordgo.MessageCreate, prefix string, args []string) {
	if len(m.Mentions) < 2 {
		h.reply(s, m, fmt.Sprintf("Please mention two users to match their Kundli (e.g., `%skundli @user1 @user2`).", prefix))
		return
	}
	if h.collector.Pending(m.Author.ID) {
		h.reply(s, m, kundliBusyReply)
		return
	}
	a, b := m.Mentions[0], m.Mentions[1]
	nameA, nameB := displayName(a), displayName(b)

	state, err := h.collector.Run(h.ctx, dialogue.Request{
		ChannelID:   m.ChannelID,
		RequesterID: m.Author.ID,
		Subjects:    [2]string{nameA, nameB},
		Prompt: func(subject string) error {
			_, err := s.ChannelMessageSendReply(m.ChannelID, fmt.Sprintf("Please provide the date of birth (DD/MM/YYYY) of %s.", subject), m.Reference())
			return err
		},
	})

	var timeout *dialogue.TimeoutError
	var format *dialogue.FormatError
	switch {
	case err == nil:
	case errors.Is(err, dialogue.ErrBusy):
		h.reply(s, m, kundliBusyReply)
		return
	case errors.As(err, &timeout):
		h.reply(s, m, fmt.Sprintf("You took too long to respond with %s's DOB. Please try again.", timeout.Subject))
		return
	case errors.As(err, &format):
		h.reply(s, m, "Invalid DOB format! Please provide in the format DD/MM/YYYY.")
		return
	case errors.Is(err, context.Canceled):
		log.Printf("Kundli dialogue for %s cancelled", m.Author.ID)
		return
	default:
		log.Printf("Error running kundli dialogue for %s: %v", m.Author.ID, err)
		h.errs.Error(err)
		return
	}

	signA := state.Birthdates[dialogue.FirstSlot].Sign()
	signB := state.Birthdates[dialogue.SecondSlot].Sign()
	compatibility := zodiac.Lookup(signA, signB)

	h.replyComplex(s, m, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{kundliEmbed(nameA, nameB, signA, signB, compatibility)},
	})
}

func kundliEmbed(nameA, nameB string, signA, signB zodiac.Sign, compatibility int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🌟 Kundli Match Results 🌟",
		Color:       kundliColor,
		Description: fmt.Sprintf("%s and %s's zodiac compatibility is **%d%%**!", nameA, nameB, compatibility),
		Fields: []*discordgo.MessageEmbedField{
			{Name: nameA + "'s Zodiac", Value: string(signA), Inline: true},
			{Name: nameB + "'s Zodiac", Value: string(signB), Inline: true},
			{Name: "Compatibility", Value: fmt.Sprintf("%d%%", compatibility), Inline: false},
		},
	}
}
