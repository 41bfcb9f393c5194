package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"shipbot/pkg/ship"

	"github.com/bwmarrin/discordgo"
)

const (
	shipColor    = 0x9B59B6
	shipFilename = "ship.png"
)

var errShipUsage = errors.New("ship needs one or two mentioned users")

// shipReply is shared by the text and slash surfaces so both send the same thing
type shipReply struct {
	Embeds []*discordgo.MessageEmbed
	Files  []*discordgo.File
}

// resolveShipPair applies the text rules: one mention pairs the author with
// it, two mentions pair them, anything else is a usage error.
func resolveShipPair(author *discordgo.User, mentions []*discordgo.User) (*discordgo.User, *discordgo.User, error) {
	switch len(mentions) {
	case 1:
		return author, mentions[0], nil
	case 2:
		return mentions[0], mentions[1], nil
	default:
		return nil, nil, errShipUsage
	}
}

func (h *Handler) buildShipReply(ctx context.Context, a, b *discordgo.User) (*shipReply, error) {
	result := ship.Score(a.Username, b.Username)

	img, err := h.renderer.Render(ctx, a.AvatarURL(h.avatarSize), b.AvatarURL(h.avatarSize), result.Percentage)
	if err != nil {
		return nil, err
	}

	embed := &discordgo.MessageEmbed{
		Title: "💘 Shipping Results",
		Color: shipColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Affection", Value: fmt.Sprintf("%d%%", result.Percentage), Inline: true},
			{Name: "Result", Value: result.Label, Inline: true},
		},
		Image: &discordgo.MessageEmbedImage{URL: "attachment://" + shipFilename},
	}

	return &shipReply{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files: []*discordgo.File{{
			Name:        shipFilename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(img),
		}},
	}, nil
}

func handleShipText(h *Handler, s Session, m *discordgo.MessageCreate, prefix string, args []string) {
	a, b, err := resolveShipPair(m.Author, m.Mentions)
	if err != nil {
		h.reply(s, m, fmt.Sprintf("Please mention one or two users to ship, like `%sship @user1` or `%sship @user1 @user2`.", prefix, prefix))
		return
	}

	reply, err := h.buildShipReply(h.ctx, a, b)
	if err != nil {
		log.Printf("Error generating ship image for %s and %s: %v", a.ID, b.ID, err)
		h.errs.Error(err)
		h.reply(s, m, "Failed to generate shipping image.")
		return
	}

	h.replyComplex(s, m, &discordgo.MessageSend{
		Embeds: reply.Embeds,
		Files:  reply.Files,
	})
}

func handleShipCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	options := optionMap(data.Options)

	a, errA := h.resolveOptionUser(s, data, options["user1"])
	b, errB := h.resolveOptionUser(s, data, options["user2"])
	if err := errors.Join(errA, errB); err != nil {
		log.Printf("Error resolving ship users: %v", err)
		h.respondEphemeral(s, i, "I couldn't find one of those users.")
		return
	}

	reply, err := h.buildShipReply(h.ctx, a, b)
	if err != nil {
		log.Printf("Error generating ship image for %s and %s: %v", a.ID, b.ID, err)
		h.errs.Error(err)
		h.respondEphemeral(s, i, "Failed to generate shipping image.")
		return
	}

	h.respond(s, i, &discordgo.InteractionResponseData{
		Embeds: reply.Embeds,
		Files:  reply.Files,
	})
}
