package bot

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "ship",
		Description: "Ship two users and see their affection percentage!",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user1",
				Description: "First user",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user2",
				Description: "Second user",
				Required:    true,
			},
		},
	},
	{
		Name:        "prefix",
		Description: "Change the text command prefix for this server",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "new_prefix",
				Description: "The new prefix, e.g. !",
				Required:    true,
			},
		},
	},
}

// SlashCommandHandlers maps command names to their handler functions
var SlashCommandHandlers = map[string]func(h *Handler, s Session, i *discordgo.InteractionCreate){
	"ship":   handleShipCommand,
	"prefix": handlePrefixCommand,
}

// handlePrefixCommand handles the /prefix slash command
func handlePrefixCommand(h *Handler, s Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		h.respondEphemeral(s, i, "Prefixes can only be changed inside a server.")
		return
	}

	opt, ok := optionMap(i.ApplicationCommandData().Options)["new_prefix"]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		h.respondEphemeral(s, i, "Please provide a new prefix.")
		return
	}
	newPrefix := strings.TrimSpace(opt.StringValue())
	if newPrefix == "" {
		h.respondEphemeral(s, i, "The prefix can't be empty.")
		return
	}

	if err := h.prefixes.Set(h.ctx, i.GuildID, newPrefix); err != nil {
		log.Printf("Error saving prefix for guild %s: %v", i.GuildID, err)
		h.errs.Error(err)
		h.respondEphemeral(s, i, "Ugh, couldn't save the new prefix... Try again later?")
		return
	}

	if user, err := getUserFromInteraction(i); err == nil {
		log.Printf("Prefix for guild %s set to %q by %s", i.GuildID, newPrefix, user.ID)
	}

	h.respond(s, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Prefix updated to: `%s`", newPrefix),
	})
}

// InteractionCreate handles all slash command interactions
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.HandleInteraction(&DiscordSession{s}, i)
}

func (h *Handler) HandleInteraction(s Session, i *discordgo.InteractionCreate) {
	if !h.track() {
		return
	}
	defer h.wg.Done()
	defer h.errs.Recover("interactionCreate")

	// Only handle application commands (slash commands)
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name

	// Find and execute the appropriate handler
	if handler, ok := SlashCommandHandlers[commandName]; ok {
		handler(h, s, i)
	} else {
		log.Printf("Unknown slash command: %s", commandName)
	}
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	log.Println("Registering slash commands...")

	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		// Register globally (guildID = "") or for a specific guild
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.Printf("Cannot create '%s' command: %v", cmd.Name, err)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		log.Printf("Registered command: %s", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Println("Unregistering slash commands...")

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.Printf("Cannot delete '%s' command: %v", cmd.Name, err)
			return err
		}
		log.Printf("Unregistered command: %s", cmd.Name)
	}

	return nil
}
