package bot

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"

	"shipbot/pkg/dialogue"

	"github.com/bwmarrin/discordgo"
)

// DefaultAvatarSize is the avatar size requested from the Discord CDN
const DefaultAvatarSize = 256

type Handler struct {
	prefixes   PrefixStore
	renderer   Renderer
	collector  *dialogue.Collector
	errs       ErrorLogger
	avatarSize string
	botID      string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

func NewHandler(prefixes PrefixStore, renderer Renderer, collector *dialogue.Collector, errs ErrorLogger, avatarSize int) *Handler {
	if avatarSize <= 0 {
		avatarSize = DefaultAvatarSize
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Handler{
		prefixes:   prefixes,
		renderer:   renderer,
		collector:  collector,
		errs:       errs,
		avatarSize: strconv.Itoa(avatarSize),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (h *Handler) SetBotID(id string) {
	h.botID = id
}

// Shutdown cancels pending dialogues and waits for in-flight handlers.
// Events arriving afterwards are dropped.
func (h *Handler) Shutdown() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.cancel()
	h.wg.Wait()
}

// track registers an event with the shutdown wait group. It reports false
// once Shutdown has started.
func (h *Handler) track() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

// textCommand handles a prefixed message. args excludes the command name.
type textCommand func(h *Handler, s Session, m *discordgo.MessageCreate, prefix string, args []string)

// TextCommands maps prefixed command names to their handlers
var TextCommands = map[string]textCommand{
	"ship":   handleShipText,
	"kundli": handleKundliText,
	"help":   handleHelpText,
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	if !h.track() {
		return
	}
	defer h.wg.Done()
	defer h.errs.Recover("messageCreate")

	if m.Author == nil || m.Author.Bot || m.Author.ID == h.botID {
		return
	}

	// Answers to a pending kundli prompt never reach command parsing
	if h.collector.Offer(m.Message) {
		return
	}

	prefix := h.prefixes.Get(m.GuildID)
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	args := strings.Fields(m.Content[len(prefix):])
	if len(args) == 0 {
		return
	}

	command := strings.ToLower(args[0])
	if handler, ok := TextCommands[command]; ok {
		log.Printf("Text command %s from %s in guild %s", command, m.Author.ID, m.GuildID)
		handler(h, s, m, prefix, args[1:])
	}
}

func handleHelpText(h *Handler, s Session, m *discordgo.MessageCreate, prefix string, args []string) {
	content := "**💘 Commands**\n" +
		"`" + prefix + "ship @user1 [@user2]` ship two users (just one pairs them with you)\n" +
		"`" + prefix + "kundli @user1 @user2` match two users by birthdate\n" +
		"`/ship` and `/prefix` work as slash commands too"
	h.reply(s, m, content)
}
