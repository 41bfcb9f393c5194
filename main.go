package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shipbot/pkg/bot"
	"shipbot/pkg/cache"
	"shipbot/pkg/config"
	"shipbot/pkg/dialogue"
	"shipbot/pkg/errlog"
	"shipbot/pkg/prefix"
	"shipbot/pkg/render"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	token := os.Getenv("TOKEN")
	if token == "" {
		log.Fatal("Missing required environment variable: TOKEN")
	}

	// Failures past this point are written to the error file and never stop the bot
	errs := errlog.New(cfg.Logging.ErrorFile)
	discordgo.Logger = errs.DiscordHook

	// Prefix store
	var backend prefix.Backend
	switch cfg.Storage.Backend {
	case "redis":
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			log.Fatal("Missing required environment variable: REDIS_URL (storage.backend is redis)")
		}
		redisCache, err := cache.NewRedisCache(redisURL, "shipbot")
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		backend = prefix.NewRedisBackend(redisCache, cfg.Storage.RedisKey)
		log.Printf("Storing prefixes in Redis hash %s", cfg.Storage.RedisKey)
	default:
		backend = prefix.NewFileBackend(cfg.Storage.PrefixFile)
		log.Printf("Storing prefixes in %s", cfg.Storage.PrefixFile)
	}

	prefixes, err := prefix.NewStore(context.Background(), backend, cfg.Bot.DefaultPrefix)
	if err != nil {
		log.Fatalf("Failed to load prefixes: %v", err)
	}

	// Image composer
	composer := render.NewComposer(
		render.Glyphs{Heart: cfg.Assets.Heart, BrokenHeart: cfg.Assets.BrokenHeart},
		render.NewFetcher(cfg.FetchTimeout(), cfg.Render.AvatarCacheSize),
	)

	// Initialize Bot Handler
	handler := bot.NewHandler(
		prefixes,
		composer,
		dialogue.NewCollector(cfg.DialogueTimeout()),
		errs,
		cfg.Render.AvatarSize,
	)

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

	// Register Handlers
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.InteractionCreate)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	// Set Bot ID in handler (so it can ignore itself)
	handler.SetBotID(dg.State.User.ID)

	// Register slash commands (empty string = global, or specify guild ID for faster testing)
	guildID := os.Getenv("DISCORD_GUILD_ID")
	registeredCommands, err := bot.RegisterSlashCommands(dg, guildID)
	if err != nil {
		log.Fatalf("Error registering slash commands: %v", err)
	}

	// Cleanup function to unregister commands on shutdown
	defer func() {
		if err := bot.UnregisterSlashCommands(dg, guildID, registeredCommands); err != nil {
			log.Printf("Error unregistering slash commands: %v", err)
		}
	}()

	if err := bot.SetStatus(dg, cfg.Bot.Status); err != nil {
		log.Printf("Error setting custom status: %v", err)
		errs.Errorf("set custom status: %v", err)
	}

	log.Printf("Logged in as %s. Press CTRL-C to exit.", dg.State.User.Username)

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Stop the gateway first so no new events race the shutdown wait
	dg.Close()
	handler.Shutdown()
}
