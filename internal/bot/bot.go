package bot

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/config"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/pkg/discord/commands"
)

// Background is a helper that runs for as long as the bot is connected
type Background interface {
	Start(ctx context.Context)
	Stop()
}

// Bot represents the Discord bot and its dependencies
type Bot struct {
	config     *config.Config
	session    discord.SessionHandler
	registry   *commands.Registry
	commands   []*discordgo.ApplicationCommand
	background Background
	seen       *interactionLog

	ctx    context.Context
	cancel context.CancelFunc

	shutdownWg sync.WaitGroup
}

// New creates a new instance of Bot. background may be nil.
func New(cfg *config.Config, session discord.SessionHandler, registry *commands.Registry, background Background) *Bot {
	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		config:     cfg,
		session:    session,
		registry:   registry,
		commands:   make([]*discordgo.ApplicationCommand, 0),
		background: background,
		seen:       newInteractionLog(interactionLogTTL),
		ctx:        ctx,
		cancel:     cancel,
	}

	// Register handlers
	session.AddHandler(bot.handleReady)
	session.AddHandler(bot.handleInteractionCreate)

	return bot
}

// Start initializes the bot and connects to Discord
func (b *Bot) Start() error {
	// Open connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	if b.background != nil {
		b.background.Start(b.ctx)
	}

	return nil
}

// Shutdown gracefully shuts down the bot
func (b *Bot) Shutdown() {
	// Cleanup commands if in development
	if b.config.IsDevelopment() {
		if err := b.cleanupCommands(); err != nil {
			logging.Default.Warn("Failed to clean up commands: %v", err)
		}
	}

	if b.background != nil {
		b.background.Stop()
	}

	// Running slot animations settle immediately once the context is done
	b.cancel()
	b.shutdownWg.Wait()

	if err := b.session.Close(); err != nil {
		logging.Default.Error("Error closing Discord session: %v", err)
	}
}

// registerCommands creates every registered slash command on Discord
func (b *Bot) registerCommands() error {
	for _, def := range b.registry.Definitions() {
		created, err := b.session.ApplicationCommandCreate(b.config.AppID, b.config.GuildID, def)
		if err != nil {
			return fmt.Errorf("cannot create command %s: %w", def.Name, err)
		}
		b.commands = append(b.commands, created)
		logging.Default.Debug("Registered command /%s", def.Name)
	}

	logging.Default.Info("Registered %d commands", len(b.commands))
	return nil
}

// cleanupCommands deletes every command the application has in the guild
func (b *Bot) cleanupCommands() error {
	existing, err := b.session.ApplicationCommands(b.config.AppID, b.config.GuildID)
	if err != nil {
		return fmt.Errorf("cannot list commands: %w", err)
	}

	for _, cmd := range existing {
		if err := b.session.ApplicationCommandDelete(b.config.AppID, b.config.GuildID, cmd.ID); err != nil {
			return fmt.Errorf("cannot delete command %s: %w", cmd.Name, err)
		}
	}

	b.commands = b.commands[:0]
	return nil
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	logging.Default.Info("Logged in as %s", r.User.String())
}

// handleInteractionCreate handles Discord interaction events
func (b *Bot) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.dispatch(i)
}
