package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/logging"
)

const (
	interactionLogTTL  = 5 * time.Minute
	interactionLogSoft = 100
)

// dispatch routes one interaction, skipping IDs that were already handled
func (b *Bot) dispatch(i *discordgo.InteractionCreate) {
	if !b.seen.mark(i.ID) {
		logging.Default.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	b.shutdownWg.Add(1)
	defer b.shutdownWg.Done()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleSlashCommand(i)
	case discordgo.InteractionMessageComponent:
		b.handleMessageComponent(i)
	}
}

// handleSlashCommand handles all slash commands
func (b *Bot) handleSlashCommand(i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name

	cmd, err := b.registry.Get(name)
	if err != nil {
		logging.Default.Warn("Unknown command: %s", name)
		if sendErr := discord.SendErrorResponse(b.session, i, err); sendErr != nil {
			logging.Default.Error("Failed to answer unknown command %s: %v", name, sendErr)
		}
		return
	}

	if err := cmd.Handle(b.ctx, b.session, i); err != nil {
		logging.Default.Warn("Command /%s failed", name)
		logging.Default.LogError(err)
	}
}

// handleMessageComponent handles button clicks and other message components
func (b *Bot) handleMessageComponent(i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	handler, err := b.registry.Component(customID)
	if err != nil {
		logging.Default.Warn("Unknown component interaction: %s", customID)
		return
	}

	if err := handler.HandleComponent(b.ctx, b.session, i); err != nil {
		logging.Default.Warn("Component %s failed", customID)
		logging.Default.LogError(err)
	}
}

// interactionLog remembers recently handled interaction IDs so a redelivered
// event is not handled twice
type interactionLog struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	ttl     time.Duration
	cleaned time.Time
	now     func() time.Time
}

func newInteractionLog(ttl time.Duration) *interactionLog {
	return &interactionLog{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// mark records id and reports whether it was new
func (l *interactionLog) mark(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if at, ok := l.seen[id]; ok && now.Sub(at) < l.ttl {
		return false
	}
	l.seen[id] = now

	if len(l.seen) > interactionLogSoft && now.Sub(l.cleaned) > l.ttl {
		for seenID, at := range l.seen {
			if now.Sub(at) >= l.ttl {
				delete(l.seen, seenID)
			}
		}
		l.cleaned = now
	}
	return true
}

func (l *interactionLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
