package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/types"
)

// Command is a slash command. Handle reports user facing failures to the
// interaction itself and returns the error for logging.
type Command interface {
	Command() *discordgo.ApplicationCommand
	Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error
}

// ComponentHandler handles message components whose custom ID starts with Prefix
type ComponentHandler interface {
	Prefix() string
	HandleComponent(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error
}

// Registry holds the slash commands and component handlers of the bot
type Registry struct {
	commands   map[string]Command
	order      []string
	components []ComponentHandler
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command. A command that also implements ComponentHandler
// is registered for its components too.
func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Command().Name
	if _, exists := r.commands[name]; exists {
		return types.NewBotError(types.ErrInvalidCommand, fmt.Sprintf("Command %s is already registered", name))
	}

	if handler, ok := cmd.(ComponentHandler); ok {
		for _, existing := range r.components {
			if existing.Prefix() == handler.Prefix() {
				return types.NewBotError(types.ErrInvalidCommand, fmt.Sprintf("Component prefix %s is already registered", handler.Prefix()))
			}
		}
		r.components = append(r.components, handler)
	}

	r.commands[name] = cmd
	r.order = append(r.order, name)
	return nil
}

// Get returns the command registered under name
func (r *Registry) Get(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, exists := r.commands[name]
	if !exists {
		return nil, types.NewBotError(types.ErrInvalidCommand, fmt.Sprintf("Command %s not found", name))
	}
	return cmd, nil
}

// Component returns the handler whose prefix matches customID
func (r *Registry) Component(customID string) (ComponentHandler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, handler := range r.components {
		if strings.HasPrefix(customID, handler.Prefix()) {
			return handler, nil
		}
	}
	return nil, types.NewBotError(types.ErrInvalidCommand, fmt.Sprintf("No handler for component %s", customID))
}

// Definitions returns the application commands in registration order
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*discordgo.ApplicationCommand, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.commands[name].Command())
	}
	return defs
}

// Names returns the registered command names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// optionMap indexes the options of a slash command by name
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

// deferAndFollowup defers the interaction, runs reply and sends its result
// or its error as the followup
func deferAndFollowup(s discord.SessionHandler, i *discordgo.InteractionCreate, reply func() (*discord.Response, error)) error {
	if err := discord.Defer(s, i); err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}

	resp, err := reply()
	if err != nil {
		if sendErr := discord.FollowupError(s, i, err); sendErr != nil {
			return fmt.Errorf("failed to send error followup: %w (original error: %v)", sendErr, err)
		}
		return err
	}

	_, err = discord.Followup(s, i, resp)
	return err
}
