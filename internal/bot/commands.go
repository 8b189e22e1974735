package bot

import (
	"fmt"
	"time"

	"github.com/naekun/naebot/pkg/discord/commands"
	"github.com/naekun/naebot/pkg/services/janken"
	"github.com/naekun/naebot/pkg/services/minigames"
	"github.com/naekun/naebot/pkg/services/slot"
	"github.com/naekun/naebot/pkg/services/statistics"
)

// Services are the game services behind the slash commands
type Services struct {
	Janken         *janken.Service
	Statistics     *statistics.Service
	Minigames      *minigames.Service
	Slots          *slot.Sessions
	SlotFrameDelay time.Duration
}

// NewRegistry builds the registry of every slash command the bot serves
func NewRegistry(services Services) (*commands.Registry, error) {
	registry := commands.NewRegistry()

	all := []commands.Command{
		commands.NewJankenCommand(services.Janken),
		commands.NewStatsCommand(services.Janken),
		commands.NewRankingCommand(services.Statistics),
		commands.NewNaemikujiCommand(services.Minigames),
		commands.NewBedwarskitCommand(services.Minigames),
		commands.NewSansuuCommand(),
		commands.NewSlotCommand(services.Slots, services.SlotFrameDelay),
	}
	for _, cmd := range all {
		if err := registry.Register(cmd); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", cmd.Command().Name, err)
		}
	}

	return registry, nil
}
