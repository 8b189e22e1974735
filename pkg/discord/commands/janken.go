package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/entities"
	"github.com/naekun/naebot/pkg/services/janken"
)

var outcomeText = map[entities.Outcome]string{
	entities.OutcomeWin:  "あなたの勝ち！ 🎉",
	entities.OutcomeLose: "あなたの負け… 💔",
	entities.OutcomeDraw: "あいこ！ 🤝",
}

// JankenCommand handles /janken
type JankenCommand struct {
	service *janken.Service
}

// NewJankenCommand creates the janken command
func NewJankenCommand(service *janken.Service) *JankenCommand {
	return &JankenCommand{service: service}
}

// Command returns the command definition
func (c *JankenCommand) Command() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.Hands))
	for _, hand := range entities.Hands {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  hand.Label() + " " + hand.Emoji(),
			Value: string(hand),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        "janken",
		Description: "じゃんけんするなえ！（ぐー・ちょき・ぱー）",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "hand",
				Description: "あなたの手を選んでください",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices:     choices,
			},
		},
	}
}

// Handle plays one round against the bot
func (c *JankenCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		user := discord.InteractionUser(i)
		if user == nil {
			return nil, types.NewBotError(types.ErrUserNotFound, "ユーザーがわからないなえ…")
		}

		var hand entities.Hand
		if opt, ok := optionMap(i)["hand"]; ok {
			hand = entities.Hand(opt.StringValue())
		}

		result, err := c.service.Play(ctx, user.ID, hand)
		if err != nil {
			return nil, err
		}
		return discord.NewResponse(formatRound(result), nil), nil
	})
}

func formatRound(result *janken.PlayResult) string {
	return fmt.Sprintf(
		"🧍‍♂️ あなたの手: %s\n"+
			"🐧 なえくんBotの手: %s\n"+
			"🎲 結果: %s\n"+
			"🔥 現在の連勝数: %d回\n"+
			"💬 なえくんBot: %s",
		result.Round.PlayerHand.Label(),
		result.Round.BotHand.Label(),
		outcomeText[result.Round.Outcome],
		result.Record.Streak,
		result.Quote,
	)
}
