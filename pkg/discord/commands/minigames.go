package commands

import (
	"context"
	"fmt"
	"math/big"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/services/minigames"
)

var operatorNames = map[minigames.Operator]string{
	minigames.OpAdd: "足し算（+）",
	minigames.OpSub: "引き算（-）",
	minigames.OpMul: "掛け算（×）",
	minigames.OpDiv: "割り算（÷）",
}

// NaemikujiCommand handles /naemikuji
type NaemikujiCommand struct {
	service *minigames.Service
}

// NewNaemikujiCommand creates the fortune command
func NewNaemikujiCommand(service *minigames.Service) *NaemikujiCommand {
	return &NaemikujiCommand{service: service}
}

// Command returns the command definition
func (c *NaemikujiCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "naemikuji",
		Description: "なえみくじ引いて行くなえ？",
	}
}

// Handle draws a fortune for the caller
func (c *NaemikujiCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		user := discord.InteractionUser(i)
		if user == nil {
			return nil, types.NewBotError(types.ErrUserNotFound, "ユーザーがわからないなえ…")
		}
		return discord.NewResponse(
			fmt.Sprintf("🎋 %s さんのなえみくじ結果は **%s** なえ〜", user.Mention(), c.service.Fortune()),
			nil,
		), nil
	})
}

// BedwarskitCommand handles /bedwarskit
type BedwarskitCommand struct {
	service *minigames.Service
}

// NewBedwarskitCommand creates the kit recommendation command
func NewBedwarskitCommand(service *minigames.Service) *BedwarskitCommand {
	return &BedwarskitCommand{service: service}
}

// Command returns the command definition
func (c *BedwarskitCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "bedwarskit",
		Description: "なえくんがおすすめのキットを言うなえ！",
	}
}

// Handle recommends a kit to the caller
func (c *BedwarskitCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		user := discord.InteractionUser(i)
		if user == nil {
			return nil, types.NewBotError(types.ErrUserNotFound, "ユーザーがわからないなえ…")
		}
		return discord.NewResponse(
			fmt.Sprintf("💯 %s さんにおすすめのキットは **%s** なえ〜！", user.Mention(), c.service.Kit()),
			nil,
		), nil
	})
}

// SansuuCommand handles /sansuu, integer arithmetic on two operands
type SansuuCommand struct{}

// NewSansuuCommand creates the calculator command
func NewSansuuCommand() *SansuuCommand {
	return &SansuuCommand{}
}

// Command returns the command definition
func (c *SansuuCommand) Command() *discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(minigames.Operators))
	for _, op := range minigames.Operators {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  operatorNames[op],
			Value: string(op),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        "sansuu",
		Description: "整数の計算をするなえ！",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "a",
				Description: "整数1つ目なえ",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    true,
			},
			{
				Name:        "b",
				Description: "整数2つ目なえ",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Required:    true,
			},
			{
				Name:        "op",
				Description: "演算子を選ぶなえ〜",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices:     choices,
			},
		},
	}
}

// Handle evaluates a op b
func (c *SansuuCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		options := optionMap(i)
		a, aok := options["a"]
		b, bok := options["b"]
		op, opok := options["op"]
		if !aok || !bok || !opok {
			return nil, types.NewBotError(types.ErrInvalidArgument, "a・b・演算子を全部入れてなえ！")
		}

		calc, err := minigames.Calculate(
			big.NewInt(a.IntValue()),
			big.NewInt(b.IntValue()),
			minigames.Operator(op.StringValue()),
		)
		if err != nil {
			return nil, err
		}
		return discord.NewResponse(calc.String(), nil), nil
	})
}
