package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/logging"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/services/slot"
)

// slotColor is Discord's gold
const slotColor = 0xF1C40F

// SlotCommand handles /slot and the spin button of the messages it creates
type SlotCommand struct {
	sessions   *slot.Sessions
	frameDelay time.Duration
}

// NewSlotCommand creates the slot command. frameDelay is the pause between
// animation frames.
func NewSlotCommand(sessions *slot.Sessions, frameDelay time.Duration) *SlotCommand {
	return &SlotCommand{
		sessions:   sessions,
		frameDelay: frameDelay,
	}
}

// Command returns the command definition
func (c *SlotCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "slot",
		Description: "スロットを回すなえ！",
	}
}

// Prefix implements ComponentHandler
func (c *SlotCommand) Prefix() string {
	return slot.SpinButtonPrefix
}

// Handle posts a fresh slot machine with its spin button
func (c *SlotCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	id, _ := c.sessions.Open()

	embed := &discordgo.MessageEmbed{
		Title:       "スロットマシン",
		Description: "🎰 ボタンを押してスロットを回すなえ！",
		Color:       slotColor,
	}
	if err := discord.SendResponse(s, i, discord.NewEmbedResponse(embed, spinButton(id))); err != nil {
		c.sessions.Close(id)
		return fmt.Errorf("failed to send slot machine: %w", err)
	}
	return nil
}

// HandleComponent spins the machine behind the clicked button and animates
// the reveal on the message
func (c *SlotCommand) HandleComponent(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	id, ok := slot.ParseSpinButtonID(i.MessageComponentData().CustomID)
	if !ok {
		return discord.SendErrorResponse(s, i, slot.ErrSessionExpired)
	}

	machine, err := c.sessions.Get(id)
	if err != nil {
		return discord.SendErrorResponse(s, i, err)
	}

	reveal, err := machine.Spin()
	if err != nil {
		// Someone else is spinning or it already settled; only the clicker sees this
		return discord.SendErrorResponse(s, i, err)
	}
	defer c.sessions.Close(id)

	if err := discord.DeferUpdate(s, i); err != nil {
		reveal.Finish()
		return fmt.Errorf("failed to acknowledge spin: %w", err)
	}

	components := spinButton(id)
	for {
		frame, ok := reveal.Next()
		if !ok {
			break
		}

		embed := slotEmbed("🎰 回転中...", frame.Reels)
		if err := discord.EditResponse(s, i, []*discordgo.MessageEmbed{embed}, components); err != nil {
			logging.Default.Warn("Slot %s animation stopped: %v", id, err)
			break
		}
		if frame.Last {
			break
		}
		if err := sleep(ctx, c.frameDelay); err != nil {
			break
		}
	}

	result := reveal.Finish()
	final := slotEmbed(resultMessage(result), result.Reels)
	if err := discord.EditResponse(s, i, []*discordgo.MessageEmbed{final}, nil); err != nil {
		return types.WrapError(types.ErrNetworkError, "スロットの結果を表示できなかったなえ…", err)
	}
	return nil
}

func spinButton(sessionID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "回す",
					Style:    discordgo.SuccessButton,
					CustomID: slot.SpinButtonID(sessionID),
				},
			},
		},
	}
}

func slotEmbed(description string, reels [slot.Reels]string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "スロットマシン",
		Description: description,
		Color:       slotColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "結果",
				Value: strings.Join(reels[:], " "),
			},
		},
	}
}

func resultMessage(result slot.Result) string {
	joined := strings.Join(result.Reels[:], "")
	switch result.Outcome {
	case slot.Jackpot:
		return fmt.Sprintf("🎉 大当たり！ %s が揃ったなえ！", joined)
	case slot.PartialMatch:
		return fmt.Sprintf("🙂 小当たり！ %s のペアが揃ったなえ！", joined)
	default:
		return fmt.Sprintf("😢 残念！ %s はハズレなえ…", joined)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
