package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/types"
)

// codeAlreadyAcknowledged is Discord's "interaction has already been acknowledged"
const codeAlreadyAcknowledged = 40060

// ResponseEmoji maps error codes to appropriate emojis
var ResponseEmoji = map[types.ErrorCode]string{
	types.ErrInvalidCommand:  "⛔",
	types.ErrInvalidArgument: "❌",
	types.ErrDivisionByZero:  "❌",
	types.ErrSpinInProgress:  "⚠️",
	types.ErrSpinFinished:    "🏁",
	types.ErrSessionExpired:  "⌛",
	types.ErrUserNotFound:    "👤",
	types.ErrInternalError:   "💥",
	types.ErrNetworkError:    "🌐",
	types.ErrStorageError:    "💾",
	types.ErrRateLimited:     "⏱️",
}

// Response represents a Discord interaction response
type Response struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// NewResponse creates a new Response
func NewResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  false,
	}
}

// NewEphemeralResponse creates a new ephemeral Response (only visible to the user)
func NewEphemeralResponse(content string, components []discordgo.MessageComponent) *Response {
	return &Response{
		Content:    content,
		Components: components,
		Ephemeral:  true,
	}
}

// NewEmbedResponse creates a Response carrying a single embed
func NewEmbedResponse(embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) *Response {
	return &Response{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
}

// NewErrorResponse creates a new error Response
func NewErrorResponse(err error) *Response {
	var botErr *types.BotError
	if types.As(err, &botErr) {
		emoji := ResponseEmoji[botErr.Code]
		if emoji == "" {
			emoji = "❌"
		}
		return NewEphemeralResponse(fmt.Sprintf("%s %s", emoji, botErr.Message), nil)
	}
	return NewEphemeralResponse(fmt.Sprintf("❌ エラーが発生したなえ: %v", err), nil)
}

// SendResponse sends a response to a Discord interaction
func SendResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: r.data(),
	})
}

// UpdateResponse updates the message a component belongs to
func UpdateResponse(s SessionHandler, i *discordgo.InteractionCreate, r *Response) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: r.data(),
	})
}

// SendErrorResponse sends an error response
func SendErrorResponse(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	return SendResponse(s, i, NewErrorResponse(err))
}

// Defer acknowledges a slash command so the reply can arrive later as a
// followup. An interaction that was already acknowledged is not an error.
func Defer(s SessionHandler, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if IsAlreadyAcknowledged(err) {
		return nil
	}
	return err
}

// DeferUpdate acknowledges a component click without changing the message yet
func DeferUpdate(s SessionHandler, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if IsAlreadyAcknowledged(err) {
		return nil
	}
	return err
}

// Followup sends a message after the interaction was deferred
func Followup(s SessionHandler, i *discordgo.InteractionCreate, r *Response) (*discordgo.Message, error) {
	return s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      getFlags(r.Ephemeral),
	})
}

// FollowupError sends err as a followup
func FollowupError(s SessionHandler, i *discordgo.InteractionCreate, err error) error {
	_, sendErr := Followup(s, i, NewErrorResponse(err))
	return sendErr
}

// EditResponse replaces the embeds and components of the original response
func EditResponse(s SessionHandler, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

// IsAlreadyAcknowledged reports whether err is Discord's 40060 error
func IsAlreadyAcknowledged(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	return restErr.Message != nil && restErr.Message.Code == codeAlreadyAcknowledged
}

// InteractionUser returns the user behind an interaction, in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// Helper functions

func (r *Response) data() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
		Flags:      getFlags(r.Ephemeral),
	}
}

func getFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
