package commands

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/pkg/services/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SlotCommandTestSuite struct {
	interactionTestSuite
	sessions *slot.Sessions
	command  *SlotCommand
}

func TestSlotCommandSuite(t *testing.T) {
	suite.Run(t, new(SlotCommandTestSuite))
}

func (s *SlotCommandTestSuite) SetupTest() {
	s.interactionTestSuite.SetupTest()
	s.sessions = slot.NewSessions(time.Minute, 2)
	s.command = NewSlotCommand(s.sessions, 0)
}

func (s *SlotCommandTestSuite) click(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:     "click",
			Type:   discordgo.InteractionMessageComponent,
			Member: &discordgo.Member{User: s.user},
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: discordgo.ButtonComponent,
			},
		},
	}
}

func (s *SlotCommandTestSuite) expectEphemeral(content string) {
	s.session.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Type == discordgo.InteractionResponseChannelMessageWithSource &&
			r.Data.Flags == discordgo.MessageFlagsEphemeral &&
			r.Data.Content == content
	})).Return(nil).Once()
}

func (s *SlotCommandTestSuite) TestHandlePostsMachine() {
	var sent *discordgo.InteractionResponse
	s.session.On("InteractionRespond", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*discordgo.InteractionResponse) }).
		Return(nil)

	err := s.command.Handle(s.ctx, s.session, s.slash("slot"))

	s.Require().NoError(err)
	s.Equal(1, s.sessions.Len())
	s.Equal(discordgo.InteractionResponseChannelMessageWithSource, sent.Type)
	s.Require().Len(sent.Data.Embeds, 1)
	s.Equal("スロットマシン", sent.Data.Embeds[0].Title)
	s.Equal("🎰 ボタンを押してスロットを回すなえ！", sent.Data.Embeds[0].Description)

	row := sent.Data.Components[0].(discordgo.ActionsRow)
	button := row.Components[0].(discordgo.Button)
	s.Equal("回す", button.Label)
	s.Equal(discordgo.SuccessButton, button.Style)
	s.True(strings.HasPrefix(button.CustomID, slot.SpinButtonPrefix))
}

func (s *SlotCommandTestSuite) TestHandleClosesSessionWhenSendFails() {
	s.session.On("InteractionRespond", mock.Anything, mock.Anything).Return(errors.New("unknown interaction"))

	err := s.command.Handle(s.ctx, s.session, s.slash("slot"))

	s.Error(err)
	s.Zero(s.sessions.Len())
}

func (s *SlotCommandTestSuite) TestSpinAnimatesAndSettles() {
	id, machine := s.sessions.Open()
	s.session.On("InteractionRespond", mock.Anything, mock.MatchedBy(func(r *discordgo.InteractionResponse) bool {
		return r.Type == discordgo.InteractionResponseDeferredMessageUpdate
	})).Return(nil).Once()

	var edits []*discordgo.WebhookEdit
	s.session.On("InteractionResponseEdit", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { edits = append(edits, args.Get(1).(*discordgo.WebhookEdit)) }).
		Return(&discordgo.Message{}, nil)

	err := s.command.HandleComponent(s.ctx, s.session, s.click(slot.SpinButtonID(id)))

	s.Require().NoError(err)
	s.Require().Len(edits, slot.Reels*2+1)

	for _, edit := range edits[:len(edits)-1] {
		embed := (*edit.Embeds)[0]
		s.Equal("🎰 回転中...", embed.Description)
		s.Equal("結果", embed.Fields[0].Name)
		s.Len(*edit.Components, 1, "the button stays while spinning")
	}

	result, ok := machine.Result()
	s.Require().True(ok)
	final := edits[len(edits)-1]
	s.Empty(*final.Components)
	s.Equal(resultMessage(result), (*final.Embeds)[0].Description)
	s.Equal(strings.Join(result.Reels[:], " "), (*final.Embeds)[0].Fields[0].Value)
	s.Equal(strings.Join(result.Reels[:], " "), (*edits[len(edits)-2].Embeds)[0].Fields[0].Value)

	s.Equal(slot.Settled, machine.State())
	s.Zero(s.sessions.Len())
}

func (s *SlotCommandTestSuite) TestSecondClickWhileSpinning() {
	id, machine := s.sessions.Open()
	_, err := machine.Spin()
	s.Require().NoError(err)
	s.expectEphemeral("⚠️ もう回ってるなえ！少しまってなえ！")

	err = s.command.HandleComponent(s.ctx, s.session, s.click(slot.SpinButtonID(id)))

	s.NoError(err)
	s.Equal(slot.Spinning, machine.State())
	s.session.AssertExpectations(s.T())
	s.session.AssertNotCalled(s.T(), "InteractionResponseEdit", mock.Anything, mock.Anything)
}

func (s *SlotCommandTestSuite) TestExpiredSession() {
	s.expectEphemeral("⌛ " + slot.ErrSessionExpired.Message)

	err := s.command.HandleComponent(s.ctx, s.session, s.click(slot.SpinButtonID("gone")))

	s.NoError(err)
	s.session.AssertExpectations(s.T())
}

func (s *SlotCommandTestSuite) TestEditFailureStillSettles() {
	id, machine := s.sessions.Open()
	s.session.On("InteractionRespond", mock.Anything, mock.Anything).Return(nil)
	s.session.On("InteractionResponseEdit", mock.Anything, mock.Anything).Return(nil, errors.New("message deleted"))

	err := s.command.HandleComponent(s.ctx, s.session, s.click(slot.SpinButtonID(id)))

	s.Error(err)
	s.Equal(slot.Settled, machine.State())
	s.Zero(s.sessions.Len())
	s.session.AssertNumberOfCalls(s.T(), "InteractionResponseEdit", 2)
}

func TestResultMessage(t *testing.T) {
	testCases := []struct {
		reels    [slot.Reels]string
		expected string
	}{
		{[slot.Reels]string{"🐧", "🐧", "🐧"}, "🎉 大当たり！ 🐧🐧🐧 が揃ったなえ！"},
		{[slot.Reels]string{"🍒", "🔔", "🍒"}, "🙂 小当たり！ 🍒🔔🍒 のペアが揃ったなえ！"},
		{[slot.Reels]string{"🦊", "🍒", "🔔"}, "😢 残念！ 🦊🍒🔔 はハズレなえ…"},
	}

	for _, tc := range testCases {
		result := slot.Result{Reels: tc.reels, Outcome: slot.Classify(tc.reels)}
		assert.Equal(t, tc.expected, resultMessage(result))
	}
}
