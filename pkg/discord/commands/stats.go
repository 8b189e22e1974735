package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/naekun/naebot/internal/discord"
	"github.com/naekun/naebot/internal/types"
	"github.com/naekun/naebot/pkg/entities"
	"github.com/naekun/naebot/pkg/services/janken"
	"github.com/naekun/naebot/pkg/services/statistics"
)

// RankingSize is how many users each leaderboard shows
const RankingSize = 3

var rankingTitles = map[entities.StatField]string{
	entities.FieldWin:           "🏆 勝利数ランキング",
	entities.FieldMaxStreak:     "🔥 最高連勝ランキング",
	entities.FieldMaxLoseStreak: "☠️ 最高連敗ランキング",
	entities.FieldMaxDrawStreak: "🤝 最高連続あいこランキング",
}

// StatsCommand handles /janken_stats for displaying the caller's record
type StatsCommand struct {
	jankenService *janken.Service
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(jankenService *janken.Service) *StatsCommand {
	return &StatsCommand{jankenService: jankenService}
}

// Command returns the command definition for the stats command
func (c *StatsCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "janken_stats",
		Description: "あなたのじゃんけん戦績を表示します",
	}
}

// Handle shows the caller's janken record
func (c *StatsCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		user := discord.InteractionUser(i)
		if user == nil {
			return nil, types.NewBotError(types.ErrUserNotFound, "ユーザーがわからないなえ…")
		}

		record, err := c.jankenService.Stats(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		return discord.NewResponse(formatStats(user.Username, record), nil), nil
	})
}

func formatStats(name string, r *entities.StatsRecord) string {
	total := r.Total()
	if total == 0 {
		return "📊 まだ対戦履歴がありません！ `/janken` で遊んでみよう！"
	}

	return fmt.Sprintf(
		"📊 **%sさんのじゃんけん戦績**\n"+
			"✅ 勝ち: %d回\n"+
			"❌ 負け: %d回\n"+
			"🤝 あいこ: %d回\n"+
			"🔥 現在の連勝数: %d回\n"+
			"🏆 最高連勝数: %d回\n"+
			"☠️ 最高連敗数: %d回\n"+
			"🤝 最高連続あいこ数: %d回\n"+
			"🎯 勝率: %.1f%%（全%d回）",
		name,
		r.Win, r.Lose, r.Draw,
		r.Streak, r.MaxStreak, r.MaxLoseStreak, r.MaxDrawStreak,
		r.WinRate(), total,
	)
}

// RankingCommand handles /janken_ranking
type RankingCommand struct {
	statisticsService *statistics.Service
}

// NewRankingCommand creates the ranking command
func NewRankingCommand(statisticsService *statistics.Service) *RankingCommand {
	return &RankingCommand{statisticsService: statisticsService}
}

// Command returns the command definition
func (c *RankingCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "janken_ranking",
		Description: "じゃんけんのランキングを表示するなえ！",
	}
}

// Handle shows the four leaderboards
func (c *RankingCommand) Handle(ctx context.Context, s discord.SessionHandler, i *discordgo.InteractionCreate) error {
	return deferAndFollowup(s, i, func() (*discord.Response, error) {
		boards, err := c.statisticsService.Leaderboards(ctx, RankingSize)
		if err != nil {
			return nil, err
		}

		sections := make([]string, 0, len(boards))
		for _, board := range boards {
			sections = append(sections, formatLeaderboard(board))
		}
		return discord.NewResponse(strings.Join(sections, "\n\n"), nil), nil
	})
}

func formatLeaderboard(board *statistics.Leaderboard) string {
	title := rankingTitles[board.Field]
	if board.Candidates == 0 {
		return fmt.Sprintf("**%s**\n（データがありません）", title)
	}

	lines := []string{fmt.Sprintf("**%s**", title)}
	for _, entry := range board.Entries {
		lines = append(lines, fmt.Sprintf("%d. %s - %d回", entry.Rank, entry.Name, entry.Value))
	}
	return strings.Join(lines, "\n")
}
