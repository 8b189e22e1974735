package janken

import "github.com/naekun/naebot/pkg/entities"

// beats maps each hand to the hand it defeats
var beats = map[entities.Hand]entities.Hand{
	entities.Rock:     entities.Scissors,
	entities.Scissors: entities.Paper,
	entities.Paper:    entities.Rock,
}

// Judge returns the outcome of a round from the player's side
func Judge(player, opponent entities.Hand) entities.Outcome {
	switch {
	case player == opponent:
		return entities.OutcomeDraw
	case beats[player] == opponent:
		return entities.OutcomeWin
	default:
		return entities.OutcomeLose
	}
}

// Apply returns the record after one round with the given outcome.
// The counter for the outcome and its streak grow by one, the running maximum
// follows, and the other two streaks reset.
func Apply(r entities.StatsRecord, outcome entities.Outcome) entities.StatsRecord {
	switch outcome {
	case entities.OutcomeWin:
		r.Win++
		r.Streak++
		r.MaxStreak = max(r.MaxStreak, r.Streak)
		r.LoseStreak = 0
		r.DrawStreak = 0
	case entities.OutcomeLose:
		r.Lose++
		r.LoseStreak++
		r.MaxLoseStreak = max(r.MaxLoseStreak, r.LoseStreak)
		r.Streak = 0
		r.DrawStreak = 0
	case entities.OutcomeDraw:
		r.Draw++
		r.DrawStreak++
		r.MaxDrawStreak = max(r.MaxDrawStreak, r.DrawStreak)
		r.Streak = 0
		r.LoseStreak = 0
	}
	return r
}
