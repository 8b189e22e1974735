package entities

// StatsRecord holds the janken statistics for a single user
type StatsRecord struct {
	Win  int `json:"win"`
	Lose int `json:"lose"`
	Draw int `json:"draw"`

	Streak        int `json:"streak"`
	MaxStreak     int `json:"max_streak"`
	LoseStreak    int `json:"lose_streak"`
	MaxLoseStreak int `json:"max_lose_streak"`
	DrawStreak    int `json:"draw_streak"`
	MaxDrawStreak int `json:"max_draw_streak"`
}

// Total returns the number of rounds played
func (r *StatsRecord) Total() int {
	return r.Win + r.Lose + r.Draw
}

// WinRate returns wins over decided rounds as a percentage, draws excluded
func (r *StatsRecord) WinRate() float64 {
	decided := r.Win + r.Lose
	if decided == 0 {
		return 0.0
	}
	return float64(r.Win) / float64(decided) * 100.0
}

// UserStats pairs a user identifier with its record
type UserStats struct {
	UserID string
	Record StatsRecord
}

// StatField names a rankable numeric field of StatsRecord
type StatField string

const (
	FieldWin           StatField = "win"
	FieldMaxStreak     StatField = "max_streak"
	FieldMaxLoseStreak StatField = "max_lose_streak"
	FieldMaxDrawStreak StatField = "max_draw_streak"
)

// RankableFields lists the fields shown by the ranking command, in display order
var RankableFields = []StatField{FieldWin, FieldMaxStreak, FieldMaxLoseStreak, FieldMaxDrawStreak}

// Value extracts the field from a record. ok is false for unknown fields.
func (f StatField) Value(r *StatsRecord) (value int, ok bool) {
	switch f {
	case FieldWin:
		return r.Win, true
	case FieldMaxStreak:
		return r.MaxStreak, true
	case FieldMaxLoseStreak:
		return r.MaxLoseStreak, true
	case FieldMaxDrawStreak:
		return r.MaxDrawStreak, true
	}
	return 0, false
}
