package stats

import (
	"encoding/json"
	"fmt"

	"github.com/naekun/naebot/pkg/entities"
)

// storedRecord is any historical shape of a persisted record. Early versions
// only wrote win/lose/draw, later ones added the streak fields one pair at a
// time, so every field may be absent.
type storedRecord struct {
	Win           *int `json:"win"`
	Lose          *int `json:"lose"`
	Draw          *int `json:"draw"`
	Streak        *int `json:"streak"`
	MaxStreak     *int `json:"max_streak"`
	LoseStreak    *int `json:"lose_streak"`
	MaxLoseStreak *int `json:"max_lose_streak"`
	DrawStreak    *int `json:"draw_streak"`
	MaxDrawStreak *int `json:"max_draw_streak"`
}

// Upgrade converts a stored record to the current shape, filling absent fields with 0
func (s storedRecord) Upgrade() entities.StatsRecord {
	return entities.StatsRecord{
		Win:           orZero(s.Win),
		Lose:          orZero(s.Lose),
		Draw:          orZero(s.Draw),
		Streak:        orZero(s.Streak),
		MaxStreak:     orZero(s.MaxStreak),
		LoseStreak:    orZero(s.LoseStreak),
		MaxLoseStreak: orZero(s.MaxLoseStreak),
		DrawStreak:    orZero(s.DrawStreak),
		MaxDrawStreak: orZero(s.MaxDrawStreak),
	}
}

// UpgradeRecord decodes a persisted record of any schema version into the current one
func UpgradeRecord(raw json.RawMessage) (entities.StatsRecord, error) {
	var stored storedRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		return entities.StatsRecord{}, fmt.Errorf("failed to decode stats record: %w", err)
	}
	return stored.Upgrade(), nil
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
