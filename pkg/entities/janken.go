package entities

import "time"

// Hand is a janken choice
type Hand string

const (
	Rock     Hand = "rock"
	Scissors Hand = "scissors"
	Paper    Hand = "paper"
)

// Hands lists every valid hand
var Hands = []Hand{Rock, Scissors, Paper}

var handLabels = map[Hand]string{
	Rock:     "ぐー",
	Scissors: "ちょき",
	Paper:    "ぱー",
}

var handEmoji = map[Hand]string{
	Rock:     "✊",
	Scissors: "✌️",
	Paper:    "✋",
}

// Valid reports whether h is one of the three hands
func (h Hand) Valid() bool {
	_, ok := handLabels[h]
	return ok
}

// Label returns the display name of the hand
func (h Hand) Label() string {
	if label, ok := handLabels[h]; ok {
		return label
	}
	return string(h)
}

// Emoji returns the hand gesture emoji
func (h Hand) Emoji() string {
	return handEmoji[h]
}

// Outcome is the result of one janken round from the player's side
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// Round is a single recorded janken round
type Round struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PlayerHand Hand      `json:"player_hand"`
	BotHand    Hand      `json:"bot_hand"`
	Outcome    Outcome   `json:"outcome"`
	Streak     int       `json:"streak"`
	PlayedAt   time.Time `json:"played_at"`
}
