package janken

import (
	"fmt"

	"github.com/naekun/naebot/pkg/entities"
)

var loseQuotes = []string{
	"よゆなえでくさなえꉂ🤭",
	"これはよゆなえこえてなーじーꉂ🤭",
	"いーじーなーじーやなー、",
}

var drawQuotes = []string{
	"つぎはぼこなえにしてやるかーꉂ🤭",
	"ぼこなえにしてやるかー、",
	"引きなえかなー、",
}

// winQuotes returns the bot's reactions to a player win, sharper the longer the streak
func winQuotes(streak int) []string {
	switch {
	case streak >= 5:
		return []string{
			fmt.Sprintf("%d連勝とかやばなえすぎやは！", streak),
			"チートナイスーꉂ🤭",
			"絶対チートやんけ！",
		}
	case streak >= 3:
		return []string{
			fmt.Sprintf("%d連勝はやばなえ", streak),
			"ずるしてるやんけ！",
			"わざと負けてあげましたꉂ🤭",
		}
	default:
		return []string{
			"なんでこれで負けるねん！",
			"手加減してあげてたんよな〜ꉂ🤭",
			"たまたま勝ってなんやねん",
		}
	}
}

// quotesFor lists the candidate comments for an outcome
func quotesFor(outcome entities.Outcome, streak int) []string {
	switch outcome {
	case entities.OutcomeWin:
		return winQuotes(streak)
	case entities.OutcomeLose:
		return loseQuotes
	default:
		return drawQuotes
	}
}
