// game/prize.go
package game

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxLevel is the top of the prize ladder. Answering it correctly wins the game.
const MaxLevel = 12

// ladder holds the prize for each level, ladder[0] being level 1.
var ladder = [MaxLevel]int{
	1000, 2000, 3000, 5000, 10000,
	20000, 40000, 80000, 150000, 250000,
	500000, 1000000,
}

// Ladder returns a copy of the prize ladder in level order.
func Ladder() []int {
	out := make([]int, MaxLevel)
	copy(out, ladder[:])
	return out
}

// PrizeForCorrectAnswer is the amount added to the score for a correct answer at level.
// Levels outside [1, MaxLevel] are worth nothing.
func PrizeForCorrectAnswer(level int) int {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return ladder[level-1]
}

// FinalPrizeOnLoss is the secured prize when the game ends at level without winning:
// the previous level's prize, or zero on the first level.
func FinalPrizeOnLoss(level int) int {
	if level <= 1 {
		return 0
	}
	return PrizeForCorrectAnswer(level - 1)
}

// FinalPrizeOnWin is the top of the ladder, whatever the accumulated score.
func FinalPrizeOnWin() int {
	return ladder[MaxLevel-1]
}

// FormatPrize renders an amount the way the show announces it, e.g. "R$ 1.000.000".
func FormatPrize(amount int) string {
	return message.NewPrinter(language.BrazilianPortuguese).Sprintf("R$ %d", amount)
}
