// models/game.go

package models

// GameStatus is the top level screen a game session is on.
type GameStatus string

const (
	StatusStart       GameStatus = "START"
	StatusPlaying     GameStatus = "PLAYING"
	StatusGameOver    GameStatus = "GAMEOVER"
	StatusWin         GameStatus = "WIN"
	StatusLeaderboard GameStatus = "LEADERBOARD"
)

// Ended reports whether the status is one of the end screens.
func (s GameStatus) Ended() bool {
	return s == StatusGameOver || s == StatusWin
}
