// game/view.go
package game

import "show-do-ingles/models"

// QuestionView is the part of a question a player may see right now.
type QuestionView struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex,omitempty"`
	Hint         string   `json:"hint,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Snapshot is the public view of a session, safe to send to the browser.
type Snapshot struct {
	Version            uint64            `json:"version"`
	PlayerName         string            `json:"playerName"`
	Status             models.GameStatus `json:"status"`
	Score              int               `json:"score"`
	Level              int               `json:"level"`
	MaxLevel           int               `json:"maxLevel"`
	SkipsLeft          int               `json:"skipsLeft"`
	HintUsedForCurrent bool              `json:"hintUsedForCurrent"`
	IsLoading          bool              `json:"isLoading"`
	LastError          string            `json:"lastError,omitempty"`
	Question           *QuestionView     `json:"question,omitempty"`
	Selected           *int              `json:"selected,omitempty"`
	Revealed           bool              `json:"revealed"`
	Explaining         bool              `json:"explaining"`
	LevelPrize         int               `json:"levelPrize"`
	FinalPrize         int               `json:"finalPrize"`
}

// View builds the snapshot of s. The correct index stays hidden until the
// answer is revealed, the hint until it is used and the explanation until a
// correct answer resolves.
func View(s State) Snapshot {
	snap := Snapshot{
		Version:            s.Version,
		PlayerName:         s.PlayerName,
		Status:             s.Status,
		Score:              s.Score,
		Level:              s.Level,
		MaxLevel:           MaxLevel,
		SkipsLeft:          s.SkipsLeft,
		HintUsedForCurrent: s.HintUsedForCurrent,
		IsLoading:          s.IsLoading,
		LastError:          s.LastError,
		Revealed:           s.Revealed(),
		Explaining:         s.Explaining,
		LevelPrize:         PrizeForCorrectAnswer(s.Level),
		FinalPrize:         s.FinalPrize(),
	}
	if s.Selected != noSelection {
		selected := s.Selected
		snap.Selected = &selected
	}
	if q := s.CurrentQuestion; q != nil {
		view := &QuestionView{
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
		if s.Revealed() {
			correct := q.CorrectIndex
			view.CorrectIndex = &correct
		}
		if s.HintUsedForCurrent {
			view.Hint = q.Hint
		}
		if s.Explaining {
			view.Explanation = q.Explanation
		}
		snap.Question = view
	}
	return snap
}
