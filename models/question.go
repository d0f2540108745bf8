// models/question.go

package models

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a multiple choice question as returned by a question generator.
// Options order is significant: CorrectIndex points into it.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Hint         string   `json:"hint"`
	Explanation  string   `json:"explanation"`
}
