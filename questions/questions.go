// questions/questions.go

// Package questions produces multiple choice English questions for a level.
package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"show-do-ingles/models"
)

// ErrInvalidQuestion reports a generator response that is not a usable question.
var ErrInvalidQuestion = errors.New("invalid question")

// invalidQuestionMessage is what the player sees for ErrInvalidQuestion.
const invalidQuestionMessage = "Não foi possível gerar uma pergunta válida. Tente novamente."

// Error carries a message fit for players next to the underlying cause.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the player facing text.
func (e *Error) UserMessage() string { return e.Message }

// Decode parses a generator JSON payload into a question and checks its shape.
// Any failure is reported as ErrInvalidQuestion with the player facing message.
func Decode(raw string) (models.Question, error) {
	var q models.Question
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &q); err != nil {
		return models.Question{}, invalid(fmt.Errorf("decode: %w", err))
	}
	if err := Validate(q); err != nil {
		return models.Question{}, invalid(err)
	}
	return q, nil
}

// Validate checks that q has a prompt, exactly four options and a correct
// index pointing at one of them.
func Validate(q models.Question) error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("empty question text")
	}
	if len(q.Options) != models.OptionCount {
		return fmt.Errorf("expected %d options, got %d", models.OptionCount, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	return nil
}

func invalid(cause error) error {
	return &Error{Message: invalidQuestionMessage, Err: fmt.Errorf("%w: %w", ErrInvalidQuestion, cause)}
}
