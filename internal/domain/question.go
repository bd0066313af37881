package domain

import "fmt"

// OptionCount is the number of answer choices every question carries.
const OptionCount = 4

// Question is a single multiple-choice trivia item. Options are already
// shuffled; CorrectIndex points into Options.
type Question struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Category     string
	Difficulty   Difficulty
}

// CorrectAnswer returns the text of the correct option.
func (q *Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// Validate checks the question shape before it is shown to a user.
func (q *Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("question has empty prompt")
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question has %d options, want %d", len(q.Options), OptionCount)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range", q.CorrectIndex)
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	return nil
}

// AnswerResult is the outcome of one answer submission.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Next          *Question // nil when the follow-up fetch failed
	NextSeq       int64
}
