package testutil

import (
	"time"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestQuestion creates a test question with the correct answer at correctIdx
func NewTestQuestion(prompt string, correctIdx int) *domain.Question {
	return &domain.Question{
		Prompt:       prompt,
		Options:      []string{"Option A", "Option B", "Option C", "Option D"},
		CorrectIndex: correctIdx,
		Category:     "General Knowledge",
		Difficulty:   domain.DifficultyEasy,
	}
}

// NewTestStats creates test session stats
func NewTestStats(userID int64, score, answered int) *domain.Stats {
	return &domain.Stats{
		UserID:    userID,
		Score:     score,
		Answered:  answered,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
