package repository

import (
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
)

// SessionRepository defines session score data operations
type SessionRepository interface {
	EnsureSession(userID int64) error
	GetStats(userID int64) (*domain.Stats, error)
	RecordAnswer(userID int64, correct bool) error
	CleanIdleSessions(days int) (int64, error)
}
