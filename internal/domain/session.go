package domain

import "time"

// Stats is the durable part of a user's session.
type Stats struct {
	UserID    int64
	Score     int
	Answered  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                UserState = "idle"
	StateSelectingCategory   UserState = "selecting_category"
	StateSelectingDifficulty UserState = "selecting_difficulty"
	StateInQuiz              UserState = "in_quiz"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State        UserState
	CategoryID   int
	CategoryName string
}
