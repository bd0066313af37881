package postgres

import (
	"database/sql"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// EnsureSession creates a session row if not exists
func (r *SessionRepo) EnsureSession(userID int64) error {
	query := `
		INSERT INTO sessions (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetStats returns the user's score and answered totals.
// Returns nil when no session row exists yet.
func (r *SessionRepo) GetStats(userID int64) (*domain.Stats, error) {
	var s domain.Stats
	query := `
		SELECT user_id, score, answered, created_at, updated_at
		FROM sessions
		WHERE user_id = $1
	`
	err := r.db.QueryRow(query, userID).Scan(
		&s.UserID, &s.Score, &s.Answered, &s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// RecordAnswer increments answered and, when correct, score in one statement
// so a failed write never leaves the two counters out of step.
func (r *SessionRepo) RecordAnswer(userID int64, correct bool) error {
	query := `
		INSERT INTO sessions (user_id, score, answered)
		VALUES ($1, CASE WHEN $2 THEN 1 ELSE 0 END, 1)
		ON CONFLICT (user_id)
		DO UPDATE SET
			score = sessions.score + CASE WHEN $2 THEN 1 ELSE 0 END,
			answered = sessions.answered + 1,
			updated_at = NOW()
	`
	_, err := r.db.Exec(query, userID, correct)
	return err
}

// CleanIdleSessions deletes sessions not touched for the given number of days
func (r *SessionRepo) CleanIdleSessions(days int) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE updated_at < NOW() - INTERVAL '1 day' * $1
	`
	res, err := r.db.Exec(query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
