package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSessionRepo_EnsureSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	userID := int64(123)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.EnsureSession(userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_GetStats(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedScore int
		expectedTotal int
		expectedError bool
	}{
		{
			name:   "existing session",
			userID: 123,
			mockRows: sqlmock.NewRows([]string{"user_id", "score", "answered", "created_at", "updated_at"}).
				AddRow(int64(123), 7, 10, now, now),
			expectedScore: 7,
			expectedTotal: 10,
		},
		{
			name:        "session not exists",
			userID:      456,
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:          "database error",
			userID:        789,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewSessionRepo(db)

			query := "SELECT user_id, score, answered, created_at, updated_at"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			stats, err := repo.GetStats(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.expectedNil {
					assert.Nil(t, stats)
				} else {
					assert.NotNil(t, stats)
					assert.Equal(t, tt.expectedScore, stats.Score)
					assert.Equal(t, tt.expectedTotal, stats.Answered)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepo_RecordAnswer(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
	}{
		{name: "correct answer", correct: true},
		{name: "wrong answer", correct: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewSessionRepo(db)

			userID := int64(123)

			mock.ExpectExec("INSERT INTO sessions").
				WithArgs(userID, tt.correct).
				WillReturnResult(sqlmock.NewResult(1, 1))

			err = repo.RecordAnswer(userID, tt.correct)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepo_RecordAnswer_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(int64(123), true).
		WillReturnError(fmt.Errorf("db error"))

	err = repo.RecordAnswer(123, true)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_CleanIdleSessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewSessionRepo(db)

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(60).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.CleanIdleSessions(60)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
