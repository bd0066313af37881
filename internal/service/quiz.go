package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/repository"

	"go.uber.org/zap"
)

var (
	// ErrNoActiveQuestion means the user has nothing pending to answer.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrStaleAnswer means the answer references a question that was
	// already answered or cancelled.
	ErrStaleAnswer = errors.New("stale answer")
	// ErrInvalidChoice means the choice index is not one of the offered options.
	ErrInvalidChoice = errors.New("invalid choice")
)

// QuestionSource provides one multiple-choice question per request
type QuestionSource interface {
	FetchQuestion(ctx context.Context, categoryID int, difficulty domain.Difficulty) (*domain.Question, error)
}

// pendingQuestion is the volatile part of a session: the question the user is
// expected to answer next, tagged with a sequence number so late callbacks
// from old messages can be told apart from the current one.
type pendingQuestion struct {
	question   *domain.Question
	seq        int64
	categoryID int
	difficulty domain.Difficulty
}

// QuizService drives the question/answer/score cycle, one session per user
type QuizService struct {
	sessionRepo repository.SessionRepository
	source      QuestionSource
	logger      *zap.Logger

	// Pending questions and per-user locks. All access to a single user's
	// pending question is serialized so two concurrent answer taps cannot
	// both score against the same question.
	mu      sync.Mutex
	pending map[int64]*pendingQuestion
	lastSeq map[int64]int64
	locks   map[int64]*sync.Mutex
}

// NewQuizService creates a new quiz service
func NewQuizService(sessionRepo repository.SessionRepository, source QuestionSource, logger *zap.Logger) *QuizService {
	return &QuizService{
		sessionRepo: sessionRepo,
		source:      source,
		logger:      logger,
		pending:     make(map[int64]*pendingQuestion),
		lastSeq:     make(map[int64]int64),
		locks:       make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing one user's quiz operations
func (s *QuizService) lockFor(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[userID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *QuizService) nextSeq(userID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeq[userID]++
	return s.lastSeq[userID]
}

func (s *QuizService) getPending(userID int64) *pendingQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[userID]
}

func (s *QuizService) setPending(userID int64, p *pendingQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		delete(s.pending, userID)
		return
	}
	s.pending[userID] = p
}

// StartQuiz fetches a question for the given category/difficulty and stores
// it as the user's pending question. On fetch failure nothing changes: no
// pending question is stored and the score is untouched. Starting while a
// question is already pending replaces it; the score is never reset.
func (s *QuizService) StartQuiz(ctx context.Context, userID int64, categoryID int, difficulty domain.Difficulty) (*domain.Question, int64, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.sessionRepo.EnsureSession(userID); err != nil {
		return nil, 0, err
	}

	question, err := s.source.FetchQuestion(ctx, categoryID, difficulty)
	if err != nil {
		return nil, 0, err
	}

	seq := s.nextSeq(userID)
	s.setPending(userID, &pendingQuestion{
		question:   question,
		seq:        seq,
		categoryID: categoryID,
		difficulty: difficulty,
	})

	return question, seq, nil
}

// SubmitAnswer checks the choice against the user's pending question, records
// the outcome and immediately fetches the next question.
//
// The answer only counts when seq matches the pending question, which makes
// duplicate and late taps no-ops (ErrStaleAnswer). A choice outside the
// offered options is rejected without touching any state (ErrInvalidChoice).
// When persisting the answer fails the pending question stays in place so the
// same answer can be retried. When only the follow-up fetch fails the result
// is still returned with Next set to nil.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID, seq int64, choice int) (*domain.AnswerResult, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	p := s.getPending(userID)
	if p == nil {
		return nil, ErrNoActiveQuestion
	}
	if p.seq != seq {
		return nil, ErrStaleAnswer
	}
	if choice < 0 || choice >= len(p.question.Options) {
		return nil, ErrInvalidChoice
	}

	correct := choice == p.question.CorrectIndex

	if err := s.sessionRepo.RecordAnswer(userID, correct); err != nil {
		return nil, err
	}

	s.setPending(userID, nil)

	result := &domain.AnswerResult{
		Correct:       correct,
		CorrectAnswer: p.question.CorrectAnswer(),
	}

	next, err := s.source.FetchQuestion(ctx, p.categoryID, p.difficulty)
	if err != nil {
		s.logger.Warn("Failed to fetch follow-up question",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return result, nil
	}

	nextSeq := s.nextSeq(userID)
	s.setPending(userID, &pendingQuestion{
		question:   next,
		seq:        nextSeq,
		categoryID: p.categoryID,
		difficulty: p.difficulty,
	})

	result.Next = next
	result.NextSeq = nextSeq

	return result, nil
}

// Stats returns the user's score and answered totals, zeros for fresh users
func (s *QuizService) Stats(userID int64) (*domain.Stats, error) {
	stats, err := s.sessionRepo.GetStats(userID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return &domain.Stats{UserID: userID}, nil
	}
	return stats, nil
}

// Cancel drops the user's pending question, keeping the score.
// Returns true when there was a question to drop.
func (s *QuizService) Cancel(userID int64) bool {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	if s.getPending(userID) == nil {
		return false
	}
	s.setPending(userID, nil)
	return true
}
