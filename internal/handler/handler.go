package handler

import (
	"sync"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/middleware"
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	quizService *service.QuizService
	logger      *zap.Logger

	// User selection states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	quizService *service.QuizService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		quizService: quizService,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Logger(h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/score", h.handleScore)
	h.bot.Handle("/cancel", h.handleCancel)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnStartQuiz, h.handleShowCategories)
	h.bot.Handle(&btnMyScore, h.handleScore)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnStartQuiz = tele.Btn{
		Unique: "start_quiz",
		Text:   "🎮 Start Quiz!",
	}
	btnMyScore = tele.Btn{
		Unique: "my_score",
		Text:   "📊 My Score",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main Menu",
	}
)

// welcomeMarkup returns the welcome screen keyboard
func welcomeMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStartQuiz),
		menu.Row(btnMyScore),
	)
	return menu
}
