package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"
	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseAnswerData parses "ans_<seq>_<choice>" callback data
func parseAnswerData(data string) (seq int64, choice int, err error) {
	rest := strings.TrimPrefix(data, "ans_")
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed answer data %q", data)
	}
	seq, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer seq %q: %w", data, err)
	}
	choice, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer choice %q: %w", data, err)
	}
	return seq, choice, nil
}

// handleEditError handles errors from c.Edit() - if message is not modified,
// just acknowledge callback. Otherwise, acknowledge callback and return error
// so caller can send a new message.
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// Message already edited by another callback, nothing more to do
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Handle specific button callbacks by Unique first
	switch callback.Unique {
	case "start_quiz":
		return h.handleShowCategories(c)
	case "my_score":
		return h.handleScore(c)
	case "main_menu":
		return h.handleStart(c)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "ans_"):
		return h.handleAnswer(c, data)
	case strings.HasPrefix(data, "cat_"):
		return h.handleCategorySelected(c, data)
	case strings.HasPrefix(data, "diff_"):
		return h.handleDifficultySelected(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleShowCategories shows the category menu
func (h *Handler) handleShowCategories(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateSelectingCategory})

	text := "🎯 Choose a category:"
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	// Telegram keyboards get unwieldy past ten rows
	categories := domain.Categories
	if len(categories) > 10 {
		categories = categories[:10]
	}
	for _, cat := range categories {
		btn := markup.Data(cat.Name, fmt.Sprintf("cat_%d", cat.ID))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)

	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// handleCategorySelected stores the category and shows the difficulty menu
func (h *Handler) handleCategorySelected(c tele.Context, data string) error {
	userID := c.Sender().ID

	idStr := strings.TrimPrefix(strings.TrimSpace(data), "cat_")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown category"})
	}

	category, ok := domain.CategoryByID(id)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown category"})
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateSelectingDifficulty,
		CategoryID:   category.ID,
		CategoryName: category.Name,
	})

	text := fmt.Sprintf("📚 You chose %s\nNow choose a difficulty:", category.Name)
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("Easy", "diff_easy")),
		markup.Row(markup.Data("Medium", "diff_medium")),
		markup.Row(markup.Data("Hard", "diff_hard")),
	)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleDifficultySelected starts the quiz with the chosen category/difficulty
func (h *Handler) handleDifficultySelected(c tele.Context, data string) error {
	userID := c.Sender().ID

	difficulty := domain.Difficulty(strings.TrimPrefix(strings.TrimSpace(data), "diff_"))
	if !difficulty.Valid() {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown difficulty"})
	}

	state := h.GetState(userID)
	if state.CategoryID == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Category not set. Please restart with /start.",
			ShowAlert: true,
		})
	}

	// Show typing indicator while fetching
	c.Notify(tele.Typing)

	question, seq, err := h.quizService.StartQuiz(context.Background(), userID, state.CategoryID, difficulty)
	if err != nil {
		h.logger.Error("Failed to start quiz",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int("category_id", state.CategoryID),
		)
		return c.Respond(&tele.CallbackResponse{
			Text:      "Failed to fetch a question. Please try again later.",
			ShowAlert: true,
		})
	}

	h.SetState(userID, &domain.StateData{
		State:        domain.StateInQuiz,
		CategoryID:   state.CategoryID,
		CategoryName: state.CategoryName,
	})

	text, markup := questionMessage(question, seq)
	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleAnswer checks the tapped option against the pending question
func (h *Handler) handleAnswer(c tele.Context, data string) error {
	userID := c.Sender().ID

	seq, choice, err := parseAnswerData(strings.TrimSpace(data))
	if err != nil {
		h.logger.Warn("Malformed answer callback", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{Text: "Invalid selection, please try again."})
	}

	result, err := h.quizService.SubmitAnswer(context.Background(), userID, seq, choice)
	switch {
	case errors.Is(err, service.ErrNoActiveQuestion):
		return c.Respond(&tele.CallbackResponse{
			Text:      "No active question. Send /start to play!",
			ShowAlert: true,
		})
	case errors.Is(err, service.ErrStaleAnswer):
		return c.Respond(&tele.CallbackResponse{Text: "This question was already answered."})
	case errors.Is(err, service.ErrInvalidChoice):
		return c.Respond(&tele.CallbackResponse{Text: "Invalid selection, please try again."})
	case err != nil:
		h.logger.Error("Failed to submit answer", zap.Error(err), zap.Int64("user_id", userID))
		return c.Respond(&tele.CallbackResponse{
			Text:      "Something went wrong. Please try again.",
			ShowAlert: true,
		})
	}

	var feedback string
	if result.Correct {
		feedback = "✅ Correct!"
	} else {
		feedback = fmt.Sprintf("❌ Wrong! Correct answer: %s", result.CorrectAnswer)
	}

	// Replace the answered question with the feedback, then send the next one
	if err := c.Edit(feedback); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr != nil {
			if sendErr := c.Send(feedback); sendErr != nil {
				return sendErr
			}
		}
	} else {
		c.Respond()
	}

	if result.Next == nil {
		h.ResetState(userID)
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnMainMenu))
		return c.Send("⚠️ Couldn't fetch the next question.\nSend /start to keep playing.", markup)
	}

	text, markup := questionMessage(result.Next, result.NextSeq)
	return c.Send(text, markup)
}

// questionMessage formats a question with its four answer buttons
func questionMessage(q *domain.Question, seq int64) (string, *tele.ReplyMarkup) {
	text := fmt.Sprintf("❓ %s (%s)\n\n%s", q.Category, q.Difficulty, q.Prompt)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for i, opt := range q.Options {
		btn := markup.Data(opt, fmt.Sprintf("ans_%d_%d", seq, i))
		rows = append(rows, markup.Row(btn))
	}
	markup.Inline(rows...)

	return text, markup
}
