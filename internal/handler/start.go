package handler

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const welcomeText = "🎯 Welcome to the Quiz Game Bot!\n\n" +
	"Test your knowledge across various categories.\n" +
	"Press the button below to start your quiz adventure!"

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Drop any pending question, keep the score
	h.quizService.Cancel(userID)
	h.ResetState(userID)

	if c.Callback() != nil {
		if err := c.Edit(welcomeText, welcomeMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
				return nil
			}
			return c.Send(welcomeText, welcomeMarkup())
		}
		return c.Respond()
	}
	return c.Send(welcomeText, welcomeMarkup())
}

// handleScore handles /score command and the score button
func (h *Handler) handleScore(c tele.Context) error {
	userID := c.Sender().ID

	stats, err := h.quizService.Stats(userID)
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err), zap.Int64("user_id", userID))
		return h.reply(c, "Something went wrong. Please try again later.")
	}

	var text string
	if stats.Answered == 0 {
		text = "📊 You haven't answered any questions yet.\nSend /start to play!"
	} else {
		text = fmt.Sprintf("📊 Your score: %d/%d correct", stats.Score, stats.Answered)
	}

	return h.reply(c, text)
}

// handleCancel handles /cancel command
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if h.quizService.Cancel(userID) {
		return c.Send("Quiz cancelled. Your score is kept — send /start to play again.")
	}
	return c.Send("Nothing to cancel. Send /start to play!")
}

// handleText handles free text: commands are ignored, anything else gets a hint
func (h *Handler) handleText(c tele.Context) error {
	return c.Send("I only understand buttons and commands.\nSend /start to play or /score to see your score.")
}

// reply answers in place for callbacks and with a new message otherwise
func (h *Handler) reply(c tele.Context, text string) error {
	if c.Callback() != nil {
		if err := c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true}); err != nil {
			return c.Send(text)
		}
		return nil
	}
	return c.Send(text)
}
