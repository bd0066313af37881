package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger creates middleware that logs every inbound update and any handler error
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			var userID int64
			if c.Sender() != nil {
				userID = c.Sender().ID
			}

			fields := []zap.Field{zap.Int64("user_id", userID)}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback_unique", cb.Unique))
			} else {
				fields = append(fields, zap.String("text", c.Text()))
			}
			logger.Debug("Update received", fields...)

			err := next(c)
			if err != nil {
				logger.Error("Handler failed",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
			}
			return err
		}
	}
}
