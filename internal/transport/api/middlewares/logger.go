package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// Logger пишет по строке на запрос. Приватные ошибки обработчиков попадают только сюда, клиент их не видит.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}
		if userID := c.GetInt64(CurrentUserIDKey); userID != 0 {
			fields["user_id"] = userID
		}
		if shopID := c.GetInt64(CurrentShopIDKey); shopID != 0 {
			fields["shop_id"] = shopID
		}

		reqEntry := entry.WithFields(fields)
		if len(c.Errors) > 0 {
			reqEntry = reqEntry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			reqEntry.Error("request failed")
		case status >= 400:
			reqEntry.Warn("request rejected")
		default:
			reqEntry.Info("request served")
		}
	}
}
