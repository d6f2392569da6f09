package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	ReadHeaderTimeout = 5 * time.Second

	RequestIDHeaderName = "X-Request-Id"
	requestIDKey        = "requestID"
)

// StatusMapper turns a handler error into a response status and a message
// safe to show to the client.
type StatusMapper func(err error) (int, string)

func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"requestID": c.GetString(requestIDKey),
					"panic":     err,
				}).Error("Recovered from panic")

				c.String(http.StatusInternalServerError, "Internal server error\n")
				c.Abort()
			}
		}()
		c.Next()
	}
}

func ErrorHandler(logger logrus.FieldLogger, mapper StatusMapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}

		status, message := mapper(err.Err)

		entry := logger.WithError(err.Err).WithField("requestID", c.GetString(requestIDKey))
		if status >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Info("Request rejected")
		}

		if c.Writer.Written() {
			return
		}

		c.String(status, "%s\n", message)
	}
}

// RequestID reuses the incoming request id header or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeaderName, requestID)

		c.Next()
	}
}

// LoggingMiddleware logs each request's URI and method.
func LoggingMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			total := time.Since(start)
			logger.WithFields(logrus.Fields{
				"requestID": c.GetString(requestIDKey),
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"duration":  total,
				"status":    c.Writer.Status(),
			}).Infof("%s %s", c.Request.Method, c.Request.URL.Path)
		}()

		c.Next()
	}
}
