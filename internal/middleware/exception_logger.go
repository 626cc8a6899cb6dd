package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/taskboard-api/internal/errors"
	"github.com/yukikurage/taskboard-api/internal/models"
	"github.com/yukikurage/taskboard-api/internal/repository"
)

// ExceptionLogging recovers from panics, persists an exception record,
// and returns a generic 500 with a trace id. Failures writing the log
// must not crash the request a second time.
func ExceptionLogging(logRepo repository.ExceptionLogRepository, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				traceID := uuid.NewString()

				var userID *uint64
				if id, ok := GetUserID(c); ok {
					userID = &id
				}

				entry := &models.ExceptionLog{
					UserID:        userID,
					Method:        c.Request.Method,
					Endpoint:      c.Request.URL.Path,
					ExceptionName: fmt.Sprintf("%T", rec),
					Message:       fmt.Sprintf("%v", rec),
					StackTrace:    string(debug.Stack()),
					TraceID:       traceID,
					LoggedAt:      time.Now(),
				}

				if err := logRepo.Write(entry); err != nil {
					log.Error("failed to persist exception log", "error", err, "trace_id", traceID)
				}

				log.Error("unhandled panic",
					"method", entry.Method,
					"endpoint", entry.Endpoint,
					"panic", entry.Message,
					"trace_id", traceID,
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"is_success": false,
					"error_code": apierrors.ErrCodeInternalError,
					"trace_id":   traceID,
				})
			}
		}()

		c.Next()
	}
}
