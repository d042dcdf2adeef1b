package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/apperrors"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/middleware"
)

var errBadQuery = errors.New("invalid query parameter")

// respondError writes the status mapped from err. Client errors echo the cause;
// server errors answer with fallback and keep the cause in the log.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		msg := fallback
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && status != http.StatusInternalServerError {
			msg = appErr.Message
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

func isDateOnly(raw string) bool {
	return len(strings.TrimSpace(raw)) <= len("2006-01-02")
}

// parseTimeQuery reads a date or timestamp query parameter in any common layout.
// Layouts without a zone are read in loc.
func parseTimeQuery(c *gin.Context, key string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w %s=%q: %v", errBadQuery, key, raw, err)
	}
	return &t, nil
}

// parseRangeQuery reads the from/to pair. A bare date as "to" covers that whole day.
func parseRangeQuery(c *gin.Context, loc *time.Location) (from, to *time.Time, err error) {
	if from, err = parseTimeQuery(c, "from", loc); err != nil {
		return nil, nil, err
	}
	if to, err = parseTimeQuery(c, "to", loc); err != nil {
		return nil, nil, err
	}
	if to != nil && isDateOnly(c.Query("to")) {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, fmt.Errorf("%w: from must be before to", errBadQuery)
	}
	return from, to, nil
}

func queryError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Invalid query parameters", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// requestContext returns the request logger and the actor recorded in audit fields.
func requestContext(c *gin.Context) (*slog.Logger, string) {
	actor := middleware.ActorFromContext(c)
	return middleware.GetLoggerFromCtx(c.Request.Context()), actor
}
