package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"auctionary/internal/auctionerrors"
	"auctionary/internal/metrics"
	"auctionary/services/auction/helpers"
	"auctionary/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the per-request correlation id
const RequestIDHeader = "X-Request-ID"

// SessionResolver maps a session token to its user id
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (int64, error)
}

// RequestIDMiddleware reuses a valid incoming request id or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if !utils.IsValidID(id) {
		id = utils.GenerateID()
	}
	c.Set("request_id", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString("request_id"),
	}
	if userID := helpers.CurrentUserID(c); userID != 0 {
		fields["user_id"] = userID
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}

	utils.Info("HTTP Request", fields)
}

// MetricsMiddleware records request counts and latency by route template
func MetricsMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(c.Writer.Status())

	metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
}

// RequireSession rejects requests without a live session token in header
func RequireSession(sessions SessionResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(header)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, nil, helpers.MsgUnauthorised)
			return
		}

		userID, err := sessions.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrUnauthorized) {
				utils.JSONError(c, http.StatusUnauthorized, err, helpers.MsgUnauthorised)
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, err, helpers.MsgInternalError)
			utils.Error("RequireSession: failed to resolve session", map[string]any{"error": err.Error()})
			return
		}

		c.Set(helpers.UserIDKey, userID)
		c.Next()
	}
}

// OptionalSession resolves a session token when one is sent. Unknown tokens
// leave the request anonymous.
func OptionalSession(sessions SessionResolver, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(header)
		if token == "" {
			c.Next()
			return
		}

		userID, err := sessions.ResolveSession(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(helpers.UserIDKey, userID)
		case errors.Is(err, auctionerrors.ErrUnauthorized):
			utils.Debug("OptionalSession: unknown session token", nil)
		default:
			utils.JSONError(c, http.StatusInternalServerError, err, helpers.MsgInternalError)
			utils.Error("OptionalSession: failed to resolve session", map[string]any{"error": err.Error()})
			return
		}
		c.Next()
	}
}
