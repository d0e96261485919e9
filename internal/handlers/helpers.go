package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/middleware"
	"financas/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// auditUserID returns the session user or "" for unauthenticated callers
// such as the scheduler.
func auditUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// parsePathID validates a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseMonthQuery resolves the "month" query parameter, defaulting to the
// current month.
func parseMonthQuery(c *gin.Context, clock calendar.Clock) (calendar.Month, error) {
	return calendar.ResolveMonth(c.Query("month"), clock)
}

// parseOptionalMonth returns nil when the "month" query parameter is absent.
func parseOptionalMonth(c *gin.Context) (*calendar.Month, error) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return nil, nil
	}
	month, err := calendar.ParseMonth(raw)
	if err != nil {
		return nil, err
	}
	return &month, nil
}

// parseOptionalBool returns nil when the query parameter is absent.
func parseOptionalBool(c *gin.Context, param string) (*bool, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return &v, nil
}

// optionalString returns nil for an empty query parameter.
func optionalString(c *gin.Context, param string) *string {
	v := strings.TrimSpace(c.Query(param))
	if v == "" {
		return nil
	}
	return &v
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// bindError converts a binding failure into INVALID_INPUT.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}
