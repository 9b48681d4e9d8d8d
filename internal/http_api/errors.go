package http_api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gizaresult/resultdesk/internal/errs"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorTable is the single place where domain errors become HTTP statuses.
var errorTable = []errorMapping{
	{errs.ErrMissingAttachment, http.StatusBadRequest, "missing_attachment"},
	{errs.ErrIncompleteSubmission, http.StatusBadRequest, "incomplete_submission"},
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{errs.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{errs.ErrTokenExpired, http.StatusForbidden, "token_expired"},
	{errs.ErrTokenMalformed, http.StatusForbidden, "token_invalid"},
	{errs.ErrRequestNotFound, http.StatusNotFound, "request_not_found"},
	{errs.ErrResultNotFound, http.StatusNotFound, "result_not_found"},
	{errs.ErrResultUnavailable, http.StatusNotFound, "result_unavailable"},
	{errs.ErrNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrPaymentRequired, http.StatusPaymentRequired, "payment_required"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	if errors.Is(err, errs.ErrTransport) {
		return http.StatusInternalServerError, "transport_failure"
	}
	return http.StatusInternalServerError, "internal_error"
}

func errorBody(err error) (int, gin.H) {
	status, code := statusFor(err)
	return status, gin.H{
		"success": false,
		"error":   code,
		"message": err.Error(),
	}
}

func (s *HTTPServer) respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.AbortWithStatusJSON(status, body)
}

func (s *HTTPServer) badRequest(c *gin.Context, err error) {
	s.logger.Debug("Invalid request body", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "invalid_body",
		"message": "Invalid request body: " + err.Error(),
	})
}
