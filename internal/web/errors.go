package web

// errors.go maps service errors to HTTP statuses and the JSON error
// envelope. The technical error is logged with the request id; the client
// gets the user message and code from core.MapError.

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/coachgrid/internal/core"
	"github.com/JonMunkholm/coachgrid/internal/logging"
)

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Action  string                 `json:"action,omitempty"`
	Code    string                 `json:"code"`
	Fields  []core.ValidationError `json:"fields,omitempty"`
}

// badRequest marks malformed input found by the handlers themselves.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func errBadRequest(msg string) error { return badRequest{msg: msg} }

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var verrs core.ValidationErrors
	var bad badRequest
	switch {
	case errors.As(err, &verrs), errors.As(err, &bad), errors.Is(err, core.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTableNotFound),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrTooManySessions), errors.Is(err, core.ErrTooManyLoads):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the mapped JSON error.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	var bad badRequest
	if errors.As(err, &bad) {
		resp.Error = bad.msg
		resp.Message = bad.msg
		resp.Action = ""
		resp.Code = "REQ000"
	}
	var verrs core.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Fields = verrs
	}

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	writeJSON(w, status, resp)
}
