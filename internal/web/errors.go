package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ddport/internal/core"
	"github.com/JonMunkholm/ddport/internal/logging"
	"github.com/JonMunkholm/ddport/internal/web/templates"
)

// ErrorResponse is the JSON body of every error response. Code is the
// reference participants can quote to the research team.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

var (
	errInvalidBody = errors.New("invalid request body")
	errNoFile      = errors.New("no file provided")
)

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrSessionNotFound), errors.Is(err, core.ErrUnknownPlatform):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFlowFinished), errors.Is(err, core.ErrUnexpectedResponse):
		return http.StatusConflict
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrEmptyFile), errors.Is(err, errInvalidBody), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTooManyUploads):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// logRequestError logs the technical error and returns its
// participant-facing form.
func logRequestError(r *http.Request, err error, status int) *core.UserError {
	ue := core.NewUserError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.WithFields(r.Context(),
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	).Log(r.Context(), level, "request error", "error", err.Error(), "code", ue.User.Code)

	return ue
}

// respondError writes the participant-facing message mapped by
// core.MapError as JSON.
func respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	ue := logRequestError(r, err, status)
	writeJSON(w, status, ErrorResponse{
		Error:   ue.Error(),
		Message: ue.User.Message,
		Action:  ue.User.Action,
		Code:    ue.User.Code,
	})
}

// respondServiceError is respondError with the status derived from err.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, err, statusFor(err))
}

// respondPageError renders the error as HTML: an alert fragment for HTMX
// requests, a full page otherwise.
func respondPageError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	ue := logRequestError(r, err, status)

	var c templ.Component
	if isHTMX(r) {
		c = templates.ErrorAlert(ue.User.Message, ue.User.Action, ue.User.Code)
	} else {
		c = templates.ErrorPage(templates.ErrorParams{
			Lang:    localeFor(r),
			Message: ue.User.Message,
			Action:  ue.User.Action,
			Code:    ue.User.Code,
			Restart: "/donate",
		})
	}
	writeHTML(w, r, status, c)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
