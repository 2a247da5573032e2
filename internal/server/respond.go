package server

import (
	"encoding/json"
	"net/http"

	"github.com/eggsposition/eggsposition/pkg/errors"
	"github.com/eggsposition/eggsposition/pkg/observability"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err as the JSON error envelope. Server-side failures are
// logged and reported to the HTTP hooks; their details are not sent.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		if code == "" {
			code = string(errors.ErrCodeInternal)
		}
		msg = "internal error"
	}
	if code == "" {
		code = string(errors.ErrCodeInvalidInput)
	}
	writeErrorCode(w, status, code, msg)
}

func writeErrorCode(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}
