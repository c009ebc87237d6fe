package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// StatusError carries an HTTP status with a human-readable detail. Services
// raise it for caller faults (missing files, malformed workbooks, absent
// sheets) so controllers can translate without inspecting messages.
type StatusError struct {
	Status int
	Code   string
	Detail string
}

func (e *StatusError) Error() string {
	return e.Detail
}

func NewStatusError(status int, detail string) *StatusError {
	return &StatusError{Status: status, Code: "REQUEST_FAILED", Detail: detail}
}

func NewCodedError(status int, code, detail string) *StatusError {
	return &StatusError{Status: status, Code: code, Detail: detail}
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteFailure maps an error to the envelope: StatusError keeps its status,
// anything else is an internal error.
func WriteFailure(w http.ResponseWriter, err error) error {
	var se *StatusError
	if errors.As(err, &se) {
		return WriteError(w, se.Status, se.Code, se.Detail, nil)
	}
	return WriteError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
}
