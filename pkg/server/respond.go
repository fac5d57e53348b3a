package server

import (
	"encoding/json"
	"net/http"

	"laygrid/pkg/errors"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP status by its code.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound,
		errors.ErrCodeDiagramNotFound,
		errors.ErrCodeShapeNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidDirection,
		errors.ErrCodeInvalidEdge,
		errors.ErrCodeInvalidSpacing,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into v. An empty body is allowed
// and leaves v untouched so operations can run with defaults.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body")
	}
	return nil
}
