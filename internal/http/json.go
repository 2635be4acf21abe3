package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/medipharm/medipharm-console/internal/errors"
)

const maxJSONBody = 1 << 20

// DecodeJSON decodes the request body into dst. It returns false after
// writing a 400 response when the body is not valid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error body {"error","message"}.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// appErrorBody is the JSON shape of a classified failure.
type appErrorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteAppError writes a classified failure with a status derived from its code.
func WriteAppError(w http.ResponseWriter, err *apperrors.AppError) {
	WriteJSON(w, statusForAppError(err), appErrorBody{
		Error:   string(err.Code),
		Message: err.Message,
		Fields:  err.Fields,
	})
}

func statusForAppError(err *apperrors.AppError) int {
	switch err.Code {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeAuthorization:
		return http.StatusUnauthorized
	case apperrors.ErrCodeCredential, apperrors.ErrCodeClient:
		if err.Status >= 400 && err.Status < 500 {
			return err.Status
		}
		return http.StatusBadRequest
	case apperrors.ErrCodeNetwork, apperrors.ErrCodeServer:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
