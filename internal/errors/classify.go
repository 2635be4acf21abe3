package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// HTTPFailure is implemented by transport errors that carry a backend response.
type HTTPFailure interface {
	error
	StatusCode() int
	ResponseBody() []byte
}

// serverMessageFields are tried in order; the first one with usable text wins.
var serverMessageFields = []string{"error", "message"}

// MessageFromBody extracts a human readable message from a backend error body.
// Precedence: the "error" field, then the "message" field, then a raw string body.
func MessageFromBody(body []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", false
	}

	var doc any
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		// Not JSON: the body itself is the message.
		return trimmed, true
	}

	switch v := doc.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s, true
		}
		return "", false
	case map[string]any:
		for _, field := range serverMessageFields {
			found, err := jmespath.Search(field, v)
			if err != nil || found == nil {
				continue
			}
			if msg, ok := stringify(found); ok {
				return msg, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

// ServerMessage returns only the body's "message" field, which is what the
// backend fills for 5xx responses.
func ServerMessage(body []byte) (string, bool) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}
	found, err := jmespath.Search("message", doc)
	if err != nil || found == nil {
		return "", false
	}
	return stringify(found)
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case bool:
		return "", false
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// Classify maps a backend call failure to the console error taxonomy.
// The message follows the generic precedence used for every form:
// server error field, server message field, raw body, generic network message.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var failure HTTPFailure
	if errors.As(err, &failure) {
		status := failure.StatusCode()
		msg, ok := MessageFromBody(failure.ResponseBody())
		switch {
		case status == http.StatusUnauthorized:
			if !ok {
				msg = MsgSessionExpired
			}
			return &AppError{Code: ErrCodeAuthorization, Message: msg, Status: status, Cause: err}
		case status >= http.StatusInternalServerError:
			if !ok {
				msg = MsgServer
			}
			return &AppError{Code: ErrCodeServer, Message: msg, Status: status, Cause: err}
		default:
			if !ok {
				msg = fmt.Sprintf("Request failed with status %d", status)
			}
			return &AppError{Code: ErrCodeClient, Message: msg, Status: status, Cause: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeNetwork, Message: "The server took too long to respond.", Cause: err}
	}
	return &AppError{Code: ErrCodeNetwork, Message: MsgNetwork, Cause: err}
}

// ClassifyLogin maps a failed login call. Any 4xx is reported with the fixed
// credential message so the response never reveals which field was wrong.
// Network failures surface the transport error's own text and 5xx responses
// use the backend message when present.
func ClassifyLogin(err error) *AppError {
	if err == nil {
		return nil
	}

	var failure HTTPFailure
	if !errors.As(err, &failure) {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return Network(err)
	}

	status := failure.StatusCode()
	if status >= http.StatusInternalServerError {
		msg, ok := ServerMessage(failure.ResponseBody())
		if !ok {
			msg = failure.Error()
		}
		return &AppError{Code: ErrCodeServer, Message: msg, Status: status, Cause: err}
	}
	return Credential(status, err)
}
