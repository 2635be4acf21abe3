package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPFailure struct {
	status int
	body   string
}

func (f fakeHTTPFailure) Error() string        { return fmt.Sprintf("request failed with status code %d", f.status) }
func (f fakeHTTPFailure) StatusCode() int      { return f.status }
func (f fakeHTTPFailure) ResponseBody() []byte { return []byte(f.body) }

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeValidation, Message: "invalid payload"},
			want: "invalid payload",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "failed to process", Cause: errors.New("underlying error")},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("load stats: %w", Network(cause))

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsAuthorization(err))
	assert.Equal(t, "dial tcp: connection refused", Classify(err).Message)
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "x"))
	assert.Nil(t, Classify(nil))
	assert.Nil(t, ClassifyLogin(nil))
}

func TestMessageFromBody_Precedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"error wins over message", `{"error":"Duplicate pharmacy","message":"Bad Request"}`, "Duplicate pharmacy", true},
		{"message when no error", `{"message":"Name is required"}`, "Name is required", true},
		{"empty error falls through", `{"error":"","message":"fallback"}`, "fallback", true},
		{"blank error falls through", `{"error":"  ","message":"Pharmacy name already taken"}`, "Pharmacy name already taken", true},
		{"false error falls through", `{"error":false,"message":"fallback"}`, "fallback", true},
		{"blank error and message", `{"error":" ","message":"\t"}`, "", false},
		{"raw text body", `Service Unavailable`, "Service Unavailable", true},
		{"json string body", `"plain"`, "plain", true},
		{"object error is rendered", `{"error":{"code":42}}`, `{"code":42}`, true},
		{"no usable field", `{"status":400}`, "", false},
		{"empty body", ``, "", false},
		{"array body", `[1,2]`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MessageFromBody([]byte(tt.body))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    ErrorCode
		message string
	}{
		{"unauthorized", fakeHTTPFailure{401, ``}, ErrCodeAuthorization, MsgSessionExpired},
		{"server with message", fakeHTTPFailure{500, `{"message":"db down"}`}, ErrCodeServer, "db down"},
		{"server generic", fakeHTTPFailure{502, ``}, ErrCodeServer, MsgServer},
		{"client error field", fakeHTTPFailure{409, `{"error":"already verified"}`}, ErrCodeClient, "already verified"},
		{"client no body", fakeHTTPFailure{404, ``}, ErrCodeClient, "Request failed with status 404"},
		{"client blank error uses message", fakeHTTPFailure{409, `{"error":"  ","message":"Pharmacy name already taken"}`}, ErrCodeClient, "Pharmacy name already taken"},
		{"timeout", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrCodeNetwork, "The server took too long to respond."},
		{"unknown", errors.New("eof"), ErrCodeNetwork, MsgNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestClassify_KeepsAppError(t *testing.T) {
	v := Validation("email is required", map[string]string{"email": "email is required"})
	got := Classify(fmt.Errorf("submit: %w", v))
	assert.Same(t, v, got)
	assert.True(t, IsValidation(got))
	assert.Equal(t, map[string]string{"email": "email is required"}, got.Fields)
}

func TestClassifyLogin(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    ErrorCode
		message string
	}{
		{"bad request", fakeHTTPFailure{400, `{"error":"password too short"}`}, ErrCodeCredential, MsgInvalidCredentials},
		{"unauthorized", fakeHTTPFailure{401, `{"message":"bad password for a@b.com"}`}, ErrCodeCredential, MsgInvalidCredentials},
		{"server message", fakeHTTPFailure{503, `{"message":"maintenance"}`}, ErrCodeServer, "maintenance"},
		{"server without message", fakeHTTPFailure{500, `oops`}, ErrCodeServer, "request failed with status code 500"},
		{"network", errors.New("Network Error"), ErrCodeNetwork, "Network Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLogin(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}
