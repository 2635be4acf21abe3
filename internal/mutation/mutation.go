package mutation

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/medipharm/medipharm-console/internal/errors"
)

// MsgInvalid is the summary shown above a form with field errors.
const MsgInvalid = "Please correct the highlighted fields."

// Result is the outcome of one Run.
type Result[R any] struct {
	Success bool
	Data    R
	// Fields holds per-field messages when validation failed.
	Fields map[string]string
	// Message is the operator-facing failure message.
	Message string
	// Err is the classified failure; nil on success.
	Err *apperrors.AppError
}

// Invalid reports whether the payload was rejected before submission.
func (r Result[R]) Invalid() bool {
	return r.Err != nil && r.Err.Code == apperrors.ErrCodeValidation
}

// Mutation validates a payload of type T and submits the coerced payload,
// producing an R. An invalid payload is never submitted.
type Mutation[T, R any] struct {
	// Name identifies the mutation in logs.
	Name   string
	Schema Schema[T]
	Submit func(ctx context.Context, payload T) (R, error)
	Logger *slog.Logger
}

// New builds a Mutation.
func New[T, R any](name string, schema Schema[T], submit func(context.Context, T) (R, error)) Mutation[T, R] {
	return Mutation[T, R]{Name: name, Schema: schema, Submit: submit}
}

// Run validates payload and, when valid, submits it.
// Submission failures are classified and surfaced through the Result;
// Run never panics on a failed call and never returns a Go error.
func (m Mutation[T, R]) Run(ctx context.Context, payload T) Result[R] {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if m.Schema != nil {
		coerced, err := m.Schema.Validate(payload)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return Result[R]{
					Fields:  verr.Fields,
					Message: MsgInvalid,
					Err:     apperrors.Validation(MsgInvalid, verr.Fields),
				}
			}
			logger.ErrorContext(ctx, "schema failure", "mutation", m.Name, "error", err)
			appErr := apperrors.Wrap(err, apperrors.ErrCodeInternal, apperrors.MsgInternal)
			return Result[R]{Message: appErr.Message, Err: appErr}
		}
		payload = coerced
	}

	data, err := m.Submit(ctx, payload)
	if err != nil {
		appErr := apperrors.Classify(err)
		logger.WarnContext(ctx, "mutation failed",
			"mutation", m.Name,
			"code", appErr.Code,
			"status", appErr.Status,
			"error", err,
		)
		return Result[R]{Message: appErr.Message, Err: appErr}
	}
	return Result[R]{Success: true, Data: data}
}
