package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the application layer unwraps to one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation            = errors.New("validation failed")
	ErrNotAuthorized         = errors.New("not authorized")
	ErrNotReady              = errors.New("event not ready for completion")
	ErrAlreadySubmitted      = errors.New("event already submitted")
	ErrPersistence           = errors.New("persistence failure")
	ErrEventNotFound         = errors.New("event not found")
	ErrParticipationNotFound = errors.New("club participation not found")
	ErrEventClosed           = errors.New("event is no longer upcoming")
	ErrWrongEventType        = errors.New("operation not allowed for this event type")
)

var codes = map[error]string{
	ErrValidation:            "validation",
	ErrNotAuthorized:         "not_authorized",
	ErrNotReady:              "not_ready",
	ErrAlreadySubmitted:      "already_submitted",
	ErrPersistence:           "persistence",
	ErrEventNotFound:         "event_not_found",
	ErrParticipationNotFound: "participation_not_found",
	ErrEventClosed:           "event_closed",
	ErrWrongEventType:        "wrong_event_type",
}

// Error is a domain error with a stable code and a human readable message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.msg
}

func (e *Error) Unwrap() error { return e.kind }

// Code returns the stable machine code of the error kind.
func (e *Error) Code() string { return codes[e.kind] }

// Newf builds an error of the given kind with a formatted detail message.
func Newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Invalid is shorthand for a validation error.
func Invalid(format string, args ...any) error {
	return Newf(ErrValidation, format, args...)
}

// Persistence marks err as a store failure. The original cause stays
// reachable through errors.Is / errors.As.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// Code extracts the stable code from any error in the domain taxonomy, or ""
// when err is not a domain error. A persistence failure reports "persistence"
// whatever it wraps.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrPersistence) {
		return codes[ErrPersistence]
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Code()
	}
	for kind, code := range codes {
		if errors.Is(err, kind) {
			return code
		}
	}
	return ""
}
