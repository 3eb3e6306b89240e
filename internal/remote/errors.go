package remote

import (
	"fmt"
)

// ErrServiceUnavailable covers every way the quiz service can fail to
// answer: transport errors, timeouts and non-2xx responses.
type ErrServiceUnavailable struct {
	Op string

	// StatusCode is 0 when no HTTP response was received.
	StatusCode int

	// Message is the server supplied error text, if any.
	Message string

	Err error
}

func (e *ErrServiceUnavailable) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: quiz service returned %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: quiz service returned %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: quiz service unavailable: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: quiz service unavailable", e.Op)
}

func (e *ErrServiceUnavailable) Unwrap() error { return e.Err }

// Transport reports whether no HTTP response was received at all.
func (e *ErrServiceUnavailable) Transport() bool {
	return e.StatusCode == 0
}

// ErrInvalidResponse indicates a 2xx response whose body could not be used:
// malformed JSON, a schema violation or an empty question list.
type ErrInvalidResponse struct {
	Op  string
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid quiz service response: %v", e.Op, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrValidationExhausted is returned when every validate attempt failed.
type ErrValidationExhausted struct {
	Attempts int
	Err      error
}

func (e *ErrValidationExhausted) Error() string {
	return fmt.Sprintf("answer validation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrValidationExhausted) Unwrap() error { return e.Err }
