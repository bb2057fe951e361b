package monday

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoGroups is returned when a board exists but has no groups to export.
var ErrNoGroups = errors.New("board has no groups")

// ErrorClass categorises a failure of an export run.
type ErrorClass string

const (
	ErrorClassTransport ErrorClass = "transport"
	ErrorClassService   ErrorClass = "service"
	ErrorClassShape     ErrorClass = "shape"
	ErrorClassEmpty     ErrorClass = "empty"
	ErrorClassLimit     ErrorClass = "limit"
	ErrorClassOther     ErrorClass = "other"
)

// TransportError is a non-success HTTP status or a network failure.
// StatusCode is 0 when no response was received.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport error: %v", e.Err)
	}
	return fmt.Sprintf("transport error: HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServiceError carries the messages of a GraphQL errors list.
type ServiceError struct {
	Messages []string
}

func (e *ServiceError) Error() string {
	return "service error: " + strings.Join(e.Messages, "; ")
}

// ShapeError reports a response that lacks the expected nested structure.
type ShapeError struct {
	Context string
	Err     error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response shape: %s: %v", e.Context, e.Err)
	}
	return "unexpected response shape: " + e.Context
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// limitError is implemented by errors that stem from a configured safety ceiling.
type limitError interface {
	LimitExceeded() bool
}

// Classify maps err onto an ErrorClass for logs and metrics.
func Classify(err error) ErrorClass {
	var (
		transportErr *TransportError
		serviceErr   *ServiceError
		shapeErr     *ShapeError
		limitErr     limitError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &transportErr):
		return ErrorClassTransport
	case errors.As(err, &serviceErr):
		return ErrorClassService
	case errors.As(err, &shapeErr):
		return ErrorClassShape
	case errors.Is(err, ErrNoGroups):
		return ErrorClassEmpty
	case errors.As(err, &limitErr) && limitErr.LimitExceeded():
		return ErrorClassLimit
	default:
		return ErrorClassOther
	}
}
