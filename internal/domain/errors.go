package domain

import (
	"fmt"
)

// NotFoundError represents a missing resource. A submission that is no longer
// pending is reported the same way as one that never existed.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// InvalidInputError reports a locally detected malformed request.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	if e.Field == "" {
		return "invalid input"
	}
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e InvalidInputError) Is(target error) bool {
	_, ok := target.(InvalidInputError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidInputError)
	return ok
}

// UnauthorizedError means an identity was required but none was resolved.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "identity required"
	}
	return e.Reason
}

func (e UnauthorizedError) Is(target error) bool {
	_, ok := target.(UnauthorizedError)
	if ok {
		return true
	}
	_, ok = target.(*UnauthorizedError)
	return ok
}

// ForbiddenError means the administrative secret did not match.
type ForbiddenError struct{}

func (e ForbiddenError) Error() string {
	return "admin access denied"
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

// ConflictError reports a uniqueness violation such as a taken handle.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "conflict"
	}
	return fmt.Sprintf("%s already taken", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// StoreError wraps a persistence failure. It is surfaced as an internal error
// and never retried by the core.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) error {
	return StoreError{Op: op, Err: err}
}

func (e StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store unavailable: %s", e.Op)
	}
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}

func (e StoreError) Is(target error) bool {
	_, ok := target.(StoreError)
	if ok {
		return true
	}
	_, ok = target.(*StoreError)
	return ok
}

var (
	ErrNotFound         = NotFoundError{}
	ErrInvalidInput     = InvalidInputError{}
	ErrUnauthorized     = UnauthorizedError{}
	ErrForbidden        = ForbiddenError{}
	ErrConflict         = ConflictError{}
	ErrStoreUnavailable = StoreError{}
)
