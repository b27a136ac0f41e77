package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the vaccination services. Handlers map these to
// HTTP statuses; nothing below the handler layer swallows them.

// InvalidError reports a field value that fails a domain constraint.
type InvalidError struct {
	Field  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing referenced entity.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ConflictError reports a violated uniqueness invariant.
type ConflictError struct {
	Rule string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Rule)
}

// IllegalTransitionError reports a forbidden state change.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// MismatchError reports a field that differs between a schedule and the
// record being linked to it.
type MismatchError struct {
	Field string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatch on %s between schedule and record", e.Field)
}

func invalid(field, reason string) error {
	return &InvalidError{Field: field, Reason: reason}
}

func invalidf(field, format string, args ...interface{}) error {
	return &InvalidError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func notFound(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func conflict(rule string) error {
	return &ConflictError{Rule: rule}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
