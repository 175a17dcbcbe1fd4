package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// FieldViolation is one failed rule on one input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Field      string
	Msg        string
	Violations []FieldViolation
	Err        error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "Validation failed"
}

func (e ValidationError) Unwrap() error { return e.Err }

// Details returns the field-level violations, synthesizing one from Field/Msg.
func (e ValidationError) Details() []FieldViolation {
	if len(e.Violations) > 0 {
		return e.Violations
	}
	if e.Field != "" {
		return []FieldViolation{{Field: e.Field, Message: e.Msg}}
	}
	return nil
}

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// AvailabilityError reports a passenger request larger than the remaining seats.
type AvailabilityError struct {
	AvailableSeats int
	RequestedSeats int
}

func (e AvailabilityError) Error() string {
	return "Not enough seats available"
}

type InvalidServiceTypeError struct {
	Value string
}

func (e InvalidServiceTypeError) Error() string {
	return "Invalid service type"
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsAvailability(err error) bool {
	var target AvailabilityError
	return errors.As(err, &target)
}

func IsInvalidServiceType(err error) bool {
	var target InvalidServiceTypeError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
