package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrValueOutOfRange  = errors.New("value out of range")

	// Store errors
	ErrStoreBusy = errors.New("store busy")
)

// Entity kinds reported in error details
const (
	EntityUser       = "user"
	EntityStudent    = "student"
	EntityFaculty    = "faculty"
	EntityCourse     = "course"
	EntityEnrollment = "enrollment"
	EntityAssignment = "assignment"
	EntityGrade      = "grade"
)

// NewEntityNotFoundError reports that no active entity of the given kind has the given id.
func NewEntityNotFoundError(entity string, id int64) *CustomError {
	return NewCustomError(ErrResourceNotFound, fmt.Sprintf("%s %d not found", entity, id)).
		WithCode("NOT_FOUND").
		WithDetails(map[string]interface{}{
			"entity": entity,
			"id":     id,
		})
}

// NewLookupNotFoundError reports a failed lookup by an arbitrary key such as an email.
func NewLookupNotFoundError(entity, key, value string) *CustomError {
	return NewCustomError(ErrResourceNotFound, fmt.Sprintf("%s with %s %q not found", entity, key, value)).
		WithCode("NOT_FOUND").
		WithDetails(map[string]interface{}{
			"entity": entity,
			key:      value,
		})
}

// NewEnrollmentNotFoundError reports that a student is not enrolled in a course.
func NewEnrollmentNotFoundError(courseID, studentID int64) *CustomError {
	return NewCustomError(ErrResourceNotFound, fmt.Sprintf("student %d is not enrolled in course %d", studentID, courseID)).
		WithCode("NOT_FOUND").
		WithDetails(map[string]interface{}{
			"entity":    EntityEnrollment,
			"courseID":  courseID,
			"studentID": studentID,
		})
}

// NewOutOfRangeError reports a numeric value outside [min, max].
func NewOutOfRangeError(field string, value, min, max float64) *CustomError {
	return NewCustomError(ErrValueOutOfRange, fmt.Sprintf("%s %v is outside [%v, %v]", field, value, min, max)).
		WithCode("OUT_OF_RANGE").
		WithDetails(map[string]interface{}{
			"field": field,
			"min":   min,
			"max":   max,
		})
}

// NewValidationError creates a new custom error for invalid input
func NewValidationError(format string, args ...interface{}) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: fmt.Sprintf(format, args...),
	}
}

// EntityOf returns the entity kind recorded on a CustomError, if any.
func EntityOf(err error) string {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Details == nil {
		return ""
	}
	entity, _ := ce.Details["entity"].(string)
	return entity
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
