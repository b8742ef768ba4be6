package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// Services defined in this package:
// - UserService: user registry queries and creation
// - CourseService: course catalog and enrollments
// - AssignmentService: assignments and grades

var validate = validator.New()

const (
	maxNameLength  = 200
	maxEmailLength = 254
)

// validateName rejects blank or overlong names
func validateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("%s cannot be empty", field)
	}
	if len(name) > maxNameLength {
		return apperrors.NewValidationError("%s is too long (max %d characters)", field, maxNameLength)
	}
	return nil
}

// validateID rejects negative ids. Ids start at zero.
func validateID(field string, id int64) error {
	if id < 0 {
		return apperrors.NewValidationError("%s must not be negative", field)
	}
	return nil
}
