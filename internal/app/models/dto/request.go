package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/gradebook/internal/app/models"
)

// roleTag accepts any role name models.ParseRole understands, in any case
const roleTag = "role"

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRole(fl.Field().String())
			return ok
		})
	}
}

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=200" example:"Ada"`
	Email string `json:"email" binding:"required,max=254" example:"ada@example.com"`
	Role  string `json:"role" binding:"required,role" example:"Student" enums:"Admin,Student,Faculty"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Name      string `json:"name" binding:"required,max=200" example:"CS101"`
	FacultyID *int64 `json:"facultyID" binding:"required,min=0" example:"2"`
}

// CreateAssignmentRequest represents a request to add an assignment to a course
type CreateAssignmentRequest struct {
	CourseID *int64 `json:"courseID" binding:"required,min=0" example:"0"`
	Name     string `json:"name" binding:"required,max=200" example:"HW1"`
}

// CreateGradeRequest represents a request to grade a student.
// Range errors are reported by the ledger with the offending bounds.
type CreateGradeRequest struct {
	StudentID *int64   `json:"studentID" binding:"required,min=0" example:"1"`
	Grade     *float64 `json:"grade" binding:"required" example:"92.5"`
}
