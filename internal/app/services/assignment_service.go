package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
)

// AssignmentService defines the interface for assignment and grade operations
type AssignmentService interface {
	CreateAssignment(ctx context.Context, courseID int64, name string) (*models.Assignment, error)
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetAllAssignments(ctx context.Context) ([]*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) (*models.Assignment, error)
	CreateGrade(ctx context.Context, assignmentID, studentID int64, value float64) (*models.Grade, error)
	GetGradeByID(ctx context.Context, id int64) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id int64) (*models.Grade, error)
}

// assignmentServiceImpl implements the AssignmentService interface
type assignmentServiceImpl struct {
	assignmentRepo *repositories.AssignmentRepository
	logger         zerolog.Logger
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(assignmentRepo *repositories.AssignmentRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		logger:         logger.With().Str("service", "assignment").Logger(),
	}
}

// CreateAssignment adds an assignment to a course
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, courseID int64, name string) (*models.Assignment, error) {
	if err := validateID("course ID", courseID); err != nil {
		return nil, err
	}
	if err := validateName("assignment name", name); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.CreateAssignment(ctx, courseID, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	s.logger.Info().Int64("assignmentID", assignment.ID).Int64("courseID", courseID).Msg("Assignment created")
	return assignment, nil
}

// GetAssignmentByID retrieves an assignment
func (s *assignmentServiceImpl) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if err := validateID("assignment ID", id); err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return assignment, nil
}

// GetAllAssignments retrieves all assignments
func (s *assignmentServiceImpl) GetAllAssignments(ctx context.Context) ([]*models.Assignment, error) {
	assignments, err := s.assignmentRepo.GetAllAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving assignments: %w", err)
	}
	return assignments, nil
}

// DeleteAssignment deletes an assignment and its grades
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	if err := validateID("assignment ID", id); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.DeleteAssignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error deleting assignment: %w", err)
	}

	s.logger.Info().Int64("assignmentID", id).Int("grades", len(assignment.Grades)).Msg("Assignment deleted")
	return assignment, nil
}

// CreateGrade grades an enrolled student on an assignment. Range
// checking is left to the ledger so the error carries the bounds.
func (s *assignmentServiceImpl) CreateGrade(ctx context.Context, assignmentID, studentID int64, value float64) (*models.Grade, error) {
	if err := validateID("assignment ID", assignmentID); err != nil {
		return nil, err
	}
	if err := validateID("student ID", studentID); err != nil {
		return nil, err
	}

	grade, err := s.assignmentRepo.CreateGrade(ctx, assignmentID, studentID, value)
	if err != nil {
		return nil, fmt.Errorf("error creating grade: %w", err)
	}

	s.logger.Info().
		Int64("gradeID", grade.ID).
		Int64("assignmentID", assignmentID).
		Int64("studentID", studentID).
		Msg("Grade recorded")
	return grade, nil
}

// GetGradeByID retrieves a grade
func (s *assignmentServiceImpl) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	if err := validateID("grade ID", id); err != nil {
		return nil, err
	}
	grade, err := s.assignmentRepo.GetGradeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return grade, nil
}

// DeleteGrade deletes a single grade
func (s *assignmentServiceImpl) DeleteGrade(ctx context.Context, id int64) (*models.Grade, error) {
	if err := validateID("grade ID", id); err != nil {
		return nil, err
	}
	grade, err := s.assignmentRepo.DeleteGrade(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error deleting grade: %w", err)
	}
	return grade, nil
}
