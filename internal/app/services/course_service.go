package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/repositories"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, name string, facultyID int64) (*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	AddStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error)
	RemoveStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) (*models.Course, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		logger:     logger.With().Str("service", "course").Logger(),
	}
}

// CreateCourse creates a course owned by a faculty member
func (s *courseServiceImpl) CreateCourse(ctx context.Context, name string, facultyID int64) (*models.Course, error) {
	if err := validateName("course name", name); err != nil {
		return nil, err
	}
	if err := validateID("faculty ID", facultyID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.CreateCourse(ctx, strings.TrimSpace(name), facultyID)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("facultyID", facultyID).Msg("Course created")
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if err := validateID("course ID", id); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetAllCourses retrieves all courses
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAllCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// AddStudent enrolls a student in a course
func (s *courseServiceImpl) AddStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error) {
	if err := validateID("course ID", courseID); err != nil {
		return nil, err
	}
	if err := validateID("student ID", studentID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.AddStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error adding student to course: %w", err)
	}
	return course, nil
}

// RemoveStudent withdraws a student from a course
func (s *courseServiceImpl) RemoveStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error) {
	if err := validateID("course ID", courseID); err != nil {
		return nil, err
	}
	if err := validateID("student ID", studentID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.RemoveStudent(ctx, courseID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error removing student from course: %w", err)
	}

	s.logger.Info().Int64("courseID", courseID).Int64("studentID", studentID).Msg("Student withdrawn")
	return course, nil
}

// DeleteCourse deletes a course together with its assignments and grades
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	if err := validateID("course ID", id); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.DeleteCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().
		Int64("courseID", id).
		Int("students", len(course.Students)).
		Int("assignments", len(course.Assignments)).
		Msg("Course deleted")
	return course, nil
}
