package repositories

import (
	"context"
	"math"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// AssignmentRepository is the ledger of assignments and their grades
type AssignmentRepository struct {
	store *Store
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(store *Store) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

func (st *state) assignment(id int64) (*assignmentRecord, error) {
	a, ok := st.assignments[id]
	if !ok {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityAssignment, id)
	}
	return a, nil
}

func (st *state) grade(id int64) (*gradeRecord, error) {
	g, ok := st.grades[id]
	if !ok {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityGrade, id)
	}
	return g, nil
}

// CreateAssignment adds an assignment to a course
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, courseID int64, name string) (*models.Assignment, error) {
	var created models.Assignment
	err := r.store.update(ctx, func(st *state) error {
		c, err := st.course(courseID)
		if err != nil {
			return err
		}

		a := &assignmentRecord{
			id:       st.nextAssignmentID,
			name:     name,
			courseID: c.id,
		}
		st.nextAssignmentID++
		st.assignments[a.id] = a
		c.assignments.add(a.id)

		created = st.assignmentView(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetAssignmentByID retrieves an assignment
func (r *AssignmentRepository) GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error) {
	var found models.Assignment
	err := r.store.view(ctx, func(st *state) error {
		a, err := st.assignment(id)
		if err != nil {
			return err
		}
		found = st.assignmentView(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// GetAllAssignments returns every assignment in creation order
func (r *AssignmentRepository) GetAllAssignments(ctx context.Context) ([]*models.Assignment, error) {
	assignments := []*models.Assignment{}
	err := r.store.view(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.assignments) {
			view := st.assignmentView(st.assignments[id])
			assignments = append(assignments, &view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeleteAssignment removes an assignment from its course and deletes
// its grades. It returns the assignment as it was before deletion.
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	var deleted models.Assignment
	err := r.store.update(ctx, func(st *state) error {
		a, err := st.assignment(id)
		if err != nil {
			return err
		}
		deleted = st.assignmentView(a)

		removed := st.removeAssignment(a)
		r.store.logger.Debug().Int64("assignmentID", id).Int("removedGrades", removed).Msg("Assignment cascade complete")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// CreateGrade records a grade for a student enrolled in the
// assignment's course. value must lie in [0, 100].
func (r *AssignmentRepository) CreateGrade(ctx context.Context, assignmentID, studentID int64, value float64) (*models.Grade, error) {
	var created models.Grade
	err := r.store.update(ctx, func(st *state) error {
		a, err := st.assignment(assignmentID)
		if err != nil {
			return err
		}
		c, err := st.course(a.courseID)
		if err != nil {
			return err
		}
		if !c.students.contains(studentID) {
			return apperrors.NewEnrollmentNotFoundError(c.id, studentID)
		}
		if math.IsNaN(value) || value < models.MinGradeValue || value > models.MaxGradeValue {
			return apperrors.NewOutOfRangeError("grade", value, models.MinGradeValue, models.MaxGradeValue)
		}

		g := &gradeRecord{
			id:           st.nextGradeID,
			assignmentID: a.id,
			studentID:    studentID,
			value:        value,
		}
		st.nextGradeID++
		st.grades[g.id] = g
		a.grades.add(g.id)

		created = st.gradeView(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetGradeByID retrieves a grade
func (r *AssignmentRepository) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	var found models.Grade
	err := r.store.view(ctx, func(st *state) error {
		g, err := st.grade(id)
		if err != nil {
			return err
		}
		found = st.gradeView(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// DeleteGrade removes a single grade from its assignment
func (r *AssignmentRepository) DeleteGrade(ctx context.Context, id int64) (*models.Grade, error) {
	var deleted models.Grade
	err := r.store.update(ctx, func(st *state) error {
		g, err := st.grade(id)
		if err != nil {
			return err
		}
		deleted = st.gradeView(g)
		st.removeGrade(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
