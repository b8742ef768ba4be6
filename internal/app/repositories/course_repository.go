package repositories

import (
	"context"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// CourseRepository is the course catalog. It owns the faculty↔course
// and student↔course links.
type CourseRepository struct {
	store *Store
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(store *Store) *CourseRepository {
	return &CourseRepository{store: store}
}

func (st *state) course(id int64) (*courseRecord, error) {
	c, ok := st.courses[id]
	if !ok {
		return nil, apperrors.NewEntityNotFoundError(apperrors.EntityCourse, id)
	}
	return c, nil
}

// CreateCourse creates a course owned by facultyID and adds it to the
// faculty member's course set.
func (r *CourseRepository) CreateCourse(ctx context.Context, name string, facultyID int64) (*models.Course, error) {
	var created models.Course
	err := r.store.update(ctx, func(st *state) error {
		professor, err := st.userWithRole(facultyID, models.RoleFaculty)
		if err != nil {
			return err
		}

		c := &courseRecord{
			id:           st.nextCourseID,
			name:         name,
			professorID:  professor.id,
			hasProfessor: true,
		}
		st.nextCourseID++
		st.courses[c.id] = c
		professor.courses.add(c.id)

		created = st.courseView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCourseByID retrieves a course
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	var found models.Course
	err := r.store.view(ctx, func(st *state) error {
		c, err := st.course(id)
		if err != nil {
			return err
		}
		found = st.courseView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

// GetAllCourses returns every course in creation order
func (r *CourseRepository) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	courses := []*models.Course{}
	err := r.store.view(ctx, func(st *state) error {
		for _, id := range sortedKeys(st.courses) {
			view := st.courseView(st.courses[id])
			courses = append(courses, &view)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// AddStudent enrolls a student. Enrolling twice is a no-op.
func (r *CourseRepository) AddStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error) {
	var updated models.Course
	err := r.store.update(ctx, func(st *state) error {
		c, err := st.course(courseID)
		if err != nil {
			return err
		}
		student, err := st.userWithRole(studentID, models.RoleStudent)
		if err != nil {
			return err
		}

		if c.students.add(student.id) {
			student.courses.add(c.id)
			r.store.logger.Debug().Int64("courseID", c.id).Int64("studentID", student.id).Msg("Student enrolled")
		}

		updated = st.courseView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveStudent drops an enrollment from both sides
func (r *CourseRepository) RemoveStudent(ctx context.Context, courseID, studentID int64) (*models.Course, error) {
	var updated models.Course
	err := r.store.update(ctx, func(st *state) error {
		c, err := st.course(courseID)
		if err != nil {
			return err
		}
		student, err := st.userWithRole(studentID, models.RoleStudent)
		if err != nil {
			return err
		}
		if !c.students.contains(student.id) {
			return apperrors.NewEnrollmentNotFoundError(c.id, student.id)
		}

		c.students.remove(student.id)
		student.courses.remove(c.id)

		updated = st.courseView(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCourse removes a course, every link to it, and every
// assignment and grade that belongs to it. It returns the course as it
// was before deletion.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) (*models.Course, error) {
	var deleted models.Course
	err := r.store.update(ctx, func(st *state) error {
		c, err := st.course(id)
		if err != nil {
			return err
		}
		deleted = st.courseView(c)

		res := st.removeCourse(c)
		r.store.logger.Debug().
			Int64("courseID", id).
			Int("unlinkedUsers", res.unlinkedUsers).
			Int("removedAssignments", res.removedAssignments).
			Int("removedGrades", res.removedGrades).
			Msg("Course cascade complete")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
