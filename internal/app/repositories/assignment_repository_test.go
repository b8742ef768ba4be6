package repositories

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

func TestCreateAssignmentLinksCourse(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	hw, err := f.repos.AssignmentRepository.CreateAssignment(ctx, f.course.ID, "HW1")
	require.NoError(t, err)
	assert.Equal(t, models.CourseRef{ID: f.course.ID, Name: "CS101"}, hw.Course)
	assert.Empty(t, hw.Grades)

	course, err := f.repos.CourseRepository.GetCourseByID(ctx, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.AssignmentRef{{ID: hw.ID, Name: "HW1"}}, course.Assignments)

	_, err = f.repos.AssignmentRepository.CreateAssignment(ctx, 404, "HW1")
	assert.Equal(t, apperrors.EntityCourse, apperrors.EntityOf(err))
	assertIntegrity(t, f.repos.Store)
}

func TestCreateGradeValidation(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ledger := f.repos.AssignmentRepository

	hw, err := ledger.CreateAssignment(ctx, f.course.ID, "HW1")
	require.NoError(t, err)

	_, err = ledger.CreateGrade(ctx, hw.ID, f.student.ID, 50)
	require.Error(t, err, "student not enrolled")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Equal(t, apperrors.EntityEnrollment, apperrors.EntityOf(err))

	_, err = f.repos.CourseRepository.AddStudent(ctx, f.course.ID, f.student.ID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value float64
		kind  error
	}{
		{"lower bound", 0, nil},
		{"upper bound", 100, nil},
		{"fractional", 92.5, nil},
		{"above range", 150, apperrors.ErrValueOutOfRange},
		{"below range", -0.5, apperrors.ErrValueOutOfRange},
		{"not a number", math.NaN(), apperrors.ErrValueOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ledger.CreateGrade(ctx, hw.ID, f.student.ID, tt.value)
			if tt.kind == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.value, g.Value)
				assert.Equal(t, f.student.ID, g.Student.ID)
				assert.Equal(t, hw.ID, g.Assignment.ID)
				return
			}
			assert.True(t, errors.Is(err, tt.kind))
		})
	}

	_, err = ledger.CreateGrade(ctx, 999, f.student.ID, 50)
	assert.Equal(t, apperrors.EntityAssignment, apperrors.EntityOf(err))

	got, err := ledger.GetAssignmentByID(ctx, hw.ID)
	require.NoError(t, err)
	assert.Len(t, got.Grades, 3, "only the in-range grades were stored")
	assertIntegrity(t, f.repos.Store)
}

func TestGradeSurvivesUnenrollment(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	hw, _ := f.repos.AssignmentRepository.CreateAssignment(ctx, f.course.ID, "HW1")
	_, _ = f.repos.CourseRepository.AddStudent(ctx, f.course.ID, f.student.ID)
	g, err := f.repos.AssignmentRepository.CreateGrade(ctx, hw.ID, f.student.ID, 75)
	require.NoError(t, err)

	_, err = f.repos.CourseRepository.RemoveStudent(ctx, f.course.ID, f.student.ID)
	require.NoError(t, err)

	_, err = f.repos.AssignmentRepository.GetGradeByID(ctx, g.ID)
	assert.NoError(t, err)

	_, err = f.repos.AssignmentRepository.CreateGrade(ctx, hw.ID, f.student.ID, 75)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assertIntegrity(t, f.repos.Store)
}

func TestDeleteAssignmentCascadesGrades(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ledger := f.repos.AssignmentRepository

	hw, _ := ledger.CreateAssignment(ctx, f.course.ID, "HW1")
	other, _ := ledger.CreateAssignment(ctx, f.course.ID, "HW2")
	_, _ = f.repos.CourseRepository.AddStudent(ctx, f.course.ID, f.student.ID)
	g1, _ := ledger.CreateGrade(ctx, hw.ID, f.student.ID, 10)
	g2, _ := ledger.CreateGrade(ctx, hw.ID, f.student.ID, 20)
	g3, _ := ledger.CreateGrade(ctx, other.ID, f.student.ID, 30)

	deleted, err := ledger.DeleteAssignment(ctx, hw.ID)
	require.NoError(t, err)
	assert.Len(t, deleted.Grades, 2)

	for _, id := range []int64{g1.ID, g2.ID} {
		_, err := ledger.GetGradeByID(ctx, id)
		assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	}
	_, err = ledger.GetGradeByID(ctx, g3.ID)
	assert.NoError(t, err)

	course, _ := f.repos.CourseRepository.GetCourseByID(ctx, f.course.ID)
	assert.Equal(t, []models.AssignmentRef{{ID: other.ID, Name: "HW2"}}, course.Assignments)

	_, err = ledger.DeleteAssignment(ctx, hw.ID)
	assert.Equal(t, apperrors.EntityAssignment, apperrors.EntityOf(err))
	assertIntegrity(t, f.repos.Store)
}

func TestDeleteGrade(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ledger := f.repos.AssignmentRepository

	hw, _ := ledger.CreateAssignment(ctx, f.course.ID, "HW1")
	_, _ = f.repos.CourseRepository.AddStudent(ctx, f.course.ID, f.student.ID)
	g, _ := ledger.CreateGrade(ctx, hw.ID, f.student.ID, 64)

	deleted, err := ledger.DeleteGrade(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 64.0, deleted.Value)

	got, _ := ledger.GetAssignmentByID(ctx, hw.ID)
	assert.Empty(t, got.Grades)

	_, err = ledger.DeleteGrade(ctx, g.ID)
	assert.Equal(t, apperrors.EntityGrade, apperrors.EntityOf(err))
	assertIntegrity(t, f.repos.Store)
}

// Faculty F owns CS101, student S enrolls, HW1 is graded, then CS101 goes.
func TestCourseLifecycleScenario(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	fac, err := repos.UserRepository.CreateUser(ctx, "F", "f@example.com", models.RoleFaculty)
	require.NoError(t, err)
	stu, err := repos.UserRepository.CreateUser(ctx, "S", "s@example.com", models.RoleStudent)
	require.NoError(t, err)

	cs101, err := repos.CourseRepository.CreateCourse(ctx, "CS101", fac.ID)
	require.NoError(t, err)
	assert.Equal(t, fac.ID, cs101.Professor.ID)

	_, err = repos.CourseRepository.AddStudent(ctx, cs101.ID, stu.ID)
	require.NoError(t, err)
	s, _ := repos.UserRepository.GetUserByID(ctx, stu.ID)
	assert.Equal(t, []models.CourseRef{{ID: cs101.ID, Name: "CS101"}}, s.Courses)

	hw1, err := repos.AssignmentRepository.CreateAssignment(ctx, cs101.ID, "HW1")
	require.NoError(t, err)
	c, _ := repos.CourseRepository.GetCourseByID(ctx, cs101.ID)
	assert.Equal(t, []models.AssignmentRef{{ID: hw1.ID, Name: "HW1"}}, c.Assignments)

	grade, err := repos.AssignmentRepository.CreateGrade(ctx, hw1.ID, stu.ID, 92.5)
	require.NoError(t, err)

	_, err = repos.CourseRepository.DeleteCourse(ctx, cs101.ID)
	require.NoError(t, err)

	_, err = repos.AssignmentRepository.GetAssignmentByID(ctx, hw1.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	_, err = repos.AssignmentRepository.GetGradeByID(ctx, grade.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	f, _ := repos.UserRepository.GetUserByID(ctx, fac.ID)
	assert.Empty(t, f.Courses)
	s, _ = repos.UserRepository.GetUserByID(ctx, stu.ID)
	assert.Empty(t, s.Courses)

	stats, err := repos.Store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 2}, stats)
	assertIntegrity(t, repos.Store)
}
