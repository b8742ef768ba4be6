package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(NewStore(StoreOptions{
		MaxReaders:  4,
		LockTimeout: 200 * time.Millisecond,
		Logger:      zerolog.Nop(),
	}))
}

// assertIntegrity walks every collection and checks that each stored
// reference resolves and is mirrored on the other side.
func assertIntegrity(t *testing.T, s *Store) {
	t.Helper()
	st := s.state

	for _, u := range st.users {
		if !u.role.HasCourses() {
			assert.Empty(t, u.courses, "admin %d holds courses", u.id)
		}
		for _, cid := range u.courses {
			c, ok := st.courses[cid]
			if !assert.True(t, ok, "user %d references missing course %d", u.id, cid) {
				continue
			}
			switch u.role {
			case models.RoleFaculty:
				assert.True(t, c.hasProfessor && c.professorID == u.id, "faculty %d lists course %d it does not own", u.id, cid)
			case models.RoleStudent:
				assert.True(t, c.students.contains(u.id), "student %d lists course %d without enrollment", u.id, cid)
			}
		}
	}

	for _, c := range st.courses {
		if c.hasProfessor {
			p, ok := st.users[c.professorID]
			if assert.True(t, ok, "course %d has missing professor", c.id) {
				assert.Equal(t, models.RoleFaculty, p.role)
				assert.True(t, p.courses.contains(c.id), "I1 broken for course %d", c.id)
			}
		}
		for _, sid := range c.students {
			u, ok := st.users[sid]
			if assert.True(t, ok, "course %d enrolls missing student %d", c.id, sid) {
				assert.Equal(t, models.RoleStudent, u.role)
				assert.True(t, u.courses.contains(c.id), "I2 broken for course %d student %d", c.id, sid)
			}
		}
		for _, aid := range c.assignments {
			a, ok := st.assignments[aid]
			if assert.True(t, ok, "course %d lists missing assignment %d", c.id, aid) {
				assert.Equal(t, c.id, a.courseID)
			}
		}
	}

	for _, a := range st.assignments {
		c, ok := st.courses[a.courseID]
		if assert.True(t, ok, "assignment %d points at missing course", a.id) {
			assert.True(t, c.assignments.contains(a.id), "I3 broken for assignment %d", a.id)
		}
		for _, gid := range a.grades {
			g, ok := st.grades[gid]
			if assert.True(t, ok, "assignment %d lists missing grade %d", a.id, gid) {
				assert.Equal(t, a.id, g.assignmentID)
			}
		}
	}

	for _, g := range st.grades {
		a, ok := st.assignments[g.assignmentID]
		if assert.True(t, ok, "grade %d points at missing assignment", g.id) {
			assert.True(t, a.grades.contains(g.id), "I4 broken for grade %d", g.id)
		}
		_, ok = st.users[g.studentID]
		assert.True(t, ok, "grade %d points at missing student", g.id)
	}
}

func TestIDSet(t *testing.T) {
	var s idSet
	assert.True(t, s.add(3))
	assert.True(t, s.add(1))
	assert.False(t, s.add(3))
	assert.Equal(t, idSet{3, 1}, s)

	assert.True(t, s.remove(3))
	assert.False(t, s.remove(3))
	assert.Equal(t, idSet{1}, s)
}

func TestStoreWriteExcludesReaders(t *testing.T) {
	repos := newTestRepos(t)
	store := repos.Store

	release, err := store.acquire(context.Background(), store.weight)
	require.NoError(t, err)

	_, err = repos.UserRepository.ListUsers(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStoreBusy))

	release()

	users, err := repos.UserRepository.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStoreReadersShareLock(t *testing.T) {
	repos := newTestRepos(t)
	store := repos.Store

	release, err := store.acquire(context.Background(), 1)
	require.NoError(t, err)
	defer release()

	_, err = repos.UserRepository.ListUsers(context.Background())
	assert.NoError(t, err)

	_, err = repos.UserRepository.CreateUser(context.Background(), "blocked", "b@example.com", models.RoleAdmin)
	assert.True(t, errors.Is(err, apperrors.ErrStoreBusy))
}

func TestStoreHonoursCallerDeadline(t *testing.T) {
	repos := newTestRepos(t)
	store := repos.Store

	release, err := store.acquire(context.Background(), store.weight)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = repos.CourseRepository.GetAllCourses(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrStoreBusy))
	assert.Less(t, time.Since(start), store.lockTimeout)
}

func TestStoreConcurrentMutationsKeepIntegrity(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	prof, err := repos.UserRepository.CreateUser(ctx, "prof", "prof@example.com", models.RoleFaculty)
	require.NoError(t, err)
	course, err := repos.CourseRepository.CreateCourse(ctx, "CS101", prof.ID)
	require.NoError(t, err)

	const n = 20
	students := make([]int64, n)
	for i := range students {
		s, err := repos.UserRepository.CreateUser(ctx, "student", "s@example.com", models.RoleStudent)
		require.NoError(t, err)
		students[i] = s.ID
	}

	longCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, sid := range students {
		wg.Add(2)
		go func(sid int64) {
			defer wg.Done()
			_, err := repos.CourseRepository.AddStudent(longCtx, course.ID, sid)
			assert.NoError(t, err)
		}(sid)
		go func() {
			defer wg.Done()
			_, err := repos.CourseRepository.GetCourseByID(longCtx, course.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repos.CourseRepository.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, students, got.StudentIDs())
	assertIntegrity(t, repos.Store)
}

func TestStoreStats(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	prof, _ := repos.UserRepository.CreateUser(ctx, "prof", "p@example.com", models.RoleFaculty)
	student, _ := repos.UserRepository.CreateUser(ctx, "stu", "s@example.com", models.RoleStudent)
	course, _ := repos.CourseRepository.CreateCourse(ctx, "CS101", prof.ID)
	_, _ = repos.CourseRepository.AddStudent(ctx, course.ID, student.ID)
	hw, _ := repos.AssignmentRepository.CreateAssignment(ctx, course.ID, "HW1")
	_, _ = repos.AssignmentRepository.CreateGrade(ctx, hw.ID, student.ID, 80)

	stats, err := repos.Store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 2, Courses: 1, Assignments: 1, Grades: 1, Enrollments: 1}, stats)
}

func TestNewStoreZeroOptions(t *testing.T) {
	s := NewStore(StoreOptions{Logger: zerolog.Nop()})
	assert.Equal(t, int64(1), s.weight)
	assert.Equal(t, DefaultLockTimeout, s.lockTimeout)

	repos := NewRepositories(s)
	ctx := context.Background()
	u, err := repos.UserRepository.CreateUser(ctx, "solo", "solo@example.com", models.RoleStudent)
	require.NoError(t, err)
	got, err := repos.UserRepository.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "solo", got.Name)
}
