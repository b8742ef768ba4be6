package repositories

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
)

// Store is the shared in-memory state behind the user, course and
// assignment repositories. Reads share the lock; every mutation holds
// it exclusively for its whole cascade.
type Store struct {
	sem         *semaphore.Weighted
	weight      int64
	lockTimeout time.Duration
	state       *state
	logger      zerolog.Logger
}

// StoreOptions configures a Store
type StoreOptions struct {
	// MaxReaders is the number of reads that may run at once
	MaxReaders int
	// LockTimeout applies when the caller's context has no deadline
	LockTimeout time.Duration
	Logger      zerolog.Logger
}

// DefaultLockTimeout is used when StoreOptions.LockTimeout is not positive
const DefaultLockTimeout = 2 * time.Second

// NewStore creates an empty store. A MaxReaders below one is raised to one
// and a non-positive LockTimeout becomes DefaultLockTimeout.
func NewStore(opts StoreOptions) *Store {
	if opts.MaxReaders < 1 {
		opts.MaxReaders = 1
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}
	return &Store{
		sem:         semaphore.NewWeighted(int64(opts.MaxReaders)),
		weight:      int64(opts.MaxReaders),
		lockTimeout: opts.LockTimeout,
		state:       newState(),
		logger:      opts.Logger,
	}
}

func (s *Store) acquire(ctx context.Context, n int64) (func(), error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	if err := s.sem.Acquire(ctx, n); err != nil {
		s.logger.Warn().Err(err).Int64("weight", n).Msg("Store lock not acquired")
		return nil, apperrors.NewCustomError(apperrors.ErrStoreBusy, fmt.Sprintf("store lock not acquired: %v", err)).
			WithCode("STORE_BUSY")
	}
	return func() { s.sem.Release(n) }, nil
}

// view runs fn with shared access
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	release, err := s.acquire(ctx, 1)
	if err != nil {
		return err
	}
	defer release()
	return fn(s.state)
}

// update runs fn with exclusive access. fn must validate every
// reference before it changes anything.
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	release, err := s.acquire(ctx, s.weight)
	if err != nil {
		return err
	}
	defer release()
	return fn(s.state)
}

// Stats counts active entities
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats
	err := s.view(ctx, func(st *state) error {
		stats = models.Stats{
			Users:       len(st.users),
			Courses:     len(st.courses),
			Assignments: len(st.assignments),
			Grades:      len(st.grades),
		}
		for _, c := range st.courses {
			stats.Enrollments += len(c.students)
		}
		return nil
	})
	return stats, err
}

// records

type userRecord struct {
	id      int64
	name    string
	email   string
	role    models.Role
	courses idSet
}

type courseRecord struct {
	id          int64
	name        string
	professorID int64
	// hasProfessor is false only if the professor link was cleared
	hasProfessor bool
	students     idSet
	assignments  idSet
}

type assignmentRecord struct {
	id       int64
	name     string
	courseID int64
	grades   idSet
}

type gradeRecord struct {
	id           int64
	assignmentID int64
	studentID    int64
	value        float64
}

// state holds every collection. Ids come from per-collection
// sequences and are never reused, so sorting ids gives creation order.
type state struct {
	users       map[int64]*userRecord
	courses     map[int64]*courseRecord
	assignments map[int64]*assignmentRecord
	grades      map[int64]*gradeRecord

	nextUserID       int64
	nextCourseID     int64
	nextAssignmentID int64
	nextGradeID      int64
}

func newState() *state {
	return &state{
		users:       map[int64]*userRecord{},
		courses:     map[int64]*courseRecord{},
		assignments: map[int64]*assignmentRecord{},
		grades:      map[int64]*gradeRecord{},
	}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// idSet is an insertion-ordered set of ids
type idSet []int64

func (s idSet) contains(id int64) bool {
	return slices.Contains(s, id)
}

// add appends id unless present and reports whether it was added
func (s *idSet) add(id int64) bool {
	if s.contains(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// remove drops id and reports whether it was present
func (s *idSet) remove(id int64) bool {
	i := slices.Index(*s, id)
	if i < 0 {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

// snapshots, resolved one level deep

func (st *state) userRef(u *userRecord) models.UserRef {
	return models.UserRef{ID: u.id, Name: u.name, Email: u.email, Role: u.role}
}

func (st *state) userView(u *userRecord) models.User {
	user := models.User{ID: u.id, Name: u.name, Email: u.email, Role: u.role}
	if u.role.HasCourses() {
		user.Courses = make([]models.CourseRef, 0, len(u.courses))
		for _, cid := range u.courses {
			if c, ok := st.courses[cid]; ok {
				user.Courses = append(user.Courses, models.CourseRef{ID: c.id, Name: c.name})
			}
		}
	}
	return user
}

func (st *state) courseView(c *courseRecord) models.Course {
	course := models.Course{
		ID:          c.id,
		Name:        c.name,
		Students:    make([]models.UserRef, 0, len(c.students)),
		Assignments: make([]models.AssignmentRef, 0, len(c.assignments)),
	}
	if c.hasProfessor {
		if p, ok := st.users[c.professorID]; ok {
			ref := st.userRef(p)
			course.Professor = &ref
		}
	}
	for _, sid := range c.students {
		if u, ok := st.users[sid]; ok {
			course.Students = append(course.Students, st.userRef(u))
		}
	}
	for _, aid := range c.assignments {
		if a, ok := st.assignments[aid]; ok {
			course.Assignments = append(course.Assignments, models.AssignmentRef{ID: a.id, Name: a.name})
		}
	}
	return course
}

func (st *state) assignmentView(a *assignmentRecord) models.Assignment {
	assignment := models.Assignment{
		ID:     a.id,
		Name:   a.name,
		Grades: make([]models.GradeRef, 0, len(a.grades)),
	}
	if c, ok := st.courses[a.courseID]; ok {
		assignment.Course = models.CourseRef{ID: c.id, Name: c.name}
	}
	for _, gid := range a.grades {
		if g, ok := st.grades[gid]; ok {
			assignment.Grades = append(assignment.Grades, models.GradeRef{ID: g.id, StudentID: g.studentID, Value: g.value})
		}
	}
	return assignment
}

func (st *state) gradeView(g *gradeRecord) models.Grade {
	grade := models.Grade{ID: g.id, Value: g.value}
	if a, ok := st.assignments[g.assignmentID]; ok {
		grade.Assignment = models.AssignmentRef{ID: a.id, Name: a.name}
	}
	if u, ok := st.users[g.studentID]; ok {
		grade.Student = st.userRef(u)
	}
	return grade
}

// cascades; callers hold the exclusive lock and have already
// validated that the root entity exists

func (st *state) removeGrade(g *gradeRecord) {
	if a, ok := st.assignments[g.assignmentID]; ok {
		a.grades.remove(g.id)
	}
	delete(st.grades, g.id)
}

// removeAssignment deletes the assignment and every grade on it.
// It returns the number of grades removed.
func (st *state) removeAssignment(a *assignmentRecord) int {
	removed := 0
	for _, gid := range slices.Clone(a.grades) {
		if g, ok := st.grades[gid]; ok {
			st.removeGrade(g)
			removed++
		}
	}
	if c, ok := st.courses[a.courseID]; ok {
		c.assignments.remove(a.id)
	}
	delete(st.assignments, a.id)
	return removed
}

// cascadeResult summarises what a course deletion touched
type cascadeResult struct {
	unlinkedUsers      int
	removedAssignments int
	removedGrades      int
}

// removeCourse unlinks the professor and every student, deletes the
// course's assignments with their grades, then drops the course.
func (st *state) removeCourse(c *courseRecord) cascadeResult {
	var res cascadeResult
	if c.hasProfessor {
		if p, ok := st.users[c.professorID]; ok && p.courses.remove(c.id) {
			res.unlinkedUsers++
		}
		c.hasProfessor = false
	}
	for _, sid := range c.students {
		if u, ok := st.users[sid]; ok && u.courses.remove(c.id) {
			res.unlinkedUsers++
		}
	}
	c.students = nil
	for _, aid := range slices.Clone(c.assignments) {
		if a, ok := st.assignments[aid]; ok {
			res.removedGrades += st.removeAssignment(a)
			res.removedAssignments++
		}
	}
	delete(st.courses, c.id)
	return res
}
