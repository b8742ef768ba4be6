package repositories

// Repositories holds all the repository instances. They share one Store,
// so a course deletion can cascade into the assignment ledger under a
// single lock acquisition.
type Repositories struct {
	Store                *Store
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	AssignmentRepository *AssignmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Store:                store,
		UserRepository:       NewUserRepository(store),
		CourseRepository:     NewCourseRepository(store),
		AssignmentRepository: NewAssignmentRepository(store),
	}
}
