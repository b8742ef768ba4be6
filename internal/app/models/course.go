package models

// Course is owned by one Faculty member and holds its enrolled students
// and its assignments.
type Course struct {
	ID          int64           `json:"courseID" example:"0"`
	Name        string          `json:"name" example:"CS101"`
	Professor   *UserRef        `json:"professor"`
	Students    []UserRef       `json:"students"`
	Assignments []AssignmentRef `json:"assignments"`
}

// CourseRef is the one-level view of a course
type CourseRef struct {
	ID   int64  `json:"courseID" example:"0"`
	Name string `json:"name" example:"CS101"`
}

// StudentIDs returns the ids of the enrolled students
func (c *Course) StudentIDs() []int64 {
	ids := make([]int64, 0, len(c.Students))
	for _, s := range c.Students {
		ids = append(ids, s.ID)
	}
	return ids
}
