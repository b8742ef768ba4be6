package models

// User is an Admin, Student or Faculty member. Courses is only
// populated for roles that carry a course set.
type User struct {
	ID      int64       `json:"userID" example:"1"`
	Name    string      `json:"name" example:"Alyssa P. Hacker"`
	Email   string      `json:"email" example:"alyssa@example.com"`
	Role    Role        `json:"role" example:"Student" enums:"Admin,Student,Faculty"`
	Courses []CourseRef `json:"courses,omitempty"`
}

// UserRef is the one-level view of a user embedded in other entities
type UserRef struct {
	ID    int64  `json:"userID" example:"1"`
	Name  string `json:"name" example:"Alyssa P. Hacker"`
	Email string `json:"email" example:"alyssa@example.com"`
	Role  Role   `json:"role" example:"Faculty"`
}
