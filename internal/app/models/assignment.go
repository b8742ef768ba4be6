package models

// Assignment belongs to exactly one course and collects grades
type Assignment struct {
	ID     int64      `json:"assignmentID" example:"0"`
	Name   string     `json:"name" example:"HW1"`
	Course CourseRef  `json:"course"`
	Grades []GradeRef `json:"grades"`
}

// AssignmentRef is the one-level view of an assignment
type AssignmentRef struct {
	ID   int64  `json:"assignmentID" example:"0"`
	Name string `json:"name" example:"HW1"`
}

// Grade is a student's score on an assignment
type Grade struct {
	ID         int64         `json:"assignmentGradeID" example:"0"`
	Assignment AssignmentRef `json:"assignment"`
	Student    UserRef       `json:"student"`
	Value      float64       `json:"grade" example:"92.5"`
}

// GradeRef is the view of a grade listed on its assignment
type GradeRef struct {
	ID        int64   `json:"assignmentGradeID" example:"0"`
	StudentID int64   `json:"studentID" example:"1"`
	Value     float64 `json:"grade" example:"92.5"`
}

// Stats counts the active entities per collection
type Stats struct {
	Users       int `json:"users"`
	Courses     int `json:"courses"`
	Assignments int `json:"assignments"`
	Grades      int `json:"grades"`
	Enrollments int `json:"enrollments"`
}
