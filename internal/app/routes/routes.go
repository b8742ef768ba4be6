package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/controllers"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	User       *controllers.UserController
	Course     *controllers.CourseController
	Assignment *controllers.AssignmentController
	System     *controllers.SystemController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/hello", c.System.Hello)
	v1.GET("/stats", c.System.GetStats)

	// --- User registry ---
	users := v1.Group("/users")
	{
		users.GET("", c.User.GetAllUsers)
		users.POST("", c.User.CreateUser)
		users.GET("/:userID", c.User.GetUserByID)
	}
	v1.GET("/students", c.User.GetStudents)
	v1.GET("/faculties", c.User.GetFaculties)
	v1.GET("/student", c.User.FindStudent)
	v1.GET("/faculty", c.User.FindFaculty)

	// --- Course catalog ---
	courses := v1.Group("/courses")
	{
		courses.GET("", c.Course.GetAllCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:courseID", c.Course.GetCourseByID)
		courses.DELETE("/:courseID", c.Course.DeleteCourse)
		courses.POST("/:courseID/students/:studentID", c.Course.AddStudent)
		courses.DELETE("/:courseID/students/:studentID", c.Course.RemoveStudent)
	}

	// --- Assignment ledger ---
	assignments := v1.Group("/assignments")
	{
		assignments.GET("", c.Assignment.GetAllAssignments)
		assignments.POST("", c.Assignment.CreateAssignment)
		assignments.GET("/:assignmentID", c.Assignment.GetAssignmentByID)
		assignments.DELETE("/:assignmentID", c.Assignment.DeleteAssignment)
		assignments.POST("/:assignmentID/grades", c.Assignment.CreateGrade)
	}
	grades := v1.Group("/grades")
	{
		grades.GET("/:gradeID", c.Assignment.GetGradeByID)
		grades.DELETE("/:gradeID", c.Assignment.DeleteGrade)
	}
}
