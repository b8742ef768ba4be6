package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
)

// CourseController handles course catalog endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetAllCourses lists every course
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetCourseByID retrieves a course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param courseID path int true "Course ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseID} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "courseID")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// CreateCourse creates a course taught by a faculty member
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req.Name, *req.FacultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// DeleteCourse deletes a course with its assignments and grades
// @Summary Delete a course
// @Description Unlinks the professor and students, deletes every assignment and grade, and returns the course as it was.
// @Tags courses
// @Produce json
// @Param courseID path int true "Course ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseID} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "courseID")
	if !ok {
		return
	}

	course, err := c.courseService.DeleteCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// AddStudent enrolls a student in a course
// @Summary Enroll a student
// @Description Idempotent. Enrolling an already enrolled student changes nothing.
// @Tags courses
// @Produce json
// @Param courseID path int true "Course ID" minimum(0)
// @Param studentID path int true "Student ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Router /courses/{courseID}/students/{studentID} [post]
func (c *CourseController) AddStudent(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseID")
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "studentID")
	if !ok {
		return
	}

	course, err := c.courseService.AddStudent(ctx, courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// RemoveStudent withdraws a student from a course
// @Summary Withdraw a student
// @Tags courses
// @Produce json
// @Param courseID path int true "Course ID" minimum(0)
// @Param studentID path int true "Student ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Student withdrawn"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Course, student or enrollment not found"
// @Router /courses/{courseID}/students/{studentID} [delete]
func (c *CourseController) RemoveStudent(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseID")
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "studentID")
	if !ok {
		return
	}

	course, err := c.courseService.RemoveStudent(ctx, courseID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}
