package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
)

// AssignmentController handles assignment and grade endpoints
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// GetAllAssignments lists every assignment
// @Summary List assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Assignment} "Assignments retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /assignments [get]
func (c *AssignmentController) GetAllAssignments(ctx *gin.Context) {
	assignments, err := c.assignmentService.GetAllAssignments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignments))
}

// GetAssignmentByID retrieves an assignment
// @Summary Get an assignment
// @Tags assignments
// @Produce json
// @Param assignmentID path int true "Assignment ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Assignment} "Assignment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{assignmentID} [get]
func (c *AssignmentController) GetAssignmentByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "assignmentID")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetAssignmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment))
}

// CreateAssignment adds an assignment to a course
// @Summary Create an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.CreateAssignmentRequest true "Assignment information"
// @Success 201 {object} dto.APIResponse{data=models.Assignment} "Assignment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx, *req.CourseID, req.Name)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(assignment))
}

// DeleteAssignment deletes an assignment and its grades
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Param assignmentID path int true "Assignment ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Assignment} "Assignment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{assignmentID} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	id, ok := pathID(ctx, "assignmentID")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.DeleteAssignment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(assignment))
}

// CreateGrade grades a student on an assignment
// @Summary Grade a student
// @Description The student must be enrolled in the assignment's course and the grade must lie in [0, 100].
// @Tags grades
// @Accept json
// @Produce json
// @Param assignmentID path int true "Assignment ID" minimum(0)
// @Param request body dto.CreateGradeRequest true "Grade information"
// @Success 201 {object} dto.APIResponse{data=models.Grade} "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or grade out of range"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found or student not enrolled"
// @Router /assignments/{assignmentID}/grades [post]
func (c *AssignmentController) CreateGrade(ctx *gin.Context) {
	assignmentID, ok := pathID(ctx, "assignmentID")
	if !ok {
		return
	}
	var req dto.CreateGradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	grade, err := c.assignmentService.CreateGrade(ctx, assignmentID, *req.StudentID, *req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(grade))
}

// GetGradeByID retrieves a grade
// @Summary Get a grade
// @Tags grades
// @Produce json
// @Param gradeID path int true "Grade ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade ID"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{gradeID} [get]
func (c *AssignmentController) GetGradeByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "gradeID")
	if !ok {
		return
	}

	grade, err := c.assignmentService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}

// DeleteGrade deletes a grade
// @Summary Delete a grade
// @Tags grades
// @Produce json
// @Param gradeID path int true "Grade ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade ID"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{gradeID} [delete]
func (c *AssignmentController) DeleteGrade(ctx *gin.Context) {
	id, ok := pathID(ctx, "gradeID")
	if !ok {
		return
	}

	grade, err := c.assignmentService.DeleteGrade(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(grade))
}
