package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/app/services"
	"github.com/yigit/gradebook/internal/middleware"
)

// UserController handles user registry endpoints
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetAllUsers lists every user
// @Summary List users
// @Description Lists all users in creation order. Admins carry no course list.
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// GetStudents lists every student
// @Summary List students
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Students retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /students [get]
func (c *UserController) GetStudents(ctx *gin.Context) {
	c.listByRole(ctx, models.RoleStudent)
}

// GetFaculties lists every faculty member
// @Summary List faculty members
// @Tags users
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Faculty retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /faculties [get]
func (c *UserController) GetFaculties(ctx *gin.Context) {
	c.listByRole(ctx, models.RoleFaculty)
}

func (c *UserController) listByRole(ctx *gin.Context, role models.Role) {
	users, err := c.userService.GetUsersByRole(ctx, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// FindStudent looks up a student
// @Summary Find a student
// @Description Looks a student up by userID first, then by email. At least one is required.
// @Tags users
// @Produce json
// @Param email query string false "Student email"
// @Param userID query int false "Student ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.User} "Student found"
// @Failure 400 {object} dto.ErrorResponse "Neither email nor userID given"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student [get]
func (c *UserController) FindStudent(ctx *gin.Context) {
	c.find(ctx, models.RoleStudent)
}

// FindFaculty looks up a faculty member
// @Summary Find a faculty member
// @Description Looks a faculty member up by userID first, then by email. At least one is required.
// @Tags users
// @Produce json
// @Param email query string false "Faculty email"
// @Param userID query int false "Faculty ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.User} "Faculty member found"
// @Failure 400 {object} dto.ErrorResponse "Neither email nor userID given"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty [get]
func (c *UserController) FindFaculty(ctx *gin.Context) {
	c.find(ctx, models.RoleFaculty)
}

func (c *UserController) find(ctx *gin.Context, role models.Role) {
	var userID *int64
	if raw, ok := ctx.GetQuery("userID"); ok && raw != "" {
		id, ok := parseID(ctx, "userID", raw)
		if !ok {
			return
		}
		userID = &id
	}

	user, err := c.userService.FindUser(ctx, role, ctx.Query("email"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// CreateUser registers a user
// @Summary Create a user
// @Description Registers a user. Emails are not required to be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.CreateUser(ctx, req.Name, req.Email, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user))
}

// GetUserByID retrieves a user
// @Summary Get a user
// @Tags users
// @Produce json
// @Param userID path int true "User ID" minimum(0)
// @Success 200 {object} dto.APIResponse{data=models.User} "User retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "userID")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}
