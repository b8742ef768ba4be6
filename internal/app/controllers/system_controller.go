package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/app/models/dto"
	"github.com/yigit/gradebook/internal/middleware"
)

// StatsProvider reports collection sizes
type StatsProvider interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// SystemController serves the greeting and store statistics
type SystemController struct {
	stats StatsProvider
}

// NewSystemController creates a new SystemController
func NewSystemController(stats StatsProvider) *SystemController {
	return &SystemController{stats: stats}
}

// Hello greets the caller
// @Summary Say hello
// @Tags system
// @Produce json
// @Param name query string true "Name to greet"
// @Success 200 {object} dto.APIResponse{data=dto.GreetingResponse} "Greeting"
// @Failure 400 {object} dto.ErrorResponse "Missing name"
// @Router /hello [get]
func (c *SystemController) Hello(ctx *gin.Context) {
	name, ok := ctx.GetQuery("name")
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "name is required").WithField("name")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.GreetingResponse{
		Message: fmt.Sprintf("Hello %s!", name),
	}))
}

// GetStats reports how many entities of each kind are stored
// @Summary Store statistics
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.Stats} "Statistics"
// @Failure 503 {object} dto.ErrorResponse "Store busy"
// @Router /stats [get]
func (c *SystemController) GetStats(ctx *gin.Context) {
	stats, err := c.stats.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
