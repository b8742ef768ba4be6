package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/gradebook/internal/app/models/dto"
)

// parseID parses a non-negative int64 id. On failure it writes a 400
// response naming the offending field and returns false.
func parseID(ctx *gin.Context, field, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+field).
			WithField(field).
			WithDetails(map[string]interface{}{"reason": field + " must be a non-negative integer"})
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// pathID parses the named path parameter as an id
func pathID(ctx *gin.Context, param string) (int64, bool) {
	return parseID(ctx, param, ctx.Param(param))
}
