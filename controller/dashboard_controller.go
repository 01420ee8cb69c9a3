package controller

import (
	"context"
	"net/http"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/services"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	ctx     context.Context
	service services.DashboardServiceInterface
	logger  logger.Logger
}

func NewDashboardController(ctx context.Context, service services.DashboardServiceInterface, log logger.Logger) *DashboardController {
	return &DashboardController{
		ctx:     ctx,
		service: service,
		logger:  log,
	}
}

// GetStats handles GET /api/v1/submissions/stats
// @Summary Dashboard statistics
// @Description Grouped counts by type, stage, status and priority, recent submissions, error rate and volume metrics
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Dashboard statistics retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/stats [get]
func (h *DashboardController) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(h.ctx)
	if err != nil {
		h.logger.Errorf("Failed to compute dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute dashboard statistics",
			Error: &models.APIError{
				Type: "PersistenceError",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Dashboard statistics retrieved successfully",
		Data:    stats,
	})
}
