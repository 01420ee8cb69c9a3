package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/services"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	ctx     context.Context
	service services.SubmissionServiceInterface
	config  *models.Config
	logger  logger.Logger
}

func NewSubmissionController(ctx context.Context, service services.SubmissionServiceInterface, cfg *models.Config, log logger.Logger) *SubmissionController {
	return &SubmissionController{
		ctx:     ctx,
		service: service,
		config:  cfg,
		logger:  log,
	}
}

func (h *SubmissionController) ingestMeta(c *gin.Context, raw []byte) services.IngestMeta {
	return services.IngestMeta{
		RawInput:  string(raw),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Create handles POST /api/v1/submissions
// @Summary Create a submission
// @Description Ingest a new lead submission from a web form or direct call
// @Tags Submissions
// @Accept json
// @Produce json
// @Param request body models.Submission true "Submission payload"
// @Success 201 {object} models.APIResponse "Submission created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Validation failed"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions [post]
func (h *SubmissionController) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.logger.Error("Failed to read request body:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	var sub models.Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		h.logger.Error("Failed to parse JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	stored, err := h.service.Create(h.ctx, &sub, h.ingestMeta(c, raw))
	if err != nil {
		respondError(c, h.config, err, "Failed to create submission")
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Submission created successfully",
		Data:    stored,
	})
}

// CreateWebhook handles POST /api/v1/submissions/webhook
// @Summary Ingest a workflow-automation payload
// @Description Leniently extract a submission from an arbitrary automation payload; unknown fields are kept under customFields
// @Tags Submissions
// @Accept json
// @Produce json
// @Success 201 {object} models.APIResponse "Submission created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Required fields missing"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/webhook [post]
func (h *SubmissionController) CreateWebhook(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	sub := services.ParseWebhookPayload(raw)

	stored, err := h.service.Create(h.ctx, sub, h.ingestMeta(c, raw))
	if err != nil {
		respondError(c, h.config, err, "Failed to create submission")
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Submission created successfully",
		Data:    stored,
	})
}

// List handles GET /api/v1/submissions
// @Summary List submissions
// @Description List submissions with filtering, search and pagination
// @Tags Submissions
// @Security BearerAuth
// @Produce json
// @Param type query string false "Filter by submission type"
// @Param stage query string false "Filter by pipeline stage"
// @Param source query string false "Filter by source"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assignedTo query string false "Filter by assignee"
// @Param search query string false "Case-insensitive search over name, email and message"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Items per page"
// @Param sort query string false "Sort field, leading '-' for descending (default -createdAt)"
// @Success 200 {object} models.APIResponse "Submission list retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions [get]
func (h *SubmissionController) List(c *gin.Context) {
	var params models.SubmissionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid query parameters",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	list, err := h.service.List(h.ctx, params)
	if err != nil {
		respondError(c, h.config, err, "Failed to list submissions")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submission list retrieved successfully",
		Data:    list,
	})
}

// Get handles GET /api/v1/submissions/{id}
// @Summary Get a submission
// @Description Retrieve one submission by id
// @Tags Submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.APIResponse "Submission retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid submission id"
// @Failure 404 {object} models.APIResponse "Not Found - Submission does not exist"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/{id} [get]
func (h *SubmissionController) Get(c *gin.Context) {
	sub, err := h.service.GetByID(h.ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.config, err, "Failed to get submission")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submission retrieved successfully",
		Data:    sub,
	})
}

// Replace handles PUT /api/v1/submissions/{id}
// @Summary Replace a submission
// @Description Replace the full submission body; the payload is re-validated like a create
// @Tags Submissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body models.Submission true "Full submission payload"
// @Success 200 {object} models.APIResponse "Submission updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid id or validation failed"
// @Failure 404 {object} models.APIResponse "Not Found - Submission does not exist"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/{id} [put]
func (h *SubmissionController) Replace(c *gin.Context) {
	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	updated, err := h.service.Replace(h.ctx, c.Param("id"), &sub)
	if err != nil {
		respondError(c, h.config, err, "Failed to update submission")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submission updated successfully",
		Data:    updated,
	})
}

// UpdateStatus handles PATCH /api/v1/submissions/{id}/status
// @Summary Update workflow fields
// @Description Partially update stage, status, priority and/or assignedTo; other body fields are ignored
// @Tags Submissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body models.StatusUpdate true "Workflow field updates"
// @Success 200 {object} models.APIResponse "Submission updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid id or empty update"
// @Failure 404 {object} models.APIResponse "Not Found - Submission does not exist"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/{id}/status [patch]
func (h *SubmissionController) UpdateStatus(c *gin.Context) {
	var update models.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	updated, err := h.service.UpdateStatus(h.ctx, c.Param("id"), update)
	if err != nil {
		respondError(c, h.config, err, "Failed to update submission")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submission updated successfully",
		Data:    updated,
	})
}

// Delete handles DELETE /api/v1/submissions/{id}
// @Summary Delete a submission
// @Description Physically remove a submission; archiving via status is the recommended alternative
// @Tags Submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.APIResponse "Submission deleted successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid submission id"
// @Failure 404 {object} models.APIResponse "Not Found - Submission does not exist"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/{id} [delete]
func (h *SubmissionController) Delete(c *gin.Context) {
	id, err := h.service.Delete(h.ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.config, err, "Failed to delete submission")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submission deleted successfully",
		Data: map[string]interface{}{
			"id": id,
		},
	})
}

// BulkUpdateStatus handles PATCH /api/v1/submissions/bulk/status
// @Summary Bulk-update workflow fields
// @Description Apply the same workflow-field update to every submission in ids; nonexistent ids are skipped
// @Tags Submissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BulkStatusUpdateRequest true "Bulk update request"
// @Success 200 {object} models.APIResponse "Submissions updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Empty ids or updates"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Storage unavailable"
// @Router /submissions/bulk/status [patch]
func (h *SubmissionController) BulkUpdateStatus(c *gin.Context) {
	var req models.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	result, err := h.service.BulkUpdateStatus(h.ctx, req)
	if err != nil {
		respondError(c, h.config, err, "Failed to bulk-update submissions")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Submissions updated successfully",
		Data:    result,
	})
}
