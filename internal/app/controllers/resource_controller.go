package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/app/models"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/app/services"
	"github.com/yigit/unishare/internal/middleware"
	"github.com/yigit/unishare/internal/pkg/helpers"
)

// ResourceController handles resource pages, their stats, ratings and reports
type ResourceController struct {
	resourceService services.ResourceService
	statsService    services.StatsService
	ratingService   services.RatingService
	reportService   services.ReportService
}

// NewResourceController creates a new ResourceController
func NewResourceController(
	resourceService services.ResourceService,
	statsService services.StatsService,
	ratingService services.RatingService,
	reportService services.ReportService,
) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		statsService:    statsService,
		ratingService:   ratingService,
		reportService:   reportService,
	}
}

// ListResources handles listing resources with their stats
// @Summary List resources
// @Description Retrieves a page of resources, newest first, each with its popularity stats
// @Tags resources
// @Produce json
// @Param courseCode query string false "Filter by course code"
// @Param university query string false "Filter by university"
// @Param semester query string false "Filter by semester"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceListResponse} "Resources retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid filters"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var req dto.ResourceListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	filter := models.ResourceFilter{
		CourseCode: req.CourseCode,
		University: req.University,
		Semester:   req.Semester,
	}
	resp, err := c.resourceService.ListResources(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetResource handles the resource detail page
// @Summary Get resource
// @Description Retrieves a resource with its stats and records a view
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse} "Resource retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid resource id"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	resp, err := c.resourceService.GetResource(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DownloadResource records a download and redirects to the file
// @Summary Download resource
// @Tags resources
// @Param id path string true "Resource ID"
// @Success 302 "Redirect to the file"
// @Failure 400 {object} dto.APIResponse "Invalid resource id"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resources/{id}/download [get]
func (c *ResourceController) DownloadResource(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	url, err := c.resourceService.DownloadURL(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, url)
}

// GetStats handles retrieving the popularity snapshot of a resource
// @Summary Get resource stats
// @Description Returns rating average, review count, views, comments and downloads. Never fails on store errors; the snapshot is flagged unavailable instead.
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.StatsResponse} "Stats retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid resource id"
// @Router /resources/{id}/stats [get]
func (c *ResourceController) GetStats(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.statsService.GetStats(ctx.Request.Context(), id)))
}

// GetRating handles retrieving the rating aggregate
// @Summary Get resource rating
// @Description Returns the average, the count and the caller's own rating (null when anonymous or unrated)
// @Tags ratings
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse} "Rating retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid resource id"
// @Router /resources/{id}/rating [get]
func (c *ResourceController) GetRating(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	resp := c.ratingService.GetRating(ctx.Request.Context(), id, middleware.GetCurrentUser(ctx))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SubmitRating handles rating a resource
// @Summary Rate resource
// @Description Creates or replaces the caller's rating of a resource
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param rating body dto.SubmitRatingRequest true "Rating value (1-5)"
// @Success 200 {object} dto.APIResponse{data=dto.RatingResponse} "Rating saved"
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Security BearerAuth
// @Router /resources/{id}/rating [post]
func (c *ResourceController) SubmitRating(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.ratingService.SubmitRating(ctx.Request.Context(), id, middleware.GetCurrentUser(ctx), *req.Value)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// ReportResource handles flagging a resource for moderation
// @Summary Report resource
// @Tags resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param report body dto.ReportRequest true "Report reason"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessMessage} "Report received"
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Security BearerAuth
// @Router /resources/{id}/report [post]
func (c *ResourceController) ReportResource(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.reportService.ReportResource(ctx.Request.Context(), id, middleware.GetCurrentUser(ctx), req.Reason); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessMessage{Message: "Report received"}))
}
