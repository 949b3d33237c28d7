package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unishare/internal/app/models/dto"
	"github.com/yigit/unishare/internal/app/services"
	"github.com/yigit/unishare/internal/middleware"
)

// CommentController handles comment threads and reactions
type CommentController struct {
	commentService  services.CommentService
	reactionService services.ReactionService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService services.CommentService, reactionService services.ReactionService) *CommentController {
	return &CommentController{
		commentService:  commentService,
		reactionService: reactionService,
	}
}

// ListComments handles retrieving the comment tree of a resource
// @Summary List comments
// @Description Top-level comments newest first, replies nested in conversation order
// @Tags comments
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentNode} "Comments retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid resource id"
// @Router /resources/{id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	tree, err := c.commentService.ListComments(ctx.Request.Context(), id, middleware.GetCurrentUser(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tree))
}

// CreateComment handles posting a comment or a reply
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param comment body dto.CreateCommentRequest true "Comment content and optional parent"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Security BearerAuth
// @Router /resources/{id}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.commentService.CreateComment(ctx.Request.Context(), id, middleware.GetCurrentUser(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ReactToComment toggles the caller's like or dislike
// @Summary React to comment
// @Description Repeating the current reaction removes it, the other type replaces it
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param commentId path int true "Comment ID"
// @Param reaction body dto.ReactRequest true "like or dislike"
// @Success 200 {object} dto.APIResponse{data=dto.ReactionResponse} "Reaction applied"
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Comment not found on this resource"
// @Security BearerAuth
// @Router /resources/{id}/comments/{commentId}/react [post]
func (c *CommentController) ReactToComment(ctx *gin.Context) {
	id, ok := middleware.ParseResourceID(ctx)
	if !ok {
		return
	}
	commentID, ok := middleware.ParseCommentID(ctx)
	if !ok {
		return
	}

	var req dto.ReactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.reactionService.React(ctx.Request.Context(), id, commentID, middleware.GetCurrentUser(ctx), req.Type)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
