package handlers

import (
	"blog-engagement/helper"
	"blog-engagement/middleware"
	"blog-engagement/models"
	"blog-engagement/services"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService services.EngagementService
	Helper            *helper.HTTPHelper
}

func NewEngagementHandler(engagementService services.EngagementService, httpHelper *helper.HTTPHelper) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService, Helper: httpHelper}
}

func (h *EngagementHandler) AddComment(c *gin.Context) {
	id, ok := parseArticleID(c, h.Helper)
	if !ok {
		return
	}

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body", err.Error())
		return
	}

	article, err := h.engagementService.AddComment(c.Request.Context(), id, req, middleware.GetIdentity(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Comment added successfully", article)
}

func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	id, ok := parseArticleID(c, h.Helper)
	if !ok {
		return
	}

	result, err := h.engagementService.ToggleLike(c.Request.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", result)
}
