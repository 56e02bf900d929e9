package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/services"
)

type VideoHandler struct {
	videoService services.VideoService
}

func NewVideoHandler(videoService services.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

func (vh *VideoHandler) VideoLinks(c *gin.Context) {
	var body struct {
		Topic      string `json:"topic"`
		MaxResults int64  `json:"max_results"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}
	if body.Topic == "" {
		RespondError(c, apierr.BadRequest("missing_topic", fmt.Errorf("topic is required")))
		return
	}

	links := vh.videoService.SearchVideos(c.Request.Context(), body.Topic, body.MaxResults)
	RespondOK(c, gin.H{"videos": links})
}
