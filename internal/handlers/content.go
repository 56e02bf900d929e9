package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) GenerateContent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	var body struct {
		Topic      string `json:"topic"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	result, err := ch.contentService.GenerateContent(c.Request.Context(), userID, body.Topic, body.Difficulty)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, result)
}

func (ch *ContentHandler) ListUserContents(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	rows, err := ch.contentService.ListUserContents(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"contents": rows})
}

func (ch *ContentHandler) GenerateQuestions(c *gin.Context) {
	var body struct {
		Content      string `json:"content"`
		Text         string `json:"text"` // accepted as an alias for content
		NumQuestions int    `json:"num_questions"`
		Difficulty   string `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	source := body.Content
	if source == "" {
		source = body.Text
	}

	items, err := ch.contentService.GenerateQuestions(c.Request.Context(), source, body.NumQuestions, body.Difficulty)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"questions": items})
}

// TranslateContent always answers 200: translation failures are folded
// into the result body, never surfaced as HTTP errors.
func (ch *ContentHandler) TranslateContent(c *gin.Context) {
	var body struct {
		Content  any    `json:"content"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	result := ch.contentService.TranslateContent(c.Request.Context(), body.Content, body.Language)
	RespondOK(c, result)
}
