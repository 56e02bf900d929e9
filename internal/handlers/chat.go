package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/services"
)

// 10 MB cap on uploaded audio clips.
const maxAudioBytes = 10 << 20

type ChatHandler struct {
	chatService          services.ChatService
	transcriptionService services.TranscriptionService
}

func NewChatHandler(chatService services.ChatService, transcriptionService services.TranscriptionService) *ChatHandler {
	return &ChatHandler{chatService: chatService, transcriptionService: transcriptionService}
}

func (ch *ChatHandler) Chat(c *gin.Context) {
	var body struct {
		Question string `json:"question"`
		Content  string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	answer, err := ch.chatService.Ask(c.Request.Context(), body.Question, body.Content)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"answer": answer})
}

// Transcribe accepts a multipart upload under the "audio" field.
func (ch *ChatHandler) Transcribe(c *gin.Context) {
	if ch.transcriptionService == nil {
		RespondError(c, apierr.New(http.StatusServiceUnavailable, "transcription_unavailable",
			fmt.Errorf("transcription is not configured")))
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		RespondError(c, apierr.BadRequest("missing_audio", fmt.Errorf("audio file is required: %w", err)))
		return
	}
	if fileHeader.Size > maxAudioBytes {
		RespondError(c, apierr.BadRequest("audio_too_large", fmt.Errorf("audio file exceeds %d bytes", maxAudioBytes)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes+1))
	if err != nil {
		RespondError(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	result, err := ch.transcriptionService.TranscribeAudio(c.Request.Context(), audio, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, result)
}
