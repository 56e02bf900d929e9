package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/services"
)

type AuthHandler struct {
	authService    services.AuthService
	contentService services.ContentService
}

func NewAuthHandler(authService services.AuthService, contentService services.ContentService) *AuthHandler {
	return &AuthHandler{authService: authService, contentService: contentService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	user, pair, err := ah.authService.RegisterUser(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "tokens": pair})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	user, pair, err := ah.authService.LoginUser(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"user": user, "tokens": pair})
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	pair, err := ah.authService.RefreshUser(c.Request.Context(), body.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"tokens": pair})
}

func (ah *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	if err := ah.authService.ChangePassword(c.Request.Context(), userID, body.OldPassword, body.NewPassword); err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password changed"})
}

func (ah *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	// Purge the user's generated lessons before the row goes away; the
	// CASCADE FK covers crashes between the two calls.
	if err := ah.contentService.DeleteUserContents(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}
	if err := ah.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "account deleted"})
}
