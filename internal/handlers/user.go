package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	user, err := uh.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("no authenticated user")))
		return
	}

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body: %w", err)))
		return
	}

	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		RespondError(c, err)
		return
	}

	RespondOK(c, gin.H{"user": user})
}
