package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduforge/eduforge-backend/internal/middleware"
	"github.com/eduforge/eduforge-backend/internal/services"
	"github.com/eduforge/eduforge-backend/internal/types"
)

type fakeAuthService struct {
	registered    services.RegisterInput
	loginUsername string
	loginPassword string
	deletedUsers  []uuid.UUID
}

func (f *fakeAuthService) RegisterUser(_ context.Context, input services.RegisterInput) (*types.User, *services.TokenPair, error) {
	f.registered = input
	return &types.User{}, &services.TokenPair{}, nil
}

func (f *fakeAuthService) LoginUser(_ context.Context, username, password string) (*types.User, *services.TokenPair, error) {
	f.loginUsername = username
	f.loginPassword = password
	return &types.User{}, &services.TokenPair{}, nil
}

func (f *fakeAuthService) RefreshUser(_ context.Context, _ string) (*services.TokenPair, error) {
	return &services.TokenPair{}, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, _ uuid.UUID, _, _ string) error {
	return nil
}

func (f *fakeAuthService) DeleteAccount(_ context.Context, userID uuid.UUID) error {
	f.deletedUsers = append(f.deletedUsers, userID)
	return nil
}

func (f *fakeAuthService) VerifyAccessToken(_ string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func newAuthRouter(auth *fakeAuthService, contents *fakeContentService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewAuthHandler(auth, contents)
	r.POST("/api/register", handler.Register)
	r.POST("/api/login", handler.Login)
	r.DELETE("/api/delete-account", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		handler.DeleteAccount(c)
	})
	return r
}

func TestRegisterPassesUsernameToService(t *testing.T) {
	auth := &fakeAuthService{}
	router := newAuthRouter(auth, &fakeContentService{}, uuid.Nil)

	body := `{"username":"ada","email":"ada@example.com","password":"hunter22","first_name":"Ada","last_name":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if auth.registered.Username != "ada" {
		t.Fatalf("username passed to service: want=%q got=%q", "ada", auth.registered.Username)
	}
}

func TestLoginBindsUsername(t *testing.T) {
	auth := &fakeAuthService{}
	router := newAuthRouter(auth, &fakeContentService{}, uuid.Nil)

	body := `{"username":"ada","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if auth.loginUsername != "ada" {
		t.Fatalf("username passed to service: want=%q got=%q", "ada", auth.loginUsername)
	}
	if auth.loginPassword != "hunter22" {
		t.Fatalf("password passed to service: want=%q got=%q", "hunter22", auth.loginPassword)
	}
}

func TestDeleteAccountPurgesUserContents(t *testing.T) {
	auth := &fakeAuthService{}
	contents := &fakeContentService{}
	userID := uuid.New()
	router := newAuthRouter(auth, contents, userID)

	req := httptest.NewRequest(http.MethodDelete, "/api/delete-account", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if len(contents.deletedUsers) != 1 || contents.deletedUsers[0] != userID {
		t.Fatalf("content purge for user %s not requested, got %v", userID, contents.deletedUsers)
	}
	if len(auth.deletedUsers) != 1 || auth.deletedUsers[0] != userID {
		t.Fatalf("account deletion for user %s not requested, got %v", userID, auth.deletedUsers)
	}
}
