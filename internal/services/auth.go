package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eduforge/eduforge-backend/internal/platform/apierr"
	"github.com/eduforge/eduforge-backend/internal/platform/logger"
	"github.com/eduforge/eduforge-backend/internal/repos"
	"github.com/eduforge/eduforge-backend/internal/types"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

// TokenPair is what register and login hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*types.User, *TokenPair, error)
	LoginUser(ctx context.Context, username, password string) (*types.User, *TokenPair, error)
	RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	VerifyAccessToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*types.User, *TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return nil, nil, apierr.BadRequest("invalid_username", fmt.Errorf("a username is required"))
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, apierr.BadRequest("invalid_email", fmt.Errorf("a valid email is required"))
	}
	if len(input.Password) < 8 {
		return nil, nil, apierr.BadRequest("weak_password", fmt.Errorf("password must be at least 8 characters"))
	}

	taken, uErr := as.userRepo.UsernameExists(ctx, nil, username)
	if uErr != nil {
		return nil, nil, fmt.Errorf("failed to check username: %w", uErr)
	}
	if taken {
		return nil, nil, apierr.BadRequest("username_taken", fmt.Errorf("username already registered"))
	}

	exists, eErr := as.userRepo.EmailExists(ctx, nil, email)
	if eErr != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", eErr)
	}
	if exists {
		return nil, nil, apierr.BadRequest("email_taken", fmt.Errorf("email already registered"))
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", hErr)
	}

	user := &types.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
			return fmt.Errorf("failed to create user: %w", ucErr)
		}
		p, ipErr := as.issueTokenPair(ctx, tx, user)
		if ipErr != nil {
			return ipErr
		}
		pair = p
		return nil
	}); err != nil {
		return nil, nil, err
	}

	as.log.Info("User registered", "user_id", user.ID.String())
	return user, pair, nil
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (*types.User, *TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	users, usErr := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if usErr != nil {
		return nil, nil, fmt.Errorf("error retrieving user by username: %w", usErr)
	}
	if len(users) == 0 {
		return nil, nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid username or password"))
	}

	user := users[0]
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return nil, nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid username or password"))
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, ipErr := as.issueTokenPair(ctx, tx, user)
		if ipErr != nil {
			return ipErr
		}
		pair = p
		return nil
	}); err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apierr.Unauthorized("missing_refresh_token", fmt.Errorf("refresh token required"))
	}

	var pair *TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
		if ftErr != nil {
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return apierr.Unauthorized("invalid_refresh_token", fmt.Errorf("unknown refresh token"))
		}
		existing := foundTokens[0]
		if existing.ExpiresAt.Before(time.Now()) {
			_ = as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID})
			return apierr.Unauthorized("refresh_token_expired", fmt.Errorf("refresh token expired"))
		}

		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return apierr.Unauthorized("invalid_refresh_token", fmt.Errorf("no user for refresh token"))
		}

		p, ipErr := as.issueTokenPair(ctx, tx, users[0])
		if ipErr != nil {
			return ipErr
		}
		if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", dErr)
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

func (as *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apierr.BadRequest("weak_password", fmt.Errorf("password must be at least 8 characters"))
	}

	users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if uErr != nil {
		return fmt.Errorf("failed to load user: %w", uErr)
	}
	if len(users) == 0 {
		return apierr.NotFound("user_not_found", fmt.Errorf("user not found"))
	}

	if hErr := bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(oldPassword)); hErr != nil {
		return apierr.Unauthorized("invalid_credentials", fmt.Errorf("old password does not match"))
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if hErr != nil {
		return fmt.Errorf("failed to hash password: %w", hErr)
	}

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userRepo.UpdateFields(ctx, tx, userID, map[string]any{"password": string(hashed)}); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		// Password change invalidates every outstanding refresh token.
		if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("failed to revoke user tokens: %w", err)
		}
		return nil
	})
}

func (as *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("failed to delete user tokens: %w", err)
		}
		if err := as.userRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		as.log.Info("Account deleted", "user_id", userID.String())
		return nil
	})
}

// VerifyAccessToken parses and validates a bearer token and returns the
// user id from its subject claim.
func (as *authService) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("invalid_token", fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return uuid.Nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid or expired token"))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid user id in token: %w", err))
	}
	return userID, nil
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	accessToken, genErr := as.generateAccessToken(user)
	if genErr != nil {
		return nil, fmt.Errorf("generate access token error: %w", genErr)
	}

	refreshToken := uuid.New().String()
	userToken := types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
		return nil, fmt.Errorf("create user token error: %w", ctErr)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
