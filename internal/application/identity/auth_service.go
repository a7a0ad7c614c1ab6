package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pantry/backend/internal/domain/identity"
	"github.com/pantry/backend/internal/domain/shared"
	"github.com/pantry/backend/internal/infrastructure/auth"
)

// LoginRequest is the input for the login operation
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and user identity
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

// AuthService handles login and account bootstrapping
type AuthService struct {
	userRepo identity.UserRepository
	jwt      *auth.JWTService
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger.Named("auth"),
	}
}

// Login verifies credentials and issues an access token. Unknown user
// and wrong password return the same error so usernames cannot be
// probed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Username:    user.Username,
	}, nil
}

// Bootstrap creates the admin account when the user table is empty.
// Called once at startup so a fresh deployment is immediately usable.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		s.logger.Warn("no users exist and no admin password configured, skipping bootstrap")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := identity.NewUser(username, hash)
	if err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	s.logger.Info("bootstrapped admin account", zap.String("username", username))
	return nil
}
