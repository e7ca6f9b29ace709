package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vendorgate/internal/core/apperror"
	"vendorgate/internal/core/id"
	"vendorgate/pkg/logger"
)

// Service provides account management and login.
type Service struct {
	repo   Repository
	tokens *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, tokens *JWTService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, user *User, password string) error {
	if err := user.Validate(ctx); err != nil {
		return err
	}
	if len(password) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("user", "email", user.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}
	logger.Info(ctx, "user registered", "id", user.ID, "role", user.Role)
	return nil
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password return the same error, no account probing.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}
	if user.Disabled {
		return nil, apperror.NewUnauthorized("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, User: user}, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *Service) ChangePassword(ctx context.Context, userID id.ID, current, next string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("current password is incorrect")
	}
	if len(next) < 8 {
		return apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(err)
	}
	user.PasswordHash = string(hash)
	user.Touch()
	return s.repo.Update(ctx, user)
}
