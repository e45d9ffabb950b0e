package service

import (
	"context"
	"errors"
	"fmt"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/repository"
	"quizzie-backend/pkg/jwt"
	"quizzie-backend/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     UserStore
	mq        Publisher
	jwtSecret string
}

func NewAuthService(users UserStore, mq Publisher, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		mq:        mq,
		jwtSecret: jwtSecret,
	}
}

// LoginResult carries the signed token plus the summary shown after login.
type LoginResult struct {
	Token string
	User  *repository.User
	Stats *repository.UserStats
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	email = validator.NormalizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := validator.ValidatePassword(password); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, name, email, string(passwordHash))
	if err != nil {
		return err
	}

	publishEvent(ctx, s.mq, QueueUserRegistered, map[string]string{
		"user_id": user.ID,
		"email":   user.Email,
	})

	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = validator.NormalizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	stats, err := s.users.GetUserStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token: token,
		User:  user,
		Stats: stats,
	}, nil
}

// ValidateToken resolves a bearer token to its claims, used by the auth middleware.
func (s *AuthService) ValidateToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
