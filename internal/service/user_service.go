package service

import (
	"context"
	"fmt"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/repository"
	"quizzie-backend/pkg/validator"
)

type UserService struct {
	users   UserStore
	quizzes QuizStore
}

func NewUserService(users UserStore, quizzes QuizStore) *UserService {
	return &UserService{
		users:   users,
		quizzes: quizzes,
	}
}

type Profile struct {
	User  *repository.User
	Stats *repository.UserStats
}

// Analytics is the public per-user view: the user with quizzes populated.
type Analytics struct {
	User    *repository.User
	Quizzes []*repository.Quiz
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.users.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Stats: stats}, nil
}

// UpdateProfile replaces only the supplied fields; empty strings mean "leave as is".
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string) (*repository.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		email = validator.NormalizeEmail(email)
		if err := validator.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		user.Email = email
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetAnalytics(ctx context.Context, userID string) (*Analytics, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizzes.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Analytics{User: user, Quizzes: quizzes}, nil
}
