package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/repository"

	"github.com/google/uuid"
)

type QuizService struct {
	quizzes        QuizStore
	users          UserStore
	shares         ShareStore
	mq             Publisher
	minImpressions int
}

func NewQuizService(quizzes QuizStore, users UserStore, shares ShareStore, mq Publisher, minImpressions int) *QuizService {
	return &QuizService{
		quizzes:        quizzes,
		users:          users,
		shares:         shares,
		mq:             mq,
		minImpressions: minImpressions,
	}
}

type QuestionInput struct {
	Text    string
	Options []repository.Option
	Timer   int
	Answer  int
}

type CreateQuizInput struct {
	CreatorID string
	QuizName  string
	QuizType  string
	Questions []QuestionInput
}

// CreateQuiz inserts the quiz and all of its questions as one unit; an invalid
// question rejects the whole quiz. The created quiz is returned without its
// questions populated.
func (s *QuizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*repository.Quiz, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByID(ctx, in.CreatorID); err != nil {
		return nil, err
	}

	quiz := &repository.Quiz{
		CreatorID: in.CreatorID,
		QuizName:  strings.TrimSpace(in.QuizName),
		QuizType:  in.QuizType,
	}

	questions := make([]*repository.Question, len(in.Questions))
	for i, q := range in.Questions {
		options := make([]repository.Option, len(q.Options))
		for j, opt := range q.Options {
			opt.OptionCount = 0
			options[j] = opt
		}
		questions[i] = &repository.Question{
			Text:    q.Text,
			Options: options,
			Timer:   q.Timer,
			Answer:  q.Answer,
		}
	}

	if err := s.quizzes.CreateQuizWithQuestions(ctx, quiz, questions); err != nil {
		return nil, err
	}

	s.invalidatePublicList(ctx)
	publishEvent(ctx, s.mq, QueueQuizCreated, map[string]string{
		"quiz_id":    quiz.ID,
		"creator_id": quiz.CreatorID,
		"quiz_type":  quiz.QuizType,
	})

	return quiz, nil
}

// UpdateQuiz replaces only the supplied fields; empty strings mean "leave as is".
func (s *QuizService) UpdateQuiz(ctx context.Context, quizID, name, quizType string) (*repository.Quiz, error) {
	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		quiz.QuizName = strings.TrimSpace(name)
	}
	if quizType != "" {
		if quizType != repository.QuizTypeQA && quizType != repository.QuizTypePoll {
			return nil, fmt.Errorf("%w: quiz type must be %s or %s", domain.ErrInvalidInput, repository.QuizTypeQA, repository.QuizTypePoll)
		}
		quiz.QuizType = quizType
	}

	if err := s.quizzes.UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}

	s.invalidatePublicList(ctx)
	return quiz, nil
}

// DeleteQuiz removes the quiz and, through the store's cascade, its questions.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := s.quizzes.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}

	s.invalidatePublicList(ctx)
	return nil
}

// ShareQuiz checks the quiz exists and issues a short-lived share code for it.
func (s *QuizService) ShareQuiz(ctx context.Context, quizID string) (*repository.Quiz, string, error) {
	quiz, err := s.quizzes.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, "", err
	}

	code := strings.Split(uuid.New().String(), "-")[0]
	if s.shares != nil {
		if err := s.shares.SaveShareCode(ctx, code, quizID); err != nil {
			log.Printf("Failed to save share code: %v", err)
		}
	}

	return quiz, code, nil
}

// ResolveShare maps a share code back to its quiz.
func (s *QuizService) ResolveShare(ctx context.Context, code string) (*repository.Quiz, error) {
	if s.shares == nil {
		return nil, domain.ErrShareCodeNotFound
	}

	quizID, err := s.shares.GetQuizIDByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return s.quizzes.GetQuizByID(ctx, quizID)
}

// ListPublic returns quizzes whose impressions meet the public threshold. An
// empty result is a valid result, not an error.
func (s *QuizService) ListPublic(ctx context.Context) ([]*repository.Quiz, error) {
	if s.shares != nil {
		if payload, ok := s.shares.GetPublicList(ctx); ok {
			var cached []*repository.Quiz
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			log.Printf("Failed to decode cached public list, falling back to store")
		}
	}

	quizzes, err := s.quizzes.ListByMinImpressions(ctx, s.minImpressions)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []*repository.Quiz{}
	}

	if s.shares != nil {
		if payload, err := json.Marshal(quizzes); err == nil {
			if err := s.shares.CachePublicList(ctx, payload); err != nil {
				log.Printf("Failed to cache public list: %v", err)
			}
		}
	}

	return quizzes, nil
}

// GetQuiz counts one impression and returns the quiz with its questions
// populated in authoring order.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*repository.Quiz, error) {
	if err := s.quizzes.IncrementImpressions(ctx, quizID); err != nil {
		return nil, err
	}

	return s.quizzes.GetQuizWithQuestions(ctx, quizID)
}

func (s *QuizService) invalidatePublicList(ctx context.Context) {
	if s.shares == nil {
		return
	}
	if err := s.shares.InvalidatePublicList(ctx); err != nil {
		log.Printf("Failed to invalidate public list cache: %v", err)
	}
}

func validateCreateInput(in CreateQuizInput) error {
	if in.CreatorID == "" {
		return fmt.Errorf("%w: creator id is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.QuizName) == "" {
		return fmt.Errorf("%w: quiz name is required", domain.ErrInvalidInput)
	}
	if in.QuizType != repository.QuizTypeQA && in.QuizType != repository.QuizTypePoll {
		return fmt.Errorf("%w: quiz type must be %s or %s", domain.ErrInvalidInput, repository.QuizTypeQA, repository.QuizTypePoll)
	}
	if len(in.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", domain.ErrInvalidInput)
	}

	for i, q := range in.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d is missing text", domain.ErrInvalidInput, i)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d has no options", domain.ErrInvalidInput, i)
		}
		if q.Timer < 0 {
			return fmt.Errorf("%w: question %d has a negative timer", domain.ErrInvalidInput, i)
		}
		if in.QuizType == repository.QuizTypeQA && (q.Answer < 0 || q.Answer >= len(q.Options)) {
			return fmt.Errorf("%w: question %d answer index %d is out of range", domain.ErrInvalidInput, i, q.Answer)
		}
	}

	return nil
}
