package service

import (
	"context"
	"encoding/json"
	"log"

	"quizzie-backend/internal/repository"
)

// Publisher matches messaging.RabbitMQClient. A nil publisher means the broker
// is down and events are dropped.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*repository.User, error)
	GetUserByID(ctx context.Context, userID string) (*repository.User, error)
	GetUserByEmail(ctx context.Context, email string) (*repository.User, error)
	UpdateUser(ctx context.Context, user *repository.User) error
	GetUserStats(ctx context.Context, userID string) (*repository.UserStats, error)
}

type QuizStore interface {
	CreateQuizWithQuestions(ctx context.Context, quiz *repository.Quiz, questions []*repository.Question) error
	GetQuizByID(ctx context.Context, quizID string) (*repository.Quiz, error)
	GetQuizWithQuestions(ctx context.Context, quizID string) (*repository.Quiz, error)
	IncrementImpressions(ctx context.Context, quizID string) error
	UpdateQuiz(ctx context.Context, quiz *repository.Quiz) error
	DeleteQuiz(ctx context.Context, quizID string) error
	ListByMinImpressions(ctx context.Context, minImpressions int) ([]*repository.Quiz, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*repository.Quiz, error)
	IncrementAnswerCounters(ctx context.Context, questionID string, correct bool) error
	IncrementOptionCount(ctx context.Context, questionID string, optionIndex int) error
}

type ShareStore interface {
	SaveShareCode(ctx context.Context, code, quizID string) error
	GetQuizIDByCode(ctx context.Context, code string) (string, error)
	CachePublicList(ctx context.Context, payload []byte) error
	GetPublicList(ctx context.Context) ([]byte, bool)
	InvalidatePublicList(ctx context.Context) error
}

// Event queue names.
const (
	QueueUserRegistered = "user.registered"
	QueueQuizCreated    = "quiz.created"
	QueueQuizTaken      = "quiz.taken"
)

func publishEvent(ctx context.Context, mq Publisher, queueName string, payload any) {
	if mq == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", queueName, err)
		return
	}

	if err := mq.Publish(ctx, queueName, body); err != nil {
		log.Printf("Failed to publish %s event: %v", queueName, err)
	}
}
