package service_test

import (
	"context"
	"sync"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/repository"

	"github.com/google/uuid"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*repository.User
	stats map[string]*repository.UserStats
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users: make(map[string]*repository.User),
		stats: make(map[string]*repository.UserStats),
	}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}

	user := &repository.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, userID string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user *repository.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetUserStats(_ context.Context, userID string) (*repository.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stats, ok := f.stats[userID]; ok {
		copied := *stats
		return &copied, nil
	}
	return &repository.UserStats{}, nil
}

// fakeQuizStore is an in-memory QuizStore with atomic counter semantics.
type fakeQuizStore struct {
	mu        sync.Mutex
	quizzes   map[string]*repository.Quiz
	questions map[string]*repository.Question

	incrementErr error
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes:   make(map[string]*repository.Quiz),
		questions: make(map[string]*repository.Question),
	}
}

func (f *fakeQuizStore) CreateQuizWithQuestions(_ context.Context, quiz *repository.Quiz, questions []*repository.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	quiz.ID = uuid.New().String()
	quiz.Impressions = 0
	stored := *quiz
	f.quizzes[quiz.ID] = &stored

	for i, question := range questions {
		question.ID = uuid.New().String()
		question.QuizID = quiz.ID
		question.OrderIndex = i
		storedQ := *question
		f.questions[question.ID] = &storedQ
	}
	return nil
}

func (f *fakeQuizStore) GetQuizByID(_ context.Context, quizID string) (*repository.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getQuizLocked(quizID, false)
}

func (f *fakeQuizStore) GetQuizWithQuestions(_ context.Context, quizID string) (*repository.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getQuizLocked(quizID, true)
}

func (f *fakeQuizStore) getQuizLocked(quizID string, withQuestions bool) (*repository.Quiz, error) {
	quiz, ok := f.quizzes[quizID]
	if !ok {
		return nil, domain.ErrQuizNotFound
	}

	copied := *quiz
	copied.Questions = nil
	if withQuestions {
		copied.Questions = f.questionsForQuizLocked(quizID)
	}
	return &copied, nil
}

func (f *fakeQuizStore) questionsForQuizLocked(quizID string) []*repository.Question {
	var out []*repository.Question
	for _, question := range f.questions {
		if question.QuizID != quizID {
			continue
		}
		copied := *question
		copied.Options = append([]repository.Option(nil), question.Options...)
		out = append(out, &copied)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].OrderIndex < out[i].OrderIndex {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func (f *fakeQuizStore) IncrementImpressions(_ context.Context, quizID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	quiz, ok := f.quizzes[quizID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	quiz.Impressions++
	return nil
}

func (f *fakeQuizStore) UpdateQuiz(_ context.Context, quiz *repository.Quiz) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.quizzes[quiz.ID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	stored.QuizName = quiz.QuizName
	stored.QuizType = quiz.QuizType
	return nil
}

func (f *fakeQuizStore) DeleteQuiz(_ context.Context, quizID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(f.quizzes, quizID)
	for id, question := range f.questions {
		if question.QuizID == quizID {
			delete(f.questions, id)
		}
	}
	return nil
}

func (f *fakeQuizStore) ListByMinImpressions(_ context.Context, minImpressions int) ([]*repository.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*repository.Quiz
	for _, quiz := range f.quizzes {
		if quiz.Impressions >= minImpressions {
			copied := *quiz
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeQuizStore) ListByCreator(_ context.Context, creatorID string) ([]*repository.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*repository.Quiz
	for _, quiz := range f.quizzes {
		if quiz.CreatorID == creatorID {
			copied := *quiz
			copied.Questions = f.questionsForQuizLocked(quiz.ID)
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeQuizStore) IncrementAnswerCounters(_ context.Context, questionID string, correct bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.incrementErr != nil {
		return f.incrementErr
	}

	question, ok := f.questions[questionID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	question.Attempted++
	if correct {
		question.Correct++
	} else {
		question.Incorrect++
	}
	return nil
}

func (f *fakeQuizStore) IncrementOptionCount(_ context.Context, questionID string, optionIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.incrementErr != nil {
		return f.incrementErr
	}

	question, ok := f.questions[questionID]
	if !ok {
		return domain.ErrQuizNotFound
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil
	}
	question.Options[optionIndex].OptionCount++
	return nil
}

// question returns the stored question at the given authoring position.
func (f *fakeQuizStore) question(quizID string, orderIndex int) *repository.Question {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, question := range f.questions {
		if question.QuizID == quizID && question.OrderIndex == orderIndex {
			copied := *question
			copied.Options = append([]repository.Option(nil), question.Options...)
			return &copied
		}
	}
	return nil
}

// fakeShareStore is an in-memory ShareStore.
type fakeShareStore struct {
	mu         sync.Mutex
	codes      map[string]string
	publicList []byte
}

func newFakeShareStore() *fakeShareStore {
	return &fakeShareStore{codes: make(map[string]string)}
}

func (f *fakeShareStore) SaveShareCode(_ context.Context, code, quizID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes[code] = quizID
	return nil
}

func (f *fakeShareStore) GetQuizIDByCode(_ context.Context, code string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	quizID, ok := f.codes[code]
	if !ok {
		return "", domain.ErrShareCodeNotFound
	}
	return quizID, nil
}

func (f *fakeShareStore) CachePublicList(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publicList = append([]byte(nil), payload...)
	return nil
}

func (f *fakeShareStore) GetPublicList(_ context.Context) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.publicList == nil {
		return nil, false
	}
	return append([]byte(nil), f.publicList...), true
}

func (f *fakeShareStore) InvalidatePublicList(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.publicList = nil
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	queues []string
	bodies [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, queueName string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues = append(f.queues, queueName)
	f.bodies = append(f.bodies, body)
	return nil
}

func (f *fakePublisher) published(queueName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, q := range f.queues {
		if q == queueName {
			count++
		}
	}
	return count
}
