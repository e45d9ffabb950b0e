package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"quizzie-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	QuizTypeQA   = "Q&A"
	QuizTypePoll = "Poll"
)

type Quiz struct {
	ID          string
	CreatorID   string
	QuizName    string
	QuizType    string
	Impressions int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// Questions is populated in authoring order only by the ...WithQuestions reads.
	Questions []*Question
}

type Question struct {
	ID         string
	QuizID     string
	Text       string
	Options    []Option
	Timer      int
	Answer     int
	Attempted  int
	Correct    int
	Incorrect  int
	OrderIndex int
}

// Option is stored as one element of the question's JSONB options array.
type Option struct {
	OptionText  string `json:"optionText,omitempty"`
	OptionURL   string `json:"optionUrl,omitempty"`
	IsCorrect   bool   `json:"isCorrect"`
	OptionCount int    `json:"optionCount"`
}

type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// CreateQuizWithQuestions inserts the quiz and all of its questions in a single
// transaction, so a mid-sequence failure cannot leave a quiz with a partial
// question set.
func (r *QuizRepository) CreateQuizWithQuestions(ctx context.Context, quiz *Quiz, questions []*Question) error {
	quiz.ID = uuid.New().String()
	quiz.Impressions = 0
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quizQuery := `
		INSERT INTO quizzes (id, creator_id, quiz_name, quiz_type, impressions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := tx.ExecContext(ctx, quizQuery,
		quiz.ID,
		quiz.CreatorID,
		quiz.QuizName,
		quiz.QuizType,
		quiz.Impressions,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	questionQuery := `
		INSERT INTO questions (id, quiz_id, text, options, timer, answer, attempted, correct, incorrect, order_index)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, $7)
	`

	for i, question := range questions {
		question.ID = uuid.New().String()
		question.QuizID = quiz.ID
		question.OrderIndex = i

		optionsJSON, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}

		if _, err := tx.ExecContext(ctx, questionQuery,
			question.ID,
			question.QuizID,
			question.Text,
			string(optionsJSON),
			question.Timer,
			question.Answer,
			question.OrderIndex,
		); err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *QuizRepository) GetQuizByID(ctx context.Context, quizID string) (*Quiz, error) {
	query := `
		SELECT id, creator_id, quiz_name, quiz_type, impressions, created_at, updated_at
		FROM quizzes
		WHERE id = $1
	`

	quiz := &Quiz{}
	err := r.db.QueryRowContext(ctx, query, quizID).Scan(
		&quiz.ID,
		&quiz.CreatorID,
		&quiz.QuizName,
		&quiz.QuizType,
		&quiz.Impressions,
		&quiz.CreatedAt,
		&quiz.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	return quiz, nil
}

// GetQuizWithQuestions returns the quiz with its question sequence populated in
// authoring order.
func (r *QuizRepository) GetQuizWithQuestions(ctx context.Context, quizID string) (*Quiz, error) {
	quiz, err := r.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := r.getQuestionsByQuizIDs(ctx, []string{quizID})
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions[quizID]

	return quiz, nil
}

// IncrementImpressions is a single atomic counter bump; it doubles as the
// existence check for the detail view.
func (r *QuizRepository) IncrementImpressions(ctx context.Context, quizID string) error {
	query := `UPDATE quizzes SET impressions = impressions + 1 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, quizID)
	if err != nil {
		return fmt.Errorf("failed to increment impressions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check increment result: %w", err)
	}
	if rows == 0 {
		return domain.ErrQuizNotFound
	}

	return nil
}

func (r *QuizRepository) UpdateQuiz(ctx context.Context, quiz *Quiz) error {
	query := `
		UPDATE quizzes
		SET quiz_name = $2,
		    quiz_type = $3,
		    updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.QuizName,
		quiz.QuizType,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return domain.ErrQuizNotFound
	}

	return nil
}

// DeleteQuiz removes the quiz; its questions follow via ON DELETE CASCADE.
func (r *QuizRepository) DeleteQuiz(ctx context.Context, quizID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, quizID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return domain.ErrQuizNotFound
	}

	return nil
}

func (r *QuizRepository) ListByMinImpressions(ctx context.Context, minImpressions int) ([]*Quiz, error) {
	query := `
		SELECT id, creator_id, quiz_name, quiz_type, impressions, created_at, updated_at
		FROM quizzes
		WHERE impressions >= $1
		ORDER BY impressions DESC
	`

	rows, err := r.db.QueryContext(ctx, query, minImpressions)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	return scanQuizzes(rows)
}

// ListByCreator returns the user's quizzes with questions populated, for the
// analytics view.
func (r *QuizRepository) ListByCreator(ctx context.Context, creatorID string) ([]*Quiz, error) {
	query := `
		SELECT id, creator_id, quiz_name, quiz_type, impressions, created_at, updated_at
		FROM quizzes
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes, err := scanQuizzes(rows)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return quizzes, nil
	}

	quizIDs := make([]string, len(quizzes))
	for i, quiz := range quizzes {
		quizIDs[i] = quiz.ID
	}

	questions, err := r.getQuestionsByQuizIDs(ctx, quizIDs)
	if err != nil {
		return nil, err
	}
	for _, quiz := range quizzes {
		quiz.Questions = questions[quiz.ID]
	}

	return quizzes, nil
}

// IncrementAnswerCounters bumps attempted plus exactly one of correct or
// incorrect in a single atomic statement, so correct + incorrect can never
// drift from attempted.
func (r *QuizRepository) IncrementAnswerCounters(ctx context.Context, questionID string, correct bool) error {
	var query string
	if correct {
		query = `UPDATE questions SET attempted = attempted + 1, correct = correct + 1 WHERE id = $1`
	} else {
		query = `UPDATE questions SET attempted = attempted + 1, incorrect = incorrect + 1 WHERE id = $1`
	}

	if _, err := r.db.ExecContext(ctx, query, questionID); err != nil {
		return fmt.Errorf("failed to increment answer counters: %w", err)
	}

	return nil
}

// IncrementOptionCount bumps the selection tally of one option inside the
// question's JSONB options array. The statement is a single atomic update and
// guards the index against the question's own option count.
func (r *QuizRepository) IncrementOptionCount(ctx context.Context, questionID string, optionIndex int) error {
	query := `
		UPDATE questions
		SET options = jsonb_set(
			options,
			ARRAY[$2::text, 'optionCount'],
			(COALESCE(options -> $2 ->> 'optionCount', '0')::int + 1)::text::jsonb
		)
		WHERE id = $1 AND jsonb_array_length(options) > $2
	`

	if _, err := r.db.ExecContext(ctx, query, questionID, optionIndex); err != nil {
		return fmt.Errorf("failed to increment option count: %w", err)
	}

	return nil
}

func (r *QuizRepository) getQuestionsByQuizIDs(ctx context.Context, quizIDs []string) (map[string][]*Question, error) {
	query := `
		SELECT id, quiz_id, text, options, timer, answer, attempted, correct, incorrect, order_index
		FROM questions
		WHERE quiz_id = ANY($1)
		ORDER BY quiz_id, order_index
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(quizIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	questions := make(map[string][]*Question)
	for rows.Next() {
		question := &Question{}
		var optionsJSON []byte

		if err := rows.Scan(
			&question.ID,
			&question.QuizID,
			&question.Text,
			&optionsJSON,
			&question.Timer,
			&question.Answer,
			&question.Attempted,
			&question.Correct,
			&question.Incorrect,
			&question.OrderIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		if err := json.Unmarshal(optionsJSON, &question.Options); err != nil {
			return nil, fmt.Errorf("failed to unmarshal options: %w", err)
		}

		questions[question.QuizID] = append(questions[question.QuizID], question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}

func scanQuizzes(rows *sql.Rows) ([]*Quiz, error) {
	var quizzes []*Quiz
	for rows.Next() {
		quiz := &Quiz{}
		if err := rows.Scan(
			&quiz.ID,
			&quiz.CreatorID,
			&quiz.QuizName,
			&quiz.QuizType,
			&quiz.Impressions,
			&quiz.CreatedAt,
			&quiz.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quizzes: %w", err)
	}

	return quizzes, nil
}
