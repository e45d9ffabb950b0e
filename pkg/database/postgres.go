package database

import (
	"context"
	"database/sql"
	"fmt"

	"quizzie-backend/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	db     *sql.DB
	config *config.DBConfig
}

func NewPostgresClient(cfg *config.DBConfig) (*PostgresClient, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{
		db:     db,
		config: cfg,
	}, nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}

func (c *PostgresClient) InitSchema(ctx context.Context) error {
	createUsersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	createQuizzesTable := `
		CREATE TABLE IF NOT EXISTS quizzes (
			id VARCHAR(255) PRIMARY KEY,
			creator_id VARCHAR(255) NOT NULL,
			quiz_name VARCHAR(255) NOT NULL,
			quiz_type VARCHAR(50) NOT NULL CHECK (quiz_type IN ('Q&A', 'Poll')),
			impressions INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (creator_id) REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_quizzes_creator_id ON quizzes(creator_id);
		CREATE INDEX IF NOT EXISTS idx_quizzes_impressions ON quizzes(impressions);
	`

	createQuestionsTable := `
		CREATE TABLE IF NOT EXISTS questions (
			id VARCHAR(255) PRIMARY KEY,
			quiz_id VARCHAR(255) NOT NULL,
			text TEXT NOT NULL,
			options JSONB NOT NULL DEFAULT '[]',
			timer INTEGER NOT NULL DEFAULT 0,
			answer INTEGER NOT NULL DEFAULT 0,
			attempted INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			incorrect INTEGER NOT NULL DEFAULT 0,
			order_index INTEGER NOT NULL,
			FOREIGN KEY (quiz_id) REFERENCES quizzes(id) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_questions_quiz_id ON questions(quiz_id);
	`

	if _, err := c.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createQuizzesTable); err != nil {
		return fmt.Errorf("failed to create quizzes table: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, createQuestionsTable); err != nil {
		return fmt.Errorf("failed to create questions table: %w", err)
	}

	return nil
}
