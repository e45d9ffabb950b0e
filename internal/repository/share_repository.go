package repository

import (
	"context"
	"fmt"
	"time"

	"quizzie-backend/internal/domain"
	"quizzie-backend/pkg/cache"
)

const (
	// ShareCodeTTL bounds how long a shareable quiz reference stays resolvable.
	ShareCodeTTL = 7 * 24 * time.Hour
	// PublicListTTL keeps the public listing cache short-lived; authoring
	// writes invalidate it eagerly anyway.
	PublicListTTL = 30 * time.Second

	publicListKey = "quiz:public"
)

// ShareRepository keeps share codes and the public-listing cache in Redis.
type ShareRepository struct {
	redis *cache.RedisClient
}

func NewShareRepository(redis *cache.RedisClient) *ShareRepository {
	return &ShareRepository{redis: redis}
}

func (r *ShareRepository) SaveShareCode(ctx context.Context, code, quizID string) error {
	key := fmt.Sprintf("quiz:share:%s", code)

	if err := r.redis.Set(ctx, key, quizID, ShareCodeTTL); err != nil {
		return fmt.Errorf("failed to save share code: %w", err)
	}

	return nil
}

func (r *ShareRepository) GetQuizIDByCode(ctx context.Context, code string) (string, error) {
	key := fmt.Sprintf("quiz:share:%s", code)

	quizID, err := r.redis.Get(ctx, key)
	if err != nil {
		return "", domain.ErrShareCodeNotFound
	}

	return quizID, nil
}

func (r *ShareRepository) CachePublicList(ctx context.Context, payload []byte) error {
	if err := r.redis.Set(ctx, publicListKey, payload, PublicListTTL); err != nil {
		return fmt.Errorf("failed to cache public list: %w", err)
	}
	return nil
}

func (r *ShareRepository) GetPublicList(ctx context.Context) ([]byte, bool) {
	payload, err := r.redis.Get(ctx, publicListKey)
	if err != nil {
		return nil, false
	}
	return []byte(payload), true
}

func (r *ShareRepository) InvalidatePublicList(ctx context.Context) error {
	if err := r.redis.Delete(ctx, publicListKey); err != nil {
		return fmt.Errorf("failed to invalidate public list: %w", err)
	}
	return nil
}
