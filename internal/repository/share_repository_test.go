package repository_test

import (
	"context"
	"errors"
	"testing"

	"quizzie-backend/internal/domain"
	"quizzie-backend/internal/repository"
	"quizzie-backend/pkg/cache"

	"github.com/alicebob/miniredis/v2"
)

func newShareRepo(t *testing.T) (*repository.ShareRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := cache.NewRedisClientFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })

	return repository.NewShareRepository(client), mr
}

func TestShareCodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newShareRepo(t)

	if err := repo.SaveShareCode(ctx, "abc123", "quiz-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	quizID, err := repo.GetQuizIDByCode(ctx, "abc123")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if quizID != "quiz-1" {
		t.Fatalf("expected quiz-1, got %q", quizID)
	}
}

func TestShareCodeUnknown(t *testing.T) {
	repo, _ := newShareRepo(t)

	_, err := repo.GetQuizIDByCode(context.Background(), "nope")
	if !errors.Is(err, domain.ErrShareCodeNotFound) {
		t.Fatalf("expected share code not found, got %v", err)
	}
}

func TestShareCodeExpires(t *testing.T) {
	ctx := context.Background()
	repo, mr := newShareRepo(t)

	if err := repo.SaveShareCode(ctx, "abc123", "quiz-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(repository.ShareCodeTTL + 1)

	if _, err := repo.GetQuizIDByCode(ctx, "abc123"); !errors.Is(err, domain.ErrShareCodeNotFound) {
		t.Fatalf("expected expired code to be gone, got %v", err)
	}
}

func TestPublicListCache(t *testing.T) {
	ctx := context.Background()
	repo, mr := newShareRepo(t)

	if _, ok := repo.GetPublicList(ctx); ok {
		t.Fatal("expected cache miss on empty cache")
	}

	payload := []byte(`[{"ID":"q1"}]`)
	if err := repo.CachePublicList(ctx, payload); err != nil {
		t.Fatalf("cache set failed: %v", err)
	}

	got, ok := repo.GetPublicList(ctx)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Fatalf("cached payload mismatch: %s", got)
	}

	if err := repo.InvalidatePublicList(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, ok := repo.GetPublicList(ctx); ok {
		t.Fatal("expected cache miss after invalidation")
	}

	// TTL also clears the entry without explicit invalidation.
	if err := repo.CachePublicList(ctx, payload); err != nil {
		t.Fatalf("cache set failed: %v", err)
	}
	mr.FastForward(repository.PublicListTTL + 1)
	if _, ok := repo.GetPublicList(ctx); ok {
		t.Fatal("expected cache entry to expire")
	}
}
