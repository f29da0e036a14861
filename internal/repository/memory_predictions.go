package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"medipredict/internal/domain"
)

// MemoryPredictionsRepository is the in-memory fallback used when no DB
// is configured (local dev) and in tests.
type MemoryPredictionsRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Prediction
}

func NewMemoryPredictionsRepository() *MemoryPredictionsRepository {
	return &MemoryPredictionsRepository{
		byUser: make(map[string][]domain.Prediction),
	}
}

var _ PredictionsRepository = (*MemoryPredictionsRepository)(nil)

func (r *MemoryPredictionsRepository) Insert(ctx context.Context, userID string, rec domain.Prediction) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	// Prepend: listings are most-recent-first.
	r.byUser[userID] = append([]domain.Prediction{rec}, r.byUser[userID]...)
	return rec.ID, nil
}

func (r *MemoryPredictionsRepository) ListByUser(ctx context.Context, userID string) ([]domain.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byUser[userID]
	out := make([]domain.Prediction, len(records))
	copy(out, records)
	return out, nil
}
