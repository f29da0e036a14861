package repository

import (
	"context"

	"medipredict/internal/domain"
)

// PredictionsRepository persists and lists historical prediction records.
// Records are read-only once written; the aggregation code only ever
// consumes the list.
type PredictionsRepository interface {
	// Insert stores one record for a user and returns its id. An empty
	// rec.ID gets a generated UUID; CreatedAt defaults to now.
	Insert(ctx context.Context, userID string, rec domain.Prediction) (string, error)

	// ListByUser returns a user's records most-recent-first.
	ListByUser(ctx context.Context, userID string) ([]domain.Prediction, error)
}
