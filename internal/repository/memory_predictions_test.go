package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medipredict/internal/domain"
)

func TestMemoryPredictions_InsertAssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryPredictionsRepository()

	id, err := repo.Insert(context.Background(), "u1", domain.Prediction{
		DiseaseType:      domain.DiseaseHeart,
		PredictionResult: domain.ResultEnvelope{Result: "Negative"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestMemoryPredictions_ListMostRecentFirst(t *testing.T) {
	repo := NewMemoryPredictionsRepository()
	ctx := context.Background()

	first, _ := repo.Insert(ctx, "u1", domain.Prediction{DiseaseType: domain.DiseaseHeart})
	time.Sleep(time.Millisecond)
	second, _ := repo.Insert(ctx, "u1", domain.Prediction{DiseaseType: domain.DiseaseKidney})

	records, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, second, records[0].ID)
	assert.Equal(t, first, records[1].ID)
}

func TestMemoryPredictions_UsersAreIsolated(t *testing.T) {
	repo := NewMemoryPredictionsRepository()
	ctx := context.Background()

	_, _ = repo.Insert(ctx, "u1", domain.Prediction{DiseaseType: domain.DiseaseHeart})

	records, err := repo.ListByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, records)
}
