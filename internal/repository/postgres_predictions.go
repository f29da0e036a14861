package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medipredict/internal/domain"
)

// PostgresPredictionsRepository stores prediction records in the
// `predictions` table.
type PostgresPredictionsRepository struct {
	db *sql.DB
}

func NewPostgresPredictionsRepository(db *sql.DB) *PostgresPredictionsRepository {
	return &PostgresPredictionsRepository{db: db}
}

var _ PredictionsRepository = (*PostgresPredictionsRepository)(nil)

// Insert stores one record. CreatedAt defaults to now when zero.
func (r *PostgresPredictionsRepository) Insert(ctx context.Context, userID string, rec domain.Prediction) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user_id is required")
	}
	if !rec.DiseaseType.Valid() {
		return "", fmt.Errorf("unknown disease_type %q", rec.DiseaseType)
	}

	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	inputData := rec.InputData
	if len(inputData) == 0 {
		inputData = []byte("{}")
	}

	var confidence sql.NullFloat64
	if rec.ConfidenceScore != nil {
		confidence = sql.NullFloat64{Float64: *rec.ConfidenceScore, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (
			prediction_id, user_id, disease_type, input_data,
			result, confidence_score, image_url, created_at
		) VALUES ($1::uuid, $2, $3, $4::jsonb, $5, $6, $7, $8)`,
		id, userID, string(rec.DiseaseType), string(inputData),
		rec.PredictionResult.Result, confidence, rec.ImageURL, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert prediction: %w", err)
	}
	return id, nil
}

// ListByUser returns a user's records most-recent-first.
func (r *PostgresPredictionsRepository) ListByUser(ctx context.Context, userID string) ([]domain.Prediction, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			prediction_id::text,
			disease_type,
			input_data,
			COALESCE(result, '') AS result,
			confidence_score,
			COALESCE(image_url, '') AS image_url,
			created_at
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var records []domain.Prediction
	for rows.Next() {
		var rec domain.Prediction
		var diseaseType string
		var inputData []byte
		var confidence sql.NullFloat64
		if err := rows.Scan(
			&rec.ID,
			&diseaseType,
			&inputData,
			&rec.PredictionResult.Result,
			&confidence,
			&rec.ImageURL,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		rec.DiseaseType = domain.DiseaseType(diseaseType)
		rec.InputData = inputData
		if confidence.Valid {
			v := confidence.Float64
			rec.ConfidenceScore = &v
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}
	return records, nil
}
