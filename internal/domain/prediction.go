package domain

import (
	"encoding/json"
	"time"
)

// DiseaseType is a closed enumeration of the supported diagnostic workflows.
// The string values are part of the persisted record format and of the
// frontend contract (snake_case), do not rename.
type DiseaseType string

const (
	DiseaseHeart      DiseaseType = "heart_disease"
	DiseaseBrainTumor DiseaseType = "brain_tumor"
	DiseaseAlzheimer  DiseaseType = "alzheimer"
	DiseaseKidney     DiseaseType = "kidney_disease"
	DiseaseOther      DiseaseType = "other"
)

// Valid reports whether t is one of the known disease types.
func (t DiseaseType) Valid() bool {
	switch t {
	case DiseaseHeart, DiseaseBrainTumor, DiseaseAlzheimer, DiseaseKidney, DiseaseOther:
		return true
	}
	return false
}

// ImageBased reports whether the workflow takes an MRI image instead of
// tabular lab values.
func (t DiseaseType) ImageBased() bool {
	return t == DiseaseAlzheimer || t == DiseaseBrainTumor
}

// PredictionResult is the normalized inference response. The upstream
// services name the label field differently per disease (prediction /
// tumor_type / result); the client normalizes them into this shape.
type PredictionResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // percent, [0,100]
}

// SeverityTier is the coarse display classification derived from a raw
// prediction label.
type SeverityTier string

const (
	TierNormal   SeverityTier = "normal"
	TierLow      SeverityTier = "low"
	TierModerate SeverityTier = "moderate"
	TierHigh     SeverityTier = "high"
)

// DisplayResult is what the UI renders after interpretation.
type DisplayResult struct {
	Label       string       `json:"label"`
	Tier        SeverityTier `json:"tier"`
	Description string       `json:"description,omitempty"`
	Confidence  float64      `json:"confidence"` // percent, clamped to [0,100]
}

// StatusBadge is the per-record summary classification used in history
// listings.
type StatusBadge string

const (
	BadgeNormal   StatusBadge = "Normal"
	BadgeMildRisk StatusBadge = "Mild Risk"
	BadgeHighRisk StatusBadge = "High Risk"
)

// Prediction is a persisted historical record. Read-only to the
// aggregation code; shaped after the frontend Prediction interface
// (usePredictions.ts).
type Prediction struct {
	ID               string          `json:"id" db:"prediction_id"`
	DiseaseType      DiseaseType     `json:"disease_type" db:"disease_type"`
	InputData        json.RawMessage `json:"input_data" db:"input_data"`
	PredictionResult ResultEnvelope  `json:"prediction_result" db:"prediction_result"`
	ConfidenceScore  *float64        `json:"confidence_score" db:"confidence_score"` // percent, nullable
	ImageURL         string          `json:"image_url,omitempty" db:"image_url"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// ResultEnvelope mirrors the upstream `prediction_result` JSON object,
// which carries the result text under a "result" member.
type ResultEnvelope struct {
	Result string `json:"result"`
}
