// Package history summarizes persisted prediction records for the
// history views: overall counts, per-category buckets, and per-record
// status badges. Everything here is a pure fold over the record list;
// input records are never mutated.
package history

import (
	"strings"
	"time"

	"medipredict/internal/domain"
)

// Summary is the stats row rendered above the history listing.
type Summary struct {
	Total       int `json:"total"`
	ThisMonth   int `json:"this_month"`
	HeartChecks int `json:"heart_checks"`
	// BrainScans merges brain_tumor and alzheimer into one bucket.
	BrainScans   int `json:"brain_scans"`
	KidneyChecks int `json:"kidney_checks"`
	Other        int `json:"other"`
}

// Summarize folds a most-recent-first record list into a Summary. The
// this-month count matches the month number against now, same as the
// original view did (a January record from last year would count; kept
// as-is).
func Summarize(records []domain.Prediction, now time.Time) Summary {
	var s Summary
	s.Total = len(records)
	for _, rec := range records {
		if rec.CreatedAt.Month() == now.Month() {
			s.ThisMonth++
		}
		switch rec.DiseaseType {
		case domain.DiseaseHeart:
			s.HeartChecks++
		case domain.DiseaseBrainTumor, domain.DiseaseAlzheimer:
			s.BrainScans++
		case domain.DiseaseKidney:
			s.KidneyChecks++
		default:
			s.Other++
		}
	}
	return s
}

// BadgeFor derives the status badge from a record's result text via
// case-insensitive substring match. A missing or empty result is treated
// as unknown and lands on High Risk — the conservative default conflates
// unknown with high risk, and is kept deliberately.
func BadgeFor(rec domain.Prediction) domain.StatusBadge {
	result := rec.PredictionResult.Result
	if strings.TrimSpace(result) == "" {
		return domain.BadgeHighRisk
	}
	lower := strings.ToLower(result)
	switch {
	case strings.Contains(lower, "negative"),
		strings.Contains(lower, "normal"),
		strings.Contains(lower, "no"):
		return domain.BadgeNormal
	case strings.Contains(lower, "mild"),
		strings.Contains(lower, "low"):
		return domain.BadgeMildRisk
	default:
		return domain.BadgeHighRisk
	}
}

// Entry is one record decorated for listing: the raw record plus its
// derived badge and input-type tag.
type Entry struct {
	domain.Prediction
	Badge     domain.StatusBadge `json:"badge"`
	InputType string             `json:"input_type"` // "Medical Image" | "Health Parameters"
}

// Decorate builds listing entries in input order.
func Decorate(records []domain.Prediction) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		inputType := "Health Parameters"
		if rec.ImageURL != "" {
			inputType = "Medical Image"
		}
		entries = append(entries, Entry{
			Prediction: rec,
			Badge:      BadgeFor(rec),
			InputType:  inputType,
		})
	}
	return entries
}
