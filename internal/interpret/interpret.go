// Package interpret maps raw prediction labels onto display severity
// tiers. Tier derivation is disease-specific and driven by the label
// text; confidence is passed through, never recomputed.
package interpret

import (
	"fmt"
	"strings"

	"medipredict/internal/domain"
)

// ErrUnrecognizedLabel is returned when the brain tumor lookup misses.
// An unknown class from the service must be surfaced, not defaulted.
type ErrUnrecognizedLabel struct {
	Label   string
	Disease domain.DiseaseType
}

func (e *ErrUnrecognizedLabel) Error() string {
	return fmt.Sprintf("unrecognized %s label %q", e.Disease, e.Label)
}

// tumorClass is one entry of the closed brain tumor classification table.
type tumorClass struct {
	Tier        domain.SeverityTier
	Description string
}

// tumorClasses is the full set of labels the brain tumor model emits.
var tumorClasses = map[string]tumorClass{
	"No Tumor":   {domain.TierNormal, "No tumor detected in the brain scan"},
	"Glioma":     {domain.TierHigh, "A type of tumor that occurs in the brain and spinal cord"},
	"Meningioma": {domain.TierModerate, "Tumor that arises from the meninges surrounding the brain"},
	"Pituitary":  {domain.TierLow, "Tumor in the pituitary gland at the base of the brain"},
}

// Interpret derives the display classification for a normalized result.
// Confidence is clamped to [0,100]; it originates from an external
// service and is rendered as a progress width downstream.
func Interpret(res domain.PredictionResult, disease domain.DiseaseType) (domain.DisplayResult, error) {
	out := domain.DisplayResult{
		Label:      res.Label,
		Confidence: clamp(res.Confidence),
	}

	switch disease {
	case domain.DiseaseAlzheimer:
		out.Tier = alzheimerTier(res.Label)
	case domain.DiseaseBrainTumor:
		cls, ok := tumorClasses[res.Label]
		if !ok {
			return domain.DisplayResult{}, &ErrUnrecognizedLabel{Label: res.Label, Disease: disease}
		}
		out.Tier = cls.Tier
		out.Description = cls.Description
	case domain.DiseaseHeart:
		out.Tier = binaryTier(res.Label == "Positive")
	case domain.DiseaseKidney:
		out.Tier = binaryTier(res.Label == "CKD")
	default:
		return domain.DisplayResult{}, fmt.Errorf("no interpretation for disease type %q", disease)
	}
	return out, nil
}

// alzheimerTier: substring checks in severity order. "Very Mild" must be
// tested before "Mild", both contain the latter.
func alzheimerTier(label string) domain.SeverityTier {
	switch {
	case strings.Contains(label, "No Dementia"):
		return domain.TierNormal
	case strings.Contains(label, "Very Mild"):
		return domain.TierLow
	case strings.Contains(label, "Mild"):
		return domain.TierModerate
	default:
		return domain.TierHigh
	}
}

func binaryTier(positive bool) domain.SeverityTier {
	if positive {
		return domain.TierHigh
	}
	return domain.TierNormal
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
