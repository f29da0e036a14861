package interpret

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medipredict/internal/domain"
)

func TestInterpret_TierTable(t *testing.T) {
	cases := []struct {
		disease domain.DiseaseType
		label   string
		tier    domain.SeverityTier
	}{
		{domain.DiseaseAlzheimer, "No Dementia", domain.TierNormal},
		{domain.DiseaseAlzheimer, "Very Mild Dementia", domain.TierLow},
		{domain.DiseaseAlzheimer, "Mild Dementia", domain.TierModerate},
		{domain.DiseaseAlzheimer, "Moderate Dementia", domain.TierHigh},
		{domain.DiseaseAlzheimer, "Severe Dementia", domain.TierHigh},

		{domain.DiseaseBrainTumor, "No Tumor", domain.TierNormal},
		{domain.DiseaseBrainTumor, "Pituitary", domain.TierLow},
		{domain.DiseaseBrainTumor, "Meningioma", domain.TierModerate},
		{domain.DiseaseBrainTumor, "Glioma", domain.TierHigh},

		{domain.DiseaseHeart, "Positive", domain.TierHigh},
		{domain.DiseaseHeart, "Negative", domain.TierNormal},

		{domain.DiseaseKidney, "CKD", domain.TierHigh},
		{domain.DiseaseKidney, "Not CKD", domain.TierNormal},
	}
	for _, tc := range cases {
		t.Run(string(tc.disease)+"/"+tc.label, func(t *testing.T) {
			out, err := Interpret(domain.PredictionResult{Label: tc.label, Confidence: 90}, tc.disease)
			require.NoError(t, err)
			assert.Equal(t, tc.tier, out.Tier)
			assert.Equal(t, tc.label, out.Label)
		})
	}
}

// "Very Mild Dementia" contains "Mild"; the more specific tier must win.
func TestInterpret_VeryMildBeforeMild(t *testing.T) {
	out, err := Interpret(domain.PredictionResult{Label: "Very Mild Dementia"}, domain.DiseaseAlzheimer)
	require.NoError(t, err)
	assert.Equal(t, domain.TierLow, out.Tier)
}

func TestInterpret_BrainTumorDescriptionFromTable(t *testing.T) {
	out, err := Interpret(domain.PredictionResult{Label: "Meningioma", Confidence: 75}, domain.DiseaseBrainTumor)
	require.NoError(t, err)
	assert.Equal(t, "Tumor that arises from the meninges surrounding the brain", out.Description)
}

func TestInterpret_UnknownTumorLabelIsAnError(t *testing.T) {
	_, err := Interpret(domain.PredictionResult{Label: "Astrocytoma"}, domain.DiseaseBrainTumor)
	require.Error(t, err)

	var ue *ErrUnrecognizedLabel
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Astrocytoma", ue.Label)
	assert.Equal(t, domain.DiseaseBrainTumor, ue.Disease)
}

// Alzheimer labels are open-ended: anything unmatched falls through to
// high, never to an error.
func TestInterpret_AlzheimerNeverErrors(t *testing.T) {
	out, err := Interpret(domain.PredictionResult{Label: "something new"}, domain.DiseaseAlzheimer)
	require.NoError(t, err)
	assert.Equal(t, domain.TierHigh, out.Tier)
}

func TestInterpret_ConfidenceClamped(t *testing.T) {
	out, err := Interpret(domain.PredictionResult{Label: "Negative", Confidence: 130.4}, domain.DiseaseHeart)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.Confidence)

	out, err = Interpret(domain.PredictionResult{Label: "Negative", Confidence: -3}, domain.DiseaseHeart)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Confidence)
}

func TestInterpret_UnknownDiseaseRejected(t *testing.T) {
	_, err := Interpret(domain.PredictionResult{Label: "x"}, domain.DiseaseType("diabetes"))
	require.Error(t, err)
}
