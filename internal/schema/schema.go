// Package schema declares the per-disease input contracts: the ordered
// feature lists the trained models were fitted on, and the patient
// metadata subset each workflow requires.
//
// Field order and field names are part of the inference service contract.
// They must match the training pipeline exactly; never reorder or rename.
package schema

import (
	"medipredict/internal/domain"
)

// FieldKind discriminates how a tabular field is entered and checked.
type FieldKind string

const (
	Numeric     FieldKind = "numeric"     // free text, must parse as a number
	Categorical FieldKind = "categorical" // one of Options
)

// Field is one declared tabular feature.
type Field struct {
	Name    string
	Label   string
	Kind    FieldKind
	Options []string // categorical only
}

// Schema is the full input contract for one disease workflow.
type Schema struct {
	Disease domain.DiseaseType

	// Fields is the ordered tabular feature list. Empty for image-based
	// workflows.
	Fields []Field

	// RequiredMetadata is the identifying PatientMetadata subset that must
	// be present before submission. Image workflows enforce it; the
	// tabular ones historically never did.
	RequiredMetadata []string

	// Endpoint is the upstream predict route.
	Endpoint string
}

// ImageBased reports whether this schema takes an MRI image.
func (s *Schema) ImageBased() bool { return s.Disease.ImageBased() }

// FieldNames returns the declared field names in contract order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ByDisease returns the schema for the given disease type, or nil for
// types without a declared input contract.
func ByDisease(t domain.DiseaseType) *Schema {
	switch t {
	case domain.DiseaseHeart:
		return Heart
	case domain.DiseaseKidney:
		return Kidney
	case domain.DiseaseAlzheimer:
		return Alzheimer
	case domain.DiseaseBrainTumor:
		return BrainTumor
	}
	return nil
}

// identifyingMetadata is the minimal patient subset the image workflows
// require (Alzheimer/Brain pages validate these four before upload).
var identifyingMetadata = []string{"patientName", "age", "gender", "hospitalName"}

// Alzheimer takes a single MRI image; no tabular features.
var Alzheimer = &Schema{
	Disease:          domain.DiseaseAlzheimer,
	RequiredMetadata: identifyingMetadata,
	Endpoint:         "/upload-mri",
}

// BrainTumor takes a single MRI image; no tabular features.
var BrainTumor = &Schema{
	Disease:          domain.DiseaseBrainTumor,
	RequiredMetadata: identifyingMetadata,
	Endpoint:         "/upload-brain-mri",
}

// Heart: 13 features in exact training order.
var Heart = &Schema{
	Disease:  domain.DiseaseHeart,
	Endpoint: "/predict-heart",
	Fields: []Field{
		{Name: "age", Label: "Age", Kind: Numeric},
		{Name: "sex", Label: "Gender", Kind: Categorical, Options: []string{"0", "1"}},
		{Name: "cp", Label: "Chest Pain Type", Kind: Categorical, Options: []string{"0", "1", "2", "3"}},
		{Name: "trestbps", Label: "Resting Blood Pressure", Kind: Numeric},
		{Name: "chol", Label: "Serum Cholesterol", Kind: Numeric},
		{Name: "fbs", Label: "Fasting Blood Sugar > 120 mg/dl", Kind: Categorical, Options: []string{"0", "1"}},
		{Name: "restecg", Label: "Resting ECG Result", Kind: Categorical, Options: []string{"0", "1", "2"}},
		{Name: "thalach", Label: "Maximum Heart Rate Achieved", Kind: Numeric},
		{Name: "exang", Label: "Exercise-induced Angina", Kind: Categorical, Options: []string{"0", "1"}},
		{Name: "oldpeak", Label: "ST Depression Induced by Exercise", Kind: Numeric},
		{Name: "slope", Label: "Slope of Peak Exercise ST Segment", Kind: Categorical, Options: []string{"0", "1", "2"}},
		{Name: "ca", Label: "Number of Major Vessels", Kind: Categorical, Options: []string{"0", "1", "2", "3", "4"}},
		{Name: "thal", Label: "Thallium Stress Test Result", Kind: Categorical, Options: []string{"0", "1", "2", "3"}},
	},
}

// Kidney: 24 features in exact training order.
var Kidney = &Schema{
	Disease:  domain.DiseaseKidney,
	Endpoint: "/predict-kidney",
	Fields: []Field{
		{Name: "age", Label: "Age of Patient", Kind: Numeric},
		{Name: "blood_pressure", Label: "Blood Pressure", Kind: Numeric},
		{Name: "specific_gravity", Label: "Specific Gravity", Kind: Numeric},
		{Name: "albumin", Label: "Albumin", Kind: Categorical, Options: []string{"0", "1", "2", "3", "4"}},
		{Name: "sugar", Label: "Sugar", Kind: Categorical, Options: []string{"0", "1", "2", "3", "4"}},
		{Name: "red_blood_cells", Label: "Red Blood Cells", Kind: Categorical, Options: []string{"normal", "abnormal"}},
		{Name: "pus_cell", Label: "Pus Cell", Kind: Categorical, Options: []string{"normal", "abnormal"}},
		{Name: "pus_cell_clumps", Label: "Pus Cell Clumps", Kind: Categorical, Options: []string{"present", "notpresent"}},
		{Name: "bacteria", Label: "Bacteria", Kind: Categorical, Options: []string{"present", "notpresent"}},
		{Name: "blood_glucose_random", Label: "Blood Glucose Random", Kind: Numeric},
		{Name: "blood_urea", Label: "Blood Urea", Kind: Numeric},
		{Name: "serum_creatinine", Label: "Serum Creatinine", Kind: Numeric},
		{Name: "sodium", Label: "Sodium", Kind: Numeric},
		{Name: "potassium", Label: "Potassium", Kind: Numeric},
		{Name: "haemoglobin", Label: "Haemoglobin", Kind: Numeric},
		{Name: "packed_cell_volume", Label: "Packed Cell Volume", Kind: Numeric},
		{Name: "white_blood_cell_count", Label: "White Blood Cell Count", Kind: Numeric},
		{Name: "red_blood_cell_count", Label: "Red Blood Cell Count", Kind: Numeric},
		{Name: "hypertension", Label: "Hypertension", Kind: Categorical, Options: []string{"yes", "no"}},
		{Name: "diabetes_mellitus", Label: "Diabetes Mellitus", Kind: Categorical, Options: []string{"yes", "no"}},
		{Name: "coronary_artery_disease", Label: "Coronary Artery Disease", Kind: Categorical, Options: []string{"yes", "no"}},
		{Name: "appetite", Label: "Appetite", Kind: Categorical, Options: []string{"good", "poor"}},
		{Name: "peda_edema", Label: "Pedal Edema", Kind: Categorical, Options: []string{"yes", "no"}},
		{Name: "aanemia", Label: "Anemia", Kind: Categorical, Options: []string{"yes", "no"}},
	},
}
