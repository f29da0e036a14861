package schema

import (
	"medipredict/internal/domain"
)

// Input is one filled-in form: the model features (or image asset) plus
// the accompanying patient metadata. It is mutable until it gets embedded
// in a submission; the submitter clones what it needs at that point.
type Input struct {
	Schema *Schema

	// Values holds the tabular field values keyed by field name, as
	// entered (numbers still free text, parsed at submission time).
	Values map[string]string

	// Image is the binary asset for image-based workflows. The form owns
	// it exclusively until submission; a new selection replaces it.
	Image *ImageAsset

	Metadata domain.PatientMetadata
}

// ImageAsset is a single uploaded scan.
type ImageAsset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewInput returns an empty input bound to the given schema.
func NewInput(s *Schema) *Input {
	return &Input{
		Schema:   s,
		Values:   make(map[string]string),
		Metadata: make(domain.PatientMetadata),
	}
}

// SetImage replaces the current asset and releases the previous one.
func (in *Input) SetImage(a *ImageAsset) {
	in.Image = a
}
