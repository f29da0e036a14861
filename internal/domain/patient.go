package domain

// PatientMetadata holds the free-form descriptive fields collected next to
// the model features. It is never consumed by the models; it rides along
// as the `additional_info` member of every predict request, unmodified.
//
// Keys are whatever the form supplies (patientName, hospitalName,
// familyHistory, symptoms, ...). Only the identifying subset declared by a
// schema is ever validated.
type PatientMetadata map[string]string

// Get returns the value for key, or "" when absent.
func (m PatientMetadata) Get(key string) string {
	if m == nil {
		return ""
	}
	return m[key]
}

// Clone returns a shallow copy so a submission can freeze its metadata
// while the form keeps mutating the original.
func (m PatientMetadata) Clone() PatientMetadata {
	if m == nil {
		return nil
	}
	out := make(PatientMetadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
