package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError lists every field that blocked a submission. It is a
// local error: it is raised before any network call and is recovered by
// re-prompting the user.
type ValidationError struct {
	Missing []string // absent required fields, contract order
	Invalid []string // present but malformed (bad number / unknown option)
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.Invalid, ", "))
	}
	return fmt.Sprintf("input validation failed (%s)", strings.Join(parts, "; "))
}

// Fields returns all offending field names, missing first.
func (e *ValidationError) Fields() []string {
	return append(append([]string{}, e.Missing...), e.Invalid...)
}

// Validate checks an input against its schema. Pure check, no side
// effects. Policy:
//   - every declared tabular field is required, no partial submission;
//   - numeric fields must parse, categorical values must be a declared
//     option;
//   - image workflows require the asset plus the schema's identifying
//     metadata subset; tabular workflows require no metadata.
//
// All offenders are reported, not just the first.
func Validate(in *Input) error {
	s := in.Schema
	verr := &ValidationError{}

	if s.ImageBased() {
		if in.Image == nil || len(in.Image.Data) == 0 {
			verr.Missing = append(verr.Missing, "file")
		} else if !strings.HasPrefix(in.Image.ContentType, "image/") {
			verr.Invalid = append(verr.Invalid, "file")
		}
		for _, key := range s.RequiredMetadata {
			if strings.TrimSpace(in.Metadata.Get(key)) == "" {
				verr.Missing = append(verr.Missing, key)
			}
		}
	}

	for _, f := range s.Fields {
		raw, ok := in.Values[f.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			verr.Missing = append(verr.Missing, f.Name)
			continue
		}
		switch f.Kind {
		case Numeric:
			if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
				verr.Invalid = append(verr.Invalid, f.Name)
			}
		case Categorical:
			if !contains(f.Options, raw) {
				verr.Invalid = append(verr.Invalid, f.Name)
			}
		}
	}

	// Surface unknown keys as invalid: they would silently change the
	// wire payload shape.
	var unknown []string
	for k := range in.Values {
		if !contains(s.FieldNames(), k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	verr.Invalid = append(verr.Invalid, unknown...)

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
