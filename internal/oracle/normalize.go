package oracle

import (
	"encoding/json"
	"fmt"

	"github.com/me/kborch/pkg/model"
)

// requiredFields are the five keys every oracle verdict must carry, in the
// order validation reports them.
var requiredFields = []string{"samples", "mean", "variance", "jitter", "decision"}

// Normalize parses a raw oracle payload into a HealthRecord.
//
// Two shapes are accepted: the oracle's direct shape (the five fields at the
// top level) and the gateway-wrapped shape, where one top-level value is an
// object carrying the five fields under an arbitrary key. Detection is
// presence-based and does not recurse past the first nesting level.
func Normalize(raw []byte) (model.HealthRecord, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return model.HealthRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	obj := payload
	if missing := missingField(payload); missing != "" {
		wrapped := findWrapped(payload)
		switch len(wrapped) {
		case 1:
			obj = wrapped[0]
		case 0:
			return model.HealthRecord{}, &PayloadError{Field: missing, Reason: "is missing"}
		default:
			return model.HealthRecord{}, &PayloadError{
				Reason: fmt.Sprintf("%d nested objects match the health shape, want exactly one", len(wrapped)),
			}
		}
	}

	return validate(obj)
}

// missingField returns the first required field absent from obj, or "".
func missingField(obj map[string]any) string {
	for _, f := range requiredFields {
		if _, ok := obj[f]; !ok {
			return f
		}
	}
	return ""
}

// findWrapped collects top-level values that look like a direct-shape verdict.
func findWrapped(payload map[string]any) []map[string]any {
	var found []map[string]any
	for _, v := range payload {
		if nested, ok := v.(map[string]any); ok && missingField(nested) == "" {
			found = append(found, nested)
		}
	}
	return found
}

// validate checks field kinds and ranges and builds the immutable record.
// obj is known to carry all five required keys.
func validate(obj map[string]any) (model.HealthRecord, error) {
	var rec model.HealthRecord

	samples, err := asInt("samples", obj["samples"])
	if err != nil {
		return rec, err
	}
	if samples < 0 {
		return rec, &PayloadError{Field: "samples", Reason: "must be non-negative"}
	}

	mean, err := asFloat("mean", obj["mean"])
	if err != nil {
		return rec, err
	}
	variance, err := asFloat("variance", obj["variance"])
	if err != nil {
		return rec, err
	}
	if variance < 0 {
		return rec, &PayloadError{Field: "variance", Reason: "must be non-negative"}
	}
	jitter, err := asFloat("jitter", obj["jitter"])
	if err != nil {
		return rec, err
	}
	if jitter < 0 {
		return rec, &PayloadError{Field: "jitter", Reason: "must be non-negative"}
	}

	ds, ok := obj["decision"].(string)
	if !ok {
		return rec, &PayloadError{Field: "decision", Reason: "must be a string"}
	}
	decision := model.Decision(ds)
	if !decision.Valid() {
		return rec, &PayloadError{Field: "decision", Reason: fmt.Sprintf("has unrecognized value %q", ds)}
	}

	rec = model.HealthRecord{
		Samples:  samples,
		Mean:     mean,
		Variance: variance,
		Jitter:   jitter,
		Decision: decision,
	}
	return rec, nil
}

func asFloat(field string, v any) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, &PayloadError{Field: field, Reason: "must be a number"}
	}
	return f, nil
}

func asInt(field string, v any) (int, error) {
	f, err := asFloat(field, v)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, &PayloadError{Field: field, Reason: "must be an integer"}
	}
	return int(f), nil
}
