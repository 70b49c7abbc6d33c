package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent PATCH field from an explicit null
// (RFC 7396):
//   - Present=false: field absent, leave unchanged
//   - Present=true, Value=nil: field is JSON null, clear it
//   - Present=true, Value=&"text": set it
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON is only called when the field is present.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Patch returns the update to apply to a non-nullable string field: nil to
// leave it alone, a pointer to "" for an explicit null, the value otherwise.
func (o OptionalString) Patch() *string {
	if !o.Present {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	return o.Value
}
