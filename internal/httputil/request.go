package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"contractpad/internal/config"
)

// maxBodyBytes leaves room for JSON escaping of a maximum-size document.
const maxBodyBytes = 2*config.MaxDocumentSize + 64<<10

// ParseJSON decodes the request body into dest, rejecting oversized bodies
// with a 413 from http.MaxBytesReader.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
