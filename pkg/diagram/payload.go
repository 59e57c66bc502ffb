package diagram

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPayload is returned by [ParseDropPayload] when the drag payload
// is not valid JSON or is missing a label. Callers are expected to ignore the
// drop silently; a malformed payload is not a user-visible failure.
var ErrInvalidPayload = errors.New("invalid drop payload")

// DropPayload is the tagged transfer type carried by a palette drag-and-drop.
// It is validated at the boundary before any document mutation happens.
type DropPayload struct {
	Label  string `json:"label"`
	Custom bool   `json:"isCustom"`
}

// ParseDropPayload decodes and validates a drag payload. A payload with an
// empty label is rejected: there is nothing meaningful to place on the
// canvas.
func ParseDropPayload(data []byte) (DropPayload, error) {
	var p DropPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DropPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.Label == "" {
		return DropPayload{}, fmt.Errorf("%w: missing label", ErrInvalidPayload)
	}
	return p, nil
}
