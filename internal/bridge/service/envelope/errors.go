package envelope

import (
	"fmt"
	"unicode/utf8"
)

const rawPreviewLimit = 200

// DecodeError is returned when stdout is not a well-formed helper envelope.
// It is distinct from a declared error envelope, which parses successfully.
type DecodeError struct {
	Raw   string
	Cause error
}

func (e *DecodeError) Error() string {
	preview := e.Raw
	if len(preview) > rawPreviewLimit {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := rawPreviewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}
	return fmt.Sprintf("helper output is not a valid result envelope: %v (output: %q)", e.Cause, preview)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
