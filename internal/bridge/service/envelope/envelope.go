// Package envelope parses the helper binary's stdout protocol: a small JSON
// envelope carrying either a success payload or a declared error message.
package envelope

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	// StatusSuccess marks a success envelope carrying a result payload.
	StatusSuccess = "success"
	// StatusError marks an error envelope carrying a message.
	StatusError = "error"
)

// Decoded is a parsed helper envelope. A declared failure (Status ==
// StatusError) decodes cleanly and is a distinct case from undecodable
// stdout, which Decode reports as a *DecodeError instead.
type Decoded struct {
	Status  string
	Result  any
	Message string
}

// OK reports whether the envelope declares success.
func (d *Decoded) OK() bool {
	return d.Status == StatusSuccess
}

type rawEnvelope struct {
	Status  string `json:"status"`
	Result  any    `json:"result"`
	Message string `json:"message"`
}

// Decode parses stdout as a helper envelope. Any stdout that is not a JSON
// object with a recognized status discriminator yields a *DecodeError; the
// raw text is preserved so permission classification can still run against
// it.
func Decode(stdout string) (*Decoded, error) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil, &DecodeError{Raw: stdout, Cause: errors.New("empty output")}
	}

	var raw rawEnvelope
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, &DecodeError{Raw: stdout, Cause: err}
	}

	switch raw.Status {
	case StatusSuccess, StatusError:
	default:
		return nil, &DecodeError{Raw: stdout, Cause: errors.New("missing or unknown status discriminator")}
	}

	return &Decoded{
		Status:  raw.Status,
		Result:  raw.Result,
		Message: raw.Message,
	}, nil
}

// As decodes the envelope's result payload into a typed struct.
func As(d *Decoded, out any) error {
	return mapstructure.Decode(d.Result, out)
}
