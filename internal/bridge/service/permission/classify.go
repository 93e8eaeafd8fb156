package permission

import (
	"strings"
)

// markers are the substrings that flag helper output as permission-related.
// Matching is deliberately loose: some denial paths never reach a clean
// structured error, so the raw text of both streams is scanned.
var markers = []string{
	"permission",
	"authoriz",
}

// Failure describes a classified permission denial.
type Failure struct {
	Domain     Domain
	RawMessage string
}

// Classify inspects a failed execution for permission-denial signatures.
// stdout, stderr and any declared envelope message are scanned together,
// case-insensitively; the domain is inferred from the action name alone,
// never from payload content. Returns (nil, false) when the failure is not
// permission-related.
func Classify(stdout, stderr, message, action string) (*Failure, bool) {
	combined := strings.ToLower(stdout + "\n" + stderr + "\n" + message)

	for _, marker := range markers {
		if strings.Contains(combined, marker) {
			return &Failure{
				Domain:     DomainForAction(action),
				RawMessage: rawMessage(stdout, stderr, message),
			}, true
		}
	}

	return nil, false
}

// rawMessage picks the most specific available text for user-facing
// guidance: a declared message beats stderr, which beats raw stdout.
func rawMessage(stdout, stderr, message string) string {
	if m := strings.TrimSpace(message); m != "" {
		return m
	}
	if m := strings.TrimSpace(stderr); m != "" {
		return m
	}
	return strings.TrimSpace(stdout)
}
