package knowledge

import (
	"fmt"
	"strings"
)

// Severity is the ordinal none < mild < moderate < severe.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

// SeverityUnknown is the label reported when an analysis fails. It is not part of the ordinal.
const SeverityUnknown = "unknown"

var severityNames = [...]string{"none", "mild", "moderate", "severe"}

func (s Severity) String() string {
	if s < SeverityNone || s > SeveritySevere {
		return SeverityUnknown
	}
	return severityNames[s]
}

// ParseSeverity accepts the four ordinal names plus the low/medium/high vocabulary
// found in third-party condition datasets.
func ParseSeverity(value string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "normal", "healthy":
		return SeverityNone, true
	case "mild", "low", "minor":
		return SeverityMild, true
	case "moderate", "medium":
		return SeverityModerate, true
	case "severe", "high", "critical", "serious":
		return SeveritySevere, true
	}
	return SeverityNone, false
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = parsed
	return nil
}

func MaxSeverity(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}
