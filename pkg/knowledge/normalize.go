package knowledge

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText applies NFKC, lowercases and collapses whitespace.
func NormalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey is the symptom index key form: normalized text with spaces as underscores.
func NormalizeKey(s string) string {
	return strings.ReplaceAll(NormalizeText(s), " ", "_")
}

// DisplayKey turns an index key back into the phrase users type.
func DisplayKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// LabKey derives a test key from a dataset name: "Glucose (Fasting)" -> "glucose".
func LabKey(name string) string {
	name = NormalizeText(name)
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// unionStrings concatenates lists, dropping blanks and case-insensitive duplicates
// while keeping the first spelling and first-seen order.
func unionStrings(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, item := range list {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			key := NormalizeText(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
