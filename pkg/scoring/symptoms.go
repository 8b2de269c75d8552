package scoring

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
)

type SymptomMatch struct {
	Key   string                 `json:"key"`
	Entry knowledge.SymptomEntry `json:"-"`
}

// DetectSymptoms reports every index key whose underscore or space form occurs in the
// normalized message, in index order. Matching is substring based.
func DetectSymptoms(base *knowledge.Base, message string) []SymptomMatch {
	text := knowledge.NormalizeText(message)
	if text == "" {
		return nil
	}
	var matches []SymptomMatch
	for _, key := range base.SymptomKeys() {
		if strings.Contains(text, key) || strings.Contains(text, knowledge.DisplayKey(key)) {
			entry, _ := base.Symptom(key)
			matches = append(matches, SymptomMatch{Key: key, Entry: entry})
		}
	}
	return matches
}

type Intent string

const (
	IntentNone      Intent = ""
	IntentEmergency Intent = "emergency"
	IntentGreeting  Intent = "greeting"
	IntentFarewell  Intent = "farewell"
	IntentHelp      Intent = "help"
)

// DetectIntent checks emergency phrases by substring first. Greetings, farewells and
// help requests are whole-word matches and only count when no symptom matched.
func DetectIntent(r rules.ChatRules, message string, symptomsMatched bool) Intent {
	text := knowledge.NormalizeText(message)
	for _, phrase := range r.EmergencyPhrases {
		if p := knowledge.NormalizeText(phrase); p != "" && strings.Contains(text, p) {
			return IntentEmergency
		}
	}
	if symptomsMatched {
		return IntentNone
	}
	padded := " " + strings.Join(words(text), " ") + " "
	switch {
	case containsWord(padded, r.Greetings):
		return IntentGreeting
	case containsWord(padded, r.Farewells):
		return IntentFarewell
	case containsWord(padded, r.HelpWords):
		return IntentHelp
	}
	return IntentNone
}

func words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func containsWord(padded string, phrases []string) bool {
	for _, phrase := range phrases {
		p := strings.Join(words(knowledge.NormalizeText(phrase)), " ")
		if p != "" && strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

type ConditionCandidate struct {
	Name       string  `json:"condition"`
	Count      int     `json:"count"`
	Confidence float64 `json:"confidence"`
}

// RankConditions orders conditions by how many matched symptoms point at them, ties in
// first-seen order. Confidence is min(max, base + per*count).
func RankConditions(r rules.ChatRules, matches []SymptomMatch) []ConditionCandidate {
	var out []ConditionCandidate
	pos := make(map[string]int)
	for _, m := range matches {
		for _, c := range m.Entry.Conditions {
			if i, ok := pos[c]; ok {
				out[i].Count++
				continue
			}
			pos[c] = len(out)
			out = append(out, ConditionCandidate{Name: c, Count: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	for i := range out {
		out[i].Confidence = math.Min(r.MaxConfidence, r.BaseConfidence+r.PerMatch*float64(out[i].Count))
	}
	return out
}

type MedicationCandidate struct {
	Name     string   `json:"name"`
	Symptoms []string `json:"for_symptoms"`
}

// RankMedications orders medications by the number of matched symptoms recommending
// them, ties in first-seen order.
func RankMedications(matches []SymptomMatch) []MedicationCandidate {
	var out []MedicationCandidate
	pos := make(map[string]int)
	for _, m := range matches {
		for _, med := range m.Entry.Medications {
			if i, ok := pos[med]; ok {
				out[i].Symptoms = append(out[i].Symptoms, m.Key)
				continue
			}
			pos[med] = len(out)
			out = append(out, MedicationCandidate{Name: med, Symptoms: []string{m.Key}})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Symptoms) > len(out[j].Symptoms) })
	return out
}
