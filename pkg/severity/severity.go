// Package severity maps scored evidence to the none < mild < moderate < severe ordinal.
package severity

import (
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/scoring"
)

// Image scores points for lesion type, colour variation, edge irregularity, size and
// texture. Immediate classes skip the tally; the baseline is always none.
func Image(r rules.ImageSeverityRules, baseline, condition string, f features.ImageFeatures) (knowledge.Severity, int) {
	if condition == baseline {
		return knowledge.SeverityNone, 0
	}
	for _, c := range r.ImmediateSevere {
		if c == condition {
			return knowledge.SeveritySevere, 0
		}
	}

	points, ok := r.ClassPoints[condition]
	if !ok {
		points = r.DefaultClassPoints
	}
	lookup := rules.ImageLookup(f)
	for _, group := range r.Groups {
		for _, tier := range group.Tiers {
			if tier.Eval(lookup) {
				points += tier.Points
				break
			}
		}
	}

	switch {
	case points >= r.SevereAt:
		return knowledge.SeveritySevere, points
	case points >= r.ModerateAt:
		return knowledge.SeverityModerate, points
	}
	return knowledge.SeverityMild, points
}

func Lab(r rules.CountSeverityRules, findings []scoring.Finding) knowledge.Severity {
	n := len(findings)
	switch {
	case n >= r.SevereAt:
		return knowledge.SeveritySevere
	case n >= r.ModerateAt:
		return knowledge.SeverityModerate
	case n >= r.MildAt:
		return knowledge.SeverityMild
	}
	return knowledge.SeverityNone
}

func Audio(r rules.AudioSeverityRules, baseline, condition string) knowledge.Severity {
	if condition == baseline {
		return knowledge.SeverityNone
	}
	for _, c := range r.Moderate {
		if c == condition {
			return knowledge.SeverityModerate
		}
	}
	return knowledge.SeveritySevere
}

// Symptoms is the maximum baseline severity among matches; an emergency phrase is severe.
func Symptoms(matches []scoring.SymptomMatch, emergency bool) knowledge.Severity {
	if emergency {
		return knowledge.SeveritySevere
	}
	sev := knowledge.SeverityNone
	for _, m := range matches {
		sev = knowledge.MaxSeverity(sev, m.Entry.Severity)
	}
	return sev
}
