package scoring

import (
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
)

// ScoreAudio walks the decision list and returns the first rule whose conditions all
// hold, or the default class. Index is the rule position, -1 for the default.
func ScoreAudio(r rules.AudioRules, f features.AudioFeatures) ScoredCandidate {
	lookup := rules.AudioLookup(f)
	for i, rule := range r.Rules {
		if allHold(rule.When, lookup) {
			return ScoredCandidate{Condition: rule.Class, Index: i, Raw: rule.Confidence, Adjusted: rule.Confidence, Confidence: rule.Confidence}
		}
	}
	return ScoredCandidate{Condition: r.DefaultClass, Index: -1, Raw: r.DefaultConfidence, Adjusted: r.DefaultConfidence, Confidence: r.DefaultConfidence}
}

func allHold(preds []rules.Predicate, lookup rules.Lookup) bool {
	for _, p := range preds {
		if !p.Eval(lookup) {
			return false
		}
	}
	return true
}
