package scoring

import (
	"math"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
)

// ScoredCandidate is one class's evidence. Confidence is a fixed mapping of the adjusted
// score, not a probability.
type ScoredCandidate struct {
	Condition  string  `json:"condition"`
	Index      int     `json:"index"`
	Raw        float64 `json:"raw_score"`
	Adjusted   float64 `json:"adjusted_score"`
	Confidence float64 `json:"confidence"`
}

type ImageResult struct {
	Winner        ScoredCandidate   `json:"winner"`
	Candidates    []ScoredCandidate `json:"candidates"`
	QualityFactor float64           `json:"quality_factor"`
}

// ScoreImage sums matching rule weights per class, awards the baseline when no class
// reaches the ceiling, scales non-baseline scores by image quality and takes the argmax.
// Ties resolve to the lowest declared index.
func ScoreImage(r rules.ImageRules, f features.ImageFeatures) ImageResult {
	lookup := rules.ImageLookup(f)
	order := r.Order()
	cands := make([]ScoredCandidate, len(order))
	cands[0] = ScoredCandidate{Condition: r.Baseline, Index: 0}

	strong := false
	for i, class := range r.Classes {
		var raw float64
		for _, rule := range class.Rules {
			if rule.Eval(lookup) {
				raw += rule.Weight
			}
		}
		// Weights are tenths and hundredths; round off float accumulation noise.
		raw = math.Round(raw*1e6) / 1e6
		if raw >= r.BaselineCeiling {
			strong = true
		}
		cands[i+1] = ScoredCandidate{Condition: class.Class, Index: i + 1, Raw: raw}
	}
	if !strong {
		cands[0].Raw = r.BaselineScore
	}

	quality := clamp(f.ImageQuality()/100, 0, 1)
	winner := 0
	for i := range cands {
		if i == 0 {
			cands[i].Adjusted = cands[i].Raw
		} else {
			cands[i].Adjusted = cands[i].Raw * quality
		}
		cands[i].Confidence = clamp(cands[i].Adjusted+r.ConfidenceOffset, r.ConfidenceMin, r.ConfidenceMax)
		if cands[i].Adjusted > cands[winner].Adjusted {
			winner = i
		}
	}

	return ImageResult{Winner: cands[winner], Candidates: cands, QualityFactor: quality}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
