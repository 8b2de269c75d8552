package rules

import (
	"fmt"

	"github.com/synaptica-ai/diagnostics/pkg/features"
)

// Operators understood by Predicate.
const (
	OpLess    = "<"
	OpLessEq  = "<="
	OpGreater = ">"
	OpGreatEq = ">="
	OpBetween = "between"
	OpIs      = "is"
	OpNot     = "not"
)

// Predicate compares one named feature. Boolean descriptors evaluate as 1 or 0.
type Predicate struct {
	Feature string  `yaml:"feature" json:"feature"`
	Op      string  `yaml:"op" json:"op"`
	Value   float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Min     float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max     float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

type Lookup func(name string) (float64, bool)

func (p Predicate) Eval(lookup Lookup) bool {
	v, ok := lookup(p.Feature)
	if !ok {
		return false
	}
	switch p.Op {
	case OpLess:
		return v < p.Value
	case OpLessEq:
		return v <= p.Value
	case OpGreater:
		return v > p.Value
	case OpGreatEq:
		return v >= p.Value
	case OpBetween:
		return v >= p.Min && v <= p.Max
	case OpIs:
		return v != 0
	case OpNot:
		return v == 0
	}
	return false
}

func (p Predicate) validate(lookup Lookup) error {
	if _, ok := lookup(p.Feature); !ok {
		return fmt.Errorf("unknown feature %q", p.Feature)
	}
	switch p.Op {
	case OpLess, OpLessEq, OpGreater, OpGreatEq, OpIs, OpNot:
	case OpBetween:
		if p.Min > p.Max {
			return fmt.Errorf("feature %q: inverted between %v..%v", p.Feature, p.Min, p.Max)
		}
	default:
		return fmt.Errorf("feature %q: unknown op %q", p.Feature, p.Op)
	}
	return nil
}

type WeightedRule struct {
	Predicate `yaml:",inline"`
	Weight    float64 `yaml:"weight" json:"weight"`
}

type ClassRules struct {
	Class string         `yaml:"class" json:"class"`
	Rules []WeightedRule `yaml:"rules" json:"rules"`
}

// ImageRules scores skin classes. Classes are listed in index order after Baseline.
type ImageRules struct {
	Baseline         string       `yaml:"baseline"`
	BaselineScore    float64      `yaml:"baseline_score"`
	BaselineCeiling  float64      `yaml:"baseline_ceiling"`
	ConfidenceOffset float64      `yaml:"confidence_offset"`
	ConfidenceMin    float64      `yaml:"confidence_min"`
	ConfidenceMax    float64      `yaml:"confidence_max"`
	Classes          []ClassRules `yaml:"classes"`
}

// Order is the declared class index order, baseline first.
func (r ImageRules) Order() []string {
	out := []string{r.Baseline}
	for _, c := range r.Classes {
		out = append(out, c.Class)
	}
	return out
}

type Tier struct {
	Predicate `yaml:",inline"`
	Points    int `yaml:"points"`
}

// PointGroup contributes the points of its first matching tier.
type PointGroup struct {
	Name  string `yaml:"name"`
	Tiers []Tier `yaml:"tiers"`
}

type ImageSeverityRules struct {
	ImmediateSevere    []string       `yaml:"immediate_severe"`
	ClassPoints        map[string]int `yaml:"class_points"`
	DefaultClassPoints int            `yaml:"default_class_points"`
	Groups             []PointGroup   `yaml:"groups"`
	ModerateAt         int            `yaml:"moderate_at"`
	SevereAt           int            `yaml:"severe_at"`
}

// AudioRule fires when every condition holds.
type AudioRule struct {
	When       []Predicate `yaml:"when"`
	Class      string      `yaml:"class"`
	Confidence float64     `yaml:"confidence"`
}

type AudioRules struct {
	Baseline          string      `yaml:"baseline"`
	Rules             []AudioRule `yaml:"rules"`
	DefaultClass      string      `yaml:"default_class"`
	DefaultConfidence float64     `yaml:"default_confidence"`
}

type AudioSeverityRules struct {
	Moderate []string `yaml:"moderate"`
	Urgent   []string `yaml:"urgent"`
}

// CountSeverityRules maps an abnormal-finding count to a severity.
type CountSeverityRules struct {
	MildAt     int `yaml:"mild_at"`
	ModerateAt int `yaml:"moderate_at"`
	SevereAt   int `yaml:"severe_at"`
}

type ChatRules struct {
	EmergencyPhrases []string `yaml:"emergency_phrases"`
	Greetings        []string `yaml:"greetings"`
	Farewells        []string `yaml:"farewells"`
	HelpWords        []string `yaml:"help_words"`
	BaseConfidence   float64  `yaml:"base_confidence"`
	PerMatch         float64  `yaml:"per_match"`
	MaxConfidence    float64  `yaml:"max_confidence"`
}

// RuleBook holds every threshold the scorers and assessors consult.
type RuleBook struct {
	Image         ImageRules         `yaml:"image"`
	ImageSeverity ImageSeverityRules `yaml:"image_severity"`
	Audio         AudioRules         `yaml:"audio"`
	AudioSeverity AudioSeverityRules `yaml:"audio_severity"`
	LabSeverity   CountSeverityRules `yaml:"lab_severity"`
	Chat          ChatRules          `yaml:"chat"`
}

// ImageLookup exposes image scalars and descriptors by their wire names.
func ImageLookup(f features.ImageFeatures) Lookup {
	return func(name string) (float64, bool) {
		switch name {
		case "avg_hue":
			return f.AvgHue, true
		case "avg_saturation":
			return f.AvgSaturation, true
		case "avg_value":
			return f.AvgValue, true
		case "std_hue":
			return f.StdHue, true
		case "std_saturation":
			return f.StdSaturation, true
		case "std_value":
			return f.StdValue, true
		case "texture_variance":
			return f.TextureVariance, true
		case "texture_complexity":
			return f.TextureComplexity, true
		case "avg_gradient":
			return f.AvgGradient, true
		case "edge_density":
			return f.EdgeDensity, true
		case "edge_strength":
			return f.EdgeStrength, true
		case "contour_area":
			return f.ContourArea, true
		case "circularity":
			return f.Circularity, true
		case "image_quality":
			return f.ImageQuality(), true
		case "uniform":
			return boolValue(f.Uniform()), true
		case "smooth":
			return boolValue(f.Smooth()), true
		case "regular_border":
			return boolValue(f.RegularBorder()), true
		case "symmetric":
			return boolValue(f.Symmetric()), true
		case "small":
			return boolValue(f.Small()), true
		}
		return 0, false
	}
}

func AudioLookup(f features.AudioFeatures) Lookup {
	return func(name string) (float64, bool) {
		switch name {
		case "spectral_centroid":
			return f.SpectralCentroid, true
		case "spectral_rolloff":
			return f.SpectralRolloff, true
		case "zero_crossing_rate", "zcr":
			return f.ZeroCrossingRate, true
		case "rms_energy", "rms":
			return f.RMSEnergy, true
		}
		return 0, false
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
