package rules

import "github.com/synaptica-ai/diagnostics/pkg/knowledge"

func gt(feature string, v, w float64) WeightedRule {
	return WeightedRule{Predicate: Predicate{Feature: feature, Op: OpGreater, Value: v}, Weight: w}
}

func lt(feature string, v, w float64) WeightedRule {
	return WeightedRule{Predicate: Predicate{Feature: feature, Op: OpLess, Value: v}, Weight: w}
}

func between(feature string, lo, hi, w float64) WeightedRule {
	return WeightedRule{Predicate: Predicate{Feature: feature, Op: OpBetween, Min: lo, Max: hi}, Weight: w}
}

func is(feature string, w float64) WeightedRule {
	return WeightedRule{Predicate: Predicate{Feature: feature, Op: OpIs}, Weight: w}
}

func not(feature string, w float64) WeightedRule {
	return WeightedRule{Predicate: Predicate{Feature: feature, Op: OpNot}, Weight: w}
}

// Default returns the built-in rule book.
func Default() *RuleBook {
	return &RuleBook{
		Image:         defaultImageRules(),
		ImageSeverity: defaultImageSeverity(),
		Audio:         defaultAudioRules(),
		AudioSeverity: AudioSeverityRules{
			Moderate: []string{knowledge.Asthma, knowledge.Bronchitis, knowledge.WhoopingCough},
			Urgent:   []string{knowledge.Pneumonia, knowledge.COPD, knowledge.WhoopingCough},
		},
		LabSeverity: CountSeverityRules{MildAt: 1, ModerateAt: 3, SevereAt: 5},
		Chat: ChatRules{
			EmergencyPhrases: []string{"emergency", "urgent", "severe pain", "can't breathe", "heart attack"},
			Greetings:        []string{"hello", "hi", "hey", "greetings"},
			Farewells:        []string{"bye", "goodbye", "see you", "thanks"},
			HelpWords:        []string{"help"},
			BaseConfidence:   60,
			PerMatch:         15,
			MaxConfidence:    95,
		},
	}
}

func defaultImageRules() ImageRules {
	return ImageRules{
		Baseline:         knowledge.HealthySkin,
		BaselineScore:    0.85,
		BaselineCeiling:  0.50,
		ConfidenceOffset: 0.40,
		ConfidenceMin:    0.60,
		ConfidenceMax:    0.95,
		Classes: []ClassRules{
			{Class: knowledge.Acne, Rules: []WeightedRule{
				between("avg_hue", 0, 20, 0.25),
				gt("avg_saturation", 60, 0.20),
				gt("texture_variance", 1200, 0.15),
				gt("edge_density", 0.10, 0.15),
				not("uniform", 0.10),
			}},
			{Class: knowledge.Eczema, Rules: []WeightedRule{
				gt("std_saturation", 50, 0.25),
				gt("texture_variance", 1800, 0.20),
				lt("avg_value", 150, 0.15),
				not("uniform", 0.15),
				not("smooth", 0.10),
			}},
			{Class: knowledge.Psoriasis, Rules: []WeightedRule{
				gt("texture_variance", 2200, 0.25),
				gt("edge_density", 0.12, 0.20),
				gt("avg_gradient", 30, 0.15),
				not("regular_border", 0.15),
				gt("texture_complexity", 1500, 0.10),
			}},
			{Class: knowledge.Melanoma, Rules: []WeightedRule{
				lt("avg_value", 80, 0.30),
				gt("edge_density", 0.15, 0.25),
				gt("std_hue", 35, 0.20),
				not("symmetric", 0.20),
				lt("circularity", 0.6, 0.15),
				not("small", 0.10),
			}},
			{Class: knowledge.Dermatitis, Rules: []WeightedRule{
				between("avg_hue", 10, 30, 0.25),
				gt("avg_saturation", 45, 0.20),
				gt("texture_variance", 1000, 0.15),
				gt("std_saturation", 40, 0.15),
			}},
			{Class: knowledge.Rosacea, Rules: []WeightedRule{
				between("avg_hue", 0, 15, 0.30),
				gt("avg_saturation", 80, 0.25),
				lt("std_hue", 25, 0.20),
				is("uniform", 0.15),
			}},
			{Class: knowledge.FungalInfection, Rules: []WeightedRule{
				between("avg_hue", 20, 45, 0.30),
				gt("edge_density", 0.10, 0.20),
				gt("circularity", 0.7, 0.20),
				is("regular_border", 0.15),
			}},
		},
	}
}

func defaultImageSeverity() ImageSeverityRules {
	return ImageSeverityRules{
		ImmediateSevere:    []string{knowledge.Melanoma},
		ClassPoints:        map[string]int{knowledge.Eczema: 2, knowledge.Psoriasis: 2},
		DefaultClassPoints: 1,
		Groups: []PointGroup{
			{Name: "color_variation", Tiers: []Tier{
				{Predicate: Predicate{Feature: "std_saturation", Op: OpGreater, Value: 70}, Points: 2},
				{Predicate: Predicate{Feature: "std_saturation", Op: OpGreater, Value: 50}, Points: 1},
			}},
			{Name: "edge_irregularity", Tiers: []Tier{
				{Predicate: Predicate{Feature: "edge_density", Op: OpGreater, Value: 0.15}, Points: 2},
				{Predicate: Predicate{Feature: "edge_density", Op: OpGreater, Value: 0.10}, Points: 1},
			}},
			{Name: "size", Tiers: []Tier{
				{Predicate: Predicate{Feature: "small", Op: OpNot}, Points: 1},
			}},
			{Name: "texture", Tiers: []Tier{
				{Predicate: Predicate{Feature: "texture_variance", Op: OpGreater, Value: 2000}, Points: 1},
			}},
		},
		ModerateAt: 3,
		SevereAt:   6,
	}
}

func defaultAudioRules() AudioRules {
	return AudioRules{
		Baseline: knowledge.HealthyBreathing,
		Rules: []AudioRule{
			{
				When:       []Predicate{{Feature: "rms_energy", Op: OpLess, Value: 0.02}},
				Class:      knowledge.HealthyBreathing,
				Confidence: 0.85,
			},
			{
				When: []Predicate{
					{Feature: "zero_crossing_rate", Op: OpGreater, Value: 0.1},
					{Feature: "spectral_centroid", Op: OpGreater, Value: 2000},
				},
				Class:      knowledge.Asthma,
				Confidence: 0.75,
			},
			{
				When: []Predicate{
					{Feature: "rms_energy", Op: OpGreater, Value: 0.05},
					{Feature: "spectral_centroid", Op: OpLess, Value: 1500},
				},
				Class:      knowledge.Bronchitis,
				Confidence: 0.70,
			},
		},
		DefaultClass:      knowledge.HealthyBreathing,
		DefaultConfidence: 0.80,
	}
}
