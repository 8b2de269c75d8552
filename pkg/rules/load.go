package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"gopkg.in/yaml.v3"
)

const (
	MinRuleWeight = 0.10
	MaxRuleWeight = 0.30
)

var ErrInvalidRuleBook = errors.New("invalid rule book")

// LoadRuleBook overlays a YAML file on the built-in rules. Sections absent from the file
// keep their defaults. Any read, parse or validation failure returns Default() with the error.
func LoadRuleBook(path string) (*RuleBook, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Default(), fmt.Errorf("read rules: %w", err)
	}

	book := Default()
	if err := yaml.Unmarshal(data, book); err != nil {
		return Default(), fmt.Errorf("parse rules: %w", err)
	}
	if err := book.Validate(); err != nil {
		return Default(), err
	}
	return book, nil
}

func (b *RuleBook) Validate() error {
	image := ImageLookup(features.ImageFeatures{})
	audio := AudioLookup(features.AudioFeatures{})

	if b.Image.Baseline == "" || len(b.Image.Classes) == 0 {
		return fmt.Errorf("%w: image rules need a baseline and classes", ErrInvalidRuleBook)
	}
	if b.Image.ConfidenceMin > b.Image.ConfidenceMax {
		return fmt.Errorf("%w: image confidence bounds inverted", ErrInvalidRuleBook)
	}
	for _, class := range b.Image.Classes {
		if class.Class == "" {
			return fmt.Errorf("%w: image class without name", ErrInvalidRuleBook)
		}
		for _, rule := range class.Rules {
			if rule.Weight < MinRuleWeight || rule.Weight > MaxRuleWeight {
				return fmt.Errorf("%w: %s weight %.2f outside [%.2f, %.2f]", ErrInvalidRuleBook, class.Class, rule.Weight, MinRuleWeight, MaxRuleWeight)
			}
			if err := rule.validate(image); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidRuleBook, class.Class, err)
			}
		}
	}

	sev := b.ImageSeverity
	if sev.ModerateAt <= 0 || sev.SevereAt <= sev.ModerateAt {
		return fmt.Errorf("%w: image severity thresholds must satisfy 0 < moderate_at < severe_at", ErrInvalidRuleBook)
	}
	for _, group := range sev.Groups {
		for _, tier := range group.Tiers {
			if err := tier.validate(image); err != nil {
				return fmt.Errorf("%w: severity group %s: %v", ErrInvalidRuleBook, group.Name, err)
			}
		}
	}

	if b.Audio.DefaultClass == "" {
		return fmt.Errorf("%w: audio rules need a default class", ErrInvalidRuleBook)
	}
	for i, rule := range b.Audio.Rules {
		if rule.Class == "" || rule.Confidence < 0 || rule.Confidence > 1 {
			return fmt.Errorf("%w: audio rule %d needs a class and a confidence in [0, 1]", ErrInvalidRuleBook, i)
		}
		for _, p := range rule.When {
			if err := p.validate(audio); err != nil {
				return fmt.Errorf("%w: audio rule %d: %v", ErrInvalidRuleBook, i, err)
			}
		}
	}

	lab := b.LabSeverity
	if lab.MildAt <= 0 || lab.ModerateAt < lab.MildAt || lab.SevereAt < lab.ModerateAt {
		return fmt.Errorf("%w: lab severity thresholds must be increasing", ErrInvalidRuleBook)
	}
	return nil
}
