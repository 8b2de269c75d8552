// Package dlp masks identifiers (SSN, dates of birth, emails, phone numbers) in free
// text before it is persisted.
package dlp

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/synaptica-ai/diagnostics/pkg/common/models"
	"github.com/synaptica-ai/diagnostics/pkg/features"
)

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp
}

type Redactor struct {
	rules []compiledRule
}

func NewRedactor(cfg RulesConfig) (*Redactor, error) {
	var compiled []compiledRule
	for _, rule := range cfg.Rules {
		if !rule.Enabled {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("PHI rule %s: %w", rule.Name, err)
		}
		compiled = append(compiled, compiledRule{rule: rule, re: re})
	}
	return &Redactor{rules: compiled}, nil
}

// Scan locates identifiers in text and returns the masked text. Findings refer to
// offsets in the original text.
func (r *Redactor) Scan(text string) models.RedactionResult {
	if r == nil || text == "" {
		return models.RedactionResult{Text: text}
	}

	var findings []models.PHIFinding
	types := make(map[string]struct{})
	masked := text
	for _, rule := range r.rules {
		for _, m := range rule.re.FindAllStringIndex(text, -1) {
			findings = append(findings, models.PHIFinding{Start: m[0], End: m[1], Type: rule.rule.Type})
			types[rule.rule.Type] = struct{}{}
		}
		masked = rule.re.ReplaceAllLiteralString(masked, rule.rule.Mask)
	}

	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Start < findings[j].Start })
	phiTypes := make([]string, 0, len(types))
	for t := range types {
		phiTypes = append(phiTypes, t)
	}
	sort.Strings(phiTypes)

	return models.RedactionResult{
		Text:     masked,
		Detected: len(findings) > 0,
		PHITypes: phiTypes,
		Findings: findings,
	}
}

func (r *Redactor) Redact(text string) string {
	return r.Scan(text).Text
}

// RedactRecord returns a copy of rec with its free-text fields masked. Numeric features
// carry no identifiers and are shared.
func (r *Redactor) RedactRecord(rec features.Record) features.Record {
	out := rec
	if rec.Text != nil {
		text := *rec.Text
		text.Message = r.Redact(text.Message)
		out.Text = &text
	}
	if rec.Lab != nil {
		lab := *rec.Lab
		lab.Text = r.Redact(lab.Text)
		out.Lab = &lab
	}
	return out
}
