package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"gopkg.in/yaml.v3"
)

// Wildcard matches any condition or any severity in a template key.
const Wildcard = "*"

// Template is the narrative for one (condition, severity) pair. Treatment is a
// text/template rendered against TemplateData.
type Template struct {
	Condition       string   `yaml:"condition"`
	Severity        string   `yaml:"severity"`
	Treatment       string   `yaml:"treatment"`
	Recommendations []string `yaml:"recommendations"`
}

// Group attaches recommendations to a set of lab tests or symptom keys.
type Group struct {
	Keys            []string `yaml:"keys"`
	Recommendations []string `yaml:"recommendations"`
}

type Catalog struct {
	Templates     []Template          `yaml:"templates"`
	General       map[string][]string `yaml:"general"`
	LabGroups     []Group             `yaml:"lab_groups"`
	SymptomGroups []Group             `yaml:"symptom_groups"`
	Replies       map[string]string   `yaml:"replies"`
	Disclaimer    string              `yaml:"disclaimer"`

	compiled map[templateKey]compiledTemplate
}

type templateKey struct {
	condition string
	severity  string
}

type compiledTemplate struct {
	Template
	tmpl *template.Template
}

// TemplateData is what treatment templates can reference.
type TemplateData struct {
	Condition      string
	Severity       string
	Description    string
	Duration       string
	Medications    []string
	EmergencySigns []string
	Findings       []FindingView
	Symptoms       []string
	Conditions     []string
	Advice         []string
}

type FindingView struct {
	Name        string
	Value       string
	Status      string
	NormalRange string
	Condition   string
	Medications []string
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"first": func(items []string, n int) []string {
		if len(items) > n {
			return items[:n]
		}
		return items
	},
}

// LoadCatalog overlays a YAML file on DefaultCatalog. File templates are consulted
// before defaults with the same key; maps merge key by key.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), fmt.Errorf("read templates: %w", err)
	}
	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return DefaultCatalog(), fmt.Errorf("parse templates: %w", err)
	}

	def := defaultCatalog()
	merged := &Catalog{
		Templates:     append(file.Templates, def.Templates...),
		General:       def.General,
		LabGroups:     append(file.LabGroups, def.LabGroups...),
		SymptomGroups: append(file.SymptomGroups, def.SymptomGroups...),
		Replies:       def.Replies,
		Disclaimer:    def.Disclaimer,
	}
	for k, v := range file.General {
		merged.General[k] = v
	}
	for k, v := range file.Replies {
		merged.Replies[k] = v
	}
	if file.Disclaimer != "" {
		merged.Disclaimer = file.Disclaimer
	}
	if err := merged.compile(); err != nil {
		return DefaultCatalog(), err
	}
	return merged, nil
}

func DefaultCatalog() *Catalog {
	c := defaultCatalog()
	if err := c.compile(); err != nil {
		panic(fmt.Sprintf("report: default templates: %v", err))
	}
	return c
}

func (c *Catalog) compile() error {
	c.compiled = make(map[templateKey]compiledTemplate, len(c.Templates))
	for _, t := range c.Templates {
		key := templateKey{condition: normalizeKey(t.Condition), severity: normalizeKey(t.Severity)}
		if _, exists := c.compiled[key]; exists {
			continue
		}
		name := key.condition + "/" + key.severity
		tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=zero").Parse(t.Treatment)
		if err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}
		c.compiled[key] = compiledTemplate{Template: t, tmpl: tmpl}
	}
	return nil
}

func normalizeKey(v string) string {
	v = knowledge.NormalizeText(v)
	if v == "" {
		return Wildcard
	}
	return v
}

// Lookup tries (condition, severity), (condition, *), (*, severity) then (*, *).
func (c *Catalog) Lookup(condition string, severity string) (compiledTemplate, bool) {
	cond, sev := normalizeKey(condition), normalizeKey(severity)
	for _, key := range []templateKey{
		{cond, sev},
		{cond, Wildcard},
		{Wildcard, sev},
		{Wildcard, Wildcard},
	} {
		if t, ok := c.compiled[key]; ok {
			return t, true
		}
	}
	return compiledTemplate{}, false
}

// Render executes the matching treatment template. A template that fails to execute
// yields its raw text.
func (c *Catalog) Render(condition, severity string, data TemplateData) (string, []string) {
	t, ok := c.Lookup(condition, severity)
	if !ok {
		return "", nil
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return strings.TrimSpace(t.Treatment), t.Recommendations
	}
	return strings.TrimSpace(buf.String()), t.Recommendations
}

// GroupRecommendations collects recommendations of every group touching one of keys,
// each recommendation once, in catalog order.
func GroupRecommendations(groups []Group, keys []string) []string {
	present := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		present[knowledge.NormalizeKey(k)] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{})
	for _, g := range groups {
		hit := false
		for _, k := range g.Keys {
			if _, ok := present[knowledge.NormalizeKey(k)]; ok {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, r := range g.Recommendations {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) Reply(intent string) string {
	return c.Replies[intent]
}
