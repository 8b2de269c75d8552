package knowledge

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dataset is the raw content of one or more condition/test files. YAML is a superset
// of JSON so both formats decode through the same path.
type Dataset struct {
	Domain     string         `yaml:"domain" json:"domain"`
	Conditions []RawCondition `yaml:"conditions" json:"conditions"`
	Diseases   []RawCondition `yaml:"diseases" json:"diseases"`
	Tests      []RawLabTest   `yaml:"tests" json:"tests"`
}

type RawCondition struct {
	Name              string   `yaml:"name" json:"name"`
	Domain            string   `yaml:"domain" json:"domain"`
	Symptoms          []string `yaml:"symptoms" json:"symptoms"`
	Characteristics   []string `yaml:"characteristics" json:"characteristics"`
	Medications       []string `yaml:"medications" json:"medications"`
	Severity          string   `yaml:"severity" json:"severity"`
	Duration          string   `yaml:"duration" json:"duration"`
	TreatmentDuration string   `yaml:"treatment_duration" json:"treatment_duration"`
	Description       string   `yaml:"description" json:"description"`
	EmergencySigns    []string `yaml:"emergency_signs" json:"emergency_signs"`
}

type RawRange struct {
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`
}

type RawLabTest struct {
	Name           string              `yaml:"name" json:"name"`
	Unit           string              `yaml:"unit" json:"unit"`
	Description    string              `yaml:"description" json:"description"`
	NormalRange    *RawRange           `yaml:"normal_range" json:"normal_range"`
	PlausibleRange *RawRange           `yaml:"plausible_range" json:"plausible_range"`
	Aliases        []string            `yaml:"aliases" json:"aliases"`
	Medications    map[string][]string `yaml:"medications" json:"medications"`
	Conditions     map[string]string   `yaml:"conditions" json:"conditions"`
}

// LoadDataset reads one dataset file. A failed read or parse returns an empty Dataset
// together with the error so callers can log it and continue on defaults.
func LoadDataset(path string) (Dataset, error) {
	if path == "" {
		return Dataset{}, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	fileDomain := parseDomain(ds.Domain)
	for i := range ds.Conditions {
		if ds.Conditions[i].Domain == "" && fileDomain != "" {
			ds.Conditions[i].Domain = string(fileDomain)
		}
	}
	for i := range ds.Diseases {
		if ds.Diseases[i].Domain == "" {
			ds.Diseases[i].Domain = string(DomainGeneral)
		}
	}
	return ds, nil
}

// LoadDatasets concatenates every readable file. Errors are collected, never fatal.
func LoadDatasets(paths ...string) (Dataset, []error) {
	var (
		merged Dataset
		errs   []error
	)
	for _, path := range paths {
		ds, err := LoadDataset(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		merged.Conditions = append(merged.Conditions, ds.Conditions...)
		merged.Diseases = append(merged.Diseases, ds.Diseases...)
		merged.Tests = append(merged.Tests, ds.Tests...)
	}
	return merged, errs
}
