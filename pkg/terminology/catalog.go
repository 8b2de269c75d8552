package terminology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Concept struct {
	Display string `yaml:"display" json:"display"`
	SNOMED  string `yaml:"snomed" json:"snomed,omitempty"`
	LOINC   string `yaml:"loinc" json:"loinc,omitempty"`
	ICD10   string `yaml:"icd10" json:"icd10,omitempty"`
}

// Catalog maps condition names and lab test keys to standard codes.
type Catalog struct {
	Concepts map[string]Concept `yaml:"concepts" json:"concepts"`
}

// Load merges a YAML catalog over the defaults. On failure the defaults are returned
// with the error.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var file Catalog
	if err := yaml.Unmarshal(content, &file); err != nil {
		return DefaultCatalog(), err
	}
	if len(file.Concepts) == 0 {
		return DefaultCatalog(), fmt.Errorf("terminology catalog empty")
	}

	cat := DefaultCatalog()
	for k, v := range file.Concepts {
		cat.Concepts[normalize(k)] = v
	}
	return cat, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (c Catalog) Lookup(key string) (Concept, bool) {
	if c.Concepts == nil {
		return Concept{}, false
	}
	concept, ok := c.Concepts[normalize(key)]
	return concept, ok
}

// Codes resolves each name once, in order, skipping names without a concept.
func (c Catalog) Codes(names ...string) []Concept {
	var out []Concept
	seen := make(map[string]struct{})
	for _, name := range names {
		key := normalize(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if concept, ok := c.Lookup(key); ok {
			out = append(out, concept)
		}
	}
	return out
}

func DefaultCatalog() Catalog {
	return Catalog{Concepts: map[string]Concept{
		"acne":             {Display: "Acne vulgaris", SNOMED: "88616000", ICD10: "L70.0"},
		"eczema":           {Display: "Eczema", SNOMED: "43116000", ICD10: "L30.9"},
		"psoriasis":        {Display: "Psoriasis", SNOMED: "9014002", ICD10: "L40.9"},
		"melanoma":         {Display: "Malignant melanoma of skin", SNOMED: "372244006", ICD10: "C43.9"},
		"dermatitis":       {Display: "Dermatitis", SNOMED: "182782007", ICD10: "L25.9"},
		"rosacea":          {Display: "Rosacea", SNOMED: "398909004", ICD10: "L71.9"},
		"fungal infection": {Display: "Dermatophytosis", SNOMED: "47382004", ICD10: "B35.9"},
		"asthma":           {Display: "Asthma", SNOMED: "195967001", ICD10: "J45.909"},
		"bronchitis":       {Display: "Bronchitis", SNOMED: "32398004", ICD10: "J40"},
		"pneumonia":        {Display: "Pneumonia", SNOMED: "233604007", ICD10: "J18.9"},
		"copd":             {Display: "Chronic obstructive lung disease", SNOMED: "13645005", ICD10: "J44.9"},
		"whooping cough":   {Display: "Pertussis", SNOMED: "27836007", ICD10: "A37.90"},

		"hyperglycemia":               {Display: "Hyperglycemia", SNOMED: "80394007", LOINC: "2345-7", ICD10: "R73.9"},
		"hypoglycemia":                {Display: "Hypoglycemia", SNOMED: "302866003", LOINC: "2345-7", ICD10: "E16.2"},
		"hypercholesterolemia":        {Display: "Hypercholesterolemia", SNOMED: "13644009", LOINC: "2093-3", ICD10: "E78.00"},
		"hypertriglyceridemia":        {Display: "Hypertriglyceridemia", SNOMED: "302870006", LOINC: "2571-8", ICD10: "E78.1"},
		"anemia":                      {Display: "Anemia", SNOMED: "271737000", LOINC: "718-7", ICD10: "D64.9"},
		"leukocytosis":                {Display: "Leukocytosis", SNOMED: "111583006", LOINC: "6690-2", ICD10: "D72.829"},
		"leukopenia":                  {Display: "Leukopenia", SNOMED: "84828003", LOINC: "6690-2", ICD10: "D72.819"},
		"thrombocytopenia":            {Display: "Thrombocytopenia", SNOMED: "302215000", LOINC: "777-3", ICD10: "D69.6"},
		"possible kidney dysfunction": {Display: "Disorder of kidney", LOINC: "2160-0", ICD10: "N28.9"},
		"elevated liver enzymes":      {Display: "Elevated liver transaminase", ICD10: "R74.01"},

		"glucose":       {Display: "Glucose", LOINC: "2345-7"},
		"cholesterol":   {Display: "Cholesterol, total", LOINC: "2093-3"},
		"hdl":           {Display: "HDL cholesterol", LOINC: "2085-9"},
		"ldl":           {Display: "LDL cholesterol", LOINC: "13457-7"},
		"triglycerides": {Display: "Triglycerides", LOINC: "2571-8"},
		"hemoglobin":    {Display: "Hemoglobin", LOINC: "718-7"},
		"wbc":           {Display: "Leukocytes", LOINC: "6690-2"},
		"rbc":           {Display: "Erythrocytes", LOINC: "789-8"},
		"platelets":     {Display: "Platelets", LOINC: "777-3"},
		"creatinine":    {Display: "Creatinine", LOINC: "2160-0"},
		"alt":           {Display: "Alanine aminotransferase", LOINC: "1742-6"},
		"ast":           {Display: "Aspartate aminotransferase", LOINC: "1920-8"},
	}}
}
