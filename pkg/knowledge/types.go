package knowledge

import (
	"math"
	"strconv"
)

type Domain string

const (
	DomainSkin        Domain = "skin"
	DomainRespiratory Domain = "respiratory"
	DomainGeneral     Domain = "general"
)

func parseDomain(v string) Domain {
	switch Domain(NormalizeText(v)) {
	case DomainSkin, "dermatology":
		return DomainSkin
	case DomainRespiratory, "pulmonary":
		return DomainRespiratory
	case "":
		return ""
	}
	return DomainGeneral
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func Unbounded() Range {
	return Range{Min: math.Inf(-1), Max: math.Inf(1)}
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min <= r.Max
}

func (r Range) Covers(o Range) bool {
	return r.Min <= o.Min && r.Max >= o.Max
}

func (r Range) Union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

func (r Range) String() string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

type ConditionRecord struct {
	Name            string   `json:"name"`
	Domain          Domain   `json:"domain"`
	Symptoms        []string `json:"symptoms,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
	Severity        Severity `json:"severity"`
	Medications     []string `json:"medications,omitempty"`
	Description     string   `json:"description,omitempty"`
	Duration        string   `json:"duration,omitempty"`
	EmergencySigns  []string `json:"emergency_signs,omitempty"`
}

func (c ConditionRecord) clone() ConditionRecord {
	c.Symptoms = cloneStrings(c.Symptoms)
	c.Characteristics = cloneStrings(c.Characteristics)
	c.Medications = cloneStrings(c.Medications)
	c.EmergencySigns = cloneStrings(c.EmergencySigns)
	return c
}

const (
	StatusLow  = "low"
	StatusHigh = "high"
)

// Band interprets a reading on one side of the normal range.
type Band struct {
	Condition   string   `json:"condition"`
	Medications []string `json:"medications,omitempty"`
}

type LabTestDefinition struct {
	Key         string
	Name        string
	Unit        string
	Description string
	Normal      Range
	// Plausible only rejects OCR artifacts. It covers Normal except at an open
	// normal bound (see openNormal), where it may be tighter.
	Plausible Range
	Patterns  []string
	Low       Band
	High      Band
}

// openNormal is the normal range assumed for missing bounds. A normal bound equal
// to its bound on that side means "no limit".
var openNormal = Range{Min: 0, Max: 1000}

// plausibleCoversNormal reports whether every closed normal bound lies inside Plausible.
func (d LabTestDefinition) plausibleCoversNormal() bool {
	low := d.Plausible.Min <= d.Normal.Min || d.Normal.Min == openNormal.Min
	high := d.Plausible.Max >= d.Normal.Max || d.Normal.Max == openNormal.Max
	return low && high
}

func (d LabTestDefinition) Band(status string) Band {
	if status == StatusLow {
		return d.Low
	}
	return d.High
}

func (d LabTestDefinition) clone() LabTestDefinition {
	d.Patterns = cloneStrings(d.Patterns)
	d.Low.Medications = cloneStrings(d.Low.Medications)
	d.High.Medications = cloneStrings(d.High.Medications)
	return d
}

type SymptomEntry struct {
	Key         string   `json:"key"`
	Conditions  []string `json:"conditions"`
	Advice      string   `json:"advice"`
	Severity    Severity `json:"severity"`
	Medications []string `json:"medications,omitempty"`
}

func (s SymptomEntry) clone() SymptomEntry {
	s.Conditions = cloneStrings(s.Conditions)
	s.Medications = cloneStrings(s.Medications)
	return s
}
