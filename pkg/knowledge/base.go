package knowledge

import (
	"fmt"
	"regexp"
	"strings"
)

// Base is the merged, read-only knowledge used by every scorer. Build it once with New
// and share the pointer; no method mutates it.
type Base struct {
	conditions   map[string]ConditionRecord
	order        []string
	labTests     map[string]LabTestDefinition
	labOrder     []string
	symptoms     map[string]SymptomEntry
	symptomOrder []string
	dosages      []dosageEntry
	timelines    map[string]Timeline
	warnings     []string
}

type Stats struct {
	Conditions int `json:"conditions"`
	LabTests   int `json:"lab_tests"`
	Symptoms   int `json:"symptoms"`
	Warnings   int `json:"warnings"`
}

// Default returns the built-in knowledge with no external dataset.
func Default() *Base {
	return New(Dataset{})
}

func New(ds Dataset) *Base {
	b := &Base{
		conditions: make(map[string]ConditionRecord),
		labTests:   make(map[string]LabTestDefinition),
		symptoms:   make(map[string]SymptomEntry),
		dosages:    defaultDosages(),
		timelines:  defaultTimelines(),
	}
	b.mergeConditions(append(append([]RawCondition{}, ds.Conditions...), ds.Diseases...))
	b.mergeLabTests(ds.Tests)
	b.buildSymptomIndex()
	return b
}

func (b *Base) warnf(format string, args ...interface{}) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

// mergeConditions places dataset conditions first, in file order, then the built-ins
// the dataset did not mention.
func (b *Base) mergeConditions(external []RawCondition) {
	defaults := defaultConditions()
	byKey := make(map[string]ConditionRecord, len(defaults))
	for _, def := range defaults {
		byKey[NormalizeText(def.Name)] = def
	}

	for i, raw := range external {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			b.warnf("condition entry %d skipped: missing name", i)
			continue
		}
		key := NormalizeText(name)
		patch, hasSeverity := b.conditionFromRaw(name, raw)

		if existing, ok := b.conditions[key]; ok {
			b.conditions[key] = overlay(existing, patch, hasSeverity)
			continue
		}
		if def, ok := byKey[key]; ok {
			b.conditions[key] = overlay(def.clone(), patch, hasSeverity)
		} else {
			if !hasSeverity {
				patch.Severity = SeverityMild
			}
			if patch.Domain == "" {
				patch.Domain = DomainGeneral
			}
			b.conditions[key] = patch
		}
		b.order = append(b.order, key)
	}

	for _, def := range defaults {
		key := NormalizeText(def.Name)
		if _, ok := b.conditions[key]; ok {
			continue
		}
		b.conditions[key] = def.clone()
		b.order = append(b.order, key)
	}
}

func (b *Base) conditionFromRaw(name string, raw RawCondition) (ConditionRecord, bool) {
	rec := ConditionRecord{
		Name:            name,
		Domain:          parseDomain(raw.Domain),
		Symptoms:        unionStrings(raw.Symptoms),
		Characteristics: unionStrings(raw.Characteristics),
		Medications:     unionStrings(raw.Medications),
		Description:     strings.TrimSpace(raw.Description),
		Duration:        strings.TrimSpace(raw.Duration),
		EmergencySigns:  unionStrings(raw.EmergencySigns),
	}
	if rec.Duration == "" {
		rec.Duration = strings.TrimSpace(raw.TreatmentDuration)
	}

	hasSeverity := false
	if raw.Severity != "" {
		if sev, ok := ParseSeverity(raw.Severity); ok {
			rec.Severity = sev
			hasSeverity = true
		} else {
			b.warnf("condition %q: unknown severity %q ignored", name, raw.Severity)
		}
	}
	return rec, hasSeverity
}

// overlay applies dataset fields over a base record. The base display name and domain
// are kept; descriptive fields win when non-empty; lists are unioned dataset first.
func overlay(base, patch ConditionRecord, hasSeverity bool) ConditionRecord {
	out := base.clone()
	if patch.Description != "" {
		out.Description = patch.Description
	}
	if patch.Duration != "" {
		out.Duration = patch.Duration
	}
	if hasSeverity {
		out.Severity = patch.Severity
	}
	if out.Domain == "" {
		out.Domain = patch.Domain
	}
	out.Symptoms = unionStrings(patch.Symptoms, base.Symptoms)
	out.Characteristics = unionStrings(patch.Characteristics, base.Characteristics)
	out.Medications = unionStrings(patch.Medications, base.Medications)
	out.EmergencySigns = unionStrings(patch.EmergencySigns, base.EmergencySigns)
	return out
}

// mergeLabTests keeps built-in test order and appends dataset-only tests after it.
func (b *Base) mergeLabTests(external []RawLabTest) {
	for _, def := range defaultLabTests() {
		b.labTests[def.Key] = def.clone()
		b.labOrder = append(b.labOrder, def.Key)
	}

	for i, raw := range external {
		name := strings.TrimSpace(raw.Name)
		key, known := b.resolveLabKey(name)
		if key == "" {
			b.warnf("lab test entry %d skipped: missing name", i)
			continue
		}

		def := b.labTests[key]
		if !known {
			if raw.NormalRange == nil {
				b.warnf("lab test %q skipped: missing normal_range", name)
				continue
			}
			def = LabTestDefinition{
				Key:       key,
				Name:      name,
				Normal:    openNormal,
				Plausible: Unbounded(),
				Patterns:  []string{synthesizePattern(key)},
			}
		}

		if raw.NormalRange != nil {
			// Missing bounds keep the current range, which for new tests is openNormal.
			normal := raw.NormalRange.resolve(def.Normal)
			if !normal.Valid() {
				b.warnf("lab test %q: invalid normal range %v-%v rejected", name, normal.Min, normal.Max)
				if !known {
					continue
				}
			} else {
				def.Normal = normal
			}
		}
		if raw.PlausibleRange != nil {
			plausible := raw.PlausibleRange.resolve(def.Plausible)
			if plausible.Valid() {
				def.Plausible = plausible
			} else {
				b.warnf("lab test %q: invalid plausible range rejected", name)
			}
		}

		if u := strings.TrimSpace(raw.Unit); u != "" {
			def.Unit = u
		}
		if d := strings.TrimSpace(raw.Description); d != "" {
			def.Description = d
		}
		for _, alias := range raw.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" {
				def.Patterns = append(def.Patterns, synthesizePattern(alias))
			}
		}
		if c := strings.TrimSpace(raw.Conditions[StatusLow]); c != "" {
			def.Low.Condition = c
		}
		if c := strings.TrimSpace(raw.Conditions[StatusHigh]); c != "" {
			def.High.Condition = c
		}
		def.Low.Medications = unionStrings(raw.Medications[StatusLow], def.Low.Medications)
		def.High.Medications = unionStrings(raw.Medications[StatusHigh], def.High.Medications)

		b.labTests[key] = def
		if !known {
			b.labOrder = append(b.labOrder, key)
		}
	}

	for _, key := range b.labOrder {
		def := b.labTests[key]
		if !def.plausibleCoversNormal() {
			b.warnf("lab test %q: plausible range %s widened to cover normal range %s", def.Name, def.Plausible, def.Normal)
			def.Plausible = def.Plausible.Union(def.Normal)
		}
		if def.Low.Condition == "" {
			def.Low.Condition = "Low " + def.Name
		}
		if def.High.Condition == "" {
			def.High.Condition = "High " + def.Name
		}
		b.labTests[key] = def
	}
}

// ResolveLabKey maps a test name to the key of the known test it names, or to
// LabKey(name) when no test matches.
func (b *Base) ResolveLabKey(name string) string {
	key, _ := b.resolveLabKey(name)
	return key
}

// resolveLabKey maps a dataset name onto a built-in test by key, display name or
// extraction pattern. Unmatched names get a fresh key and known is false.
func (b *Base) resolveLabKey(name string) (key string, known bool) {
	key = LabKey(name)
	if key == "" {
		return "", false
	}
	if _, ok := b.labTests[key]; ok {
		return key, true
	}

	for _, k := range b.labOrder {
		if LabKey(b.labTests[k].Name) == key {
			return k, true
		}
	}

	// A name the parser would read as the test, e.g. "Blood Sugar" for glucose.
	sample := DisplayKey(key) + ": 1"
	for _, k := range b.labOrder {
		for _, pattern := range b.labTests[k].Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			if loc := re.FindStringIndex(sample); loc != nil && loc[0] == 0 && loc[1] == len(sample) {
				return k, true
			}
		}
	}
	return key, false
}

func (r *RawRange) resolve(fallback Range) Range {
	out := fallback
	if r.Min != nil {
		out.Min = *r.Min
	}
	if r.Max != nil {
		out.Max = *r.Max
	}
	return out
}

// synthesizePattern builds `<name>[:\s]+(\d+\.?\d*)` for tests known only by name.
func synthesizePattern(name string) string {
	words := strings.Fields(strings.ReplaceAll(NormalizeText(name), "_", " "))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`) + `[:\s]+(\d+\.?\d*)`
}

func (b *Base) buildSymptomIndex() {
	for _, key := range b.order {
		c := b.conditions[key]
		for _, s := range c.Symptoms {
			sk := NormalizeKey(s)
			if sk == "" {
				continue
			}
			entry, ok := b.symptoms[sk]
			if !ok {
				entry = SymptomEntry{Key: sk, Severity: c.Severity}
				b.symptomOrder = append(b.symptomOrder, sk)
			}
			entry.Conditions = unionStrings(entry.Conditions, []string{c.Name})
			entry.Medications = unionStrings(entry.Medications, c.Medications)
			entry.Severity = MaxSeverity(entry.Severity, c.Severity)
			// TODO: advice is last-write-wins while medications accumulate; pick one
			// merge policy once clinical review decides how shared symptoms should read.
			entry.Advice = conditionAdvice(c)
			b.symptoms[sk] = entry
		}
	}

	for _, def := range defaultSymptoms() {
		sk := NormalizeKey(def.Key)
		entry, ok := b.symptoms[sk]
		if !ok {
			def.Key = sk
			b.symptoms[sk] = def
			b.symptomOrder = append(b.symptomOrder, sk)
			continue
		}
		entry.Conditions = unionStrings(entry.Conditions, def.Conditions)
		entry.Medications = unionStrings(entry.Medications, def.Medications)
		entry.Severity = MaxSeverity(entry.Severity, def.Severity)
		b.symptoms[sk] = entry
	}
}

func conditionAdvice(c ConditionRecord) string {
	meds := c.Medications
	if len(meds) > 3 {
		meds = meds[:3]
	}
	duration := c.Duration
	if duration == "" {
		duration = "varies"
	}
	return fmt.Sprintf("Possible %s. Recommended: %s. Duration: %s.", c.Name, strings.Join(meds, ", "), duration)
}

// Condition looks a record up by case-insensitive name.
func (b *Base) Condition(name string) (ConditionRecord, bool) {
	c, ok := b.conditions[NormalizeText(name)]
	if !ok {
		return ConditionRecord{}, false
	}
	return c.clone(), true
}

// Conditions lists records in merge order. An empty domain lists every record.
func (b *Base) Conditions(domain Domain) []ConditionRecord {
	out := make([]ConditionRecord, 0, len(b.order))
	for _, key := range b.order {
		c := b.conditions[key]
		if domain != "" && c.Domain != domain {
			continue
		}
		out = append(out, c.clone())
	}
	return out
}

func (b *Base) LabTest(key string) (LabTestDefinition, bool) {
	d, ok := b.labTests[LabKey(key)]
	if !ok {
		return LabTestDefinition{}, false
	}
	return d.clone(), true
}

// LabTests lists definitions in parse order.
func (b *Base) LabTests() []LabTestDefinition {
	out := make([]LabTestDefinition, 0, len(b.labOrder))
	for _, key := range b.labOrder {
		out = append(out, b.labTests[key].clone())
	}
	return out
}

func (b *Base) Symptom(key string) (SymptomEntry, bool) {
	s, ok := b.symptoms[NormalizeKey(key)]
	if !ok {
		return SymptomEntry{}, false
	}
	return s.clone(), true
}

// SymptomKeys lists index keys in insertion order.
func (b *Base) SymptomKeys() []string {
	return cloneStrings(b.symptomOrder)
}

// Dosage returns guidance for a medication, trying an exact name then a containment match.
func (b *Base) Dosage(medication string) (Dosage, bool) {
	for _, d := range b.dosages {
		if d.name == medication {
			return d.Dosage, true
		}
	}
	med := strings.ToLower(strings.TrimSpace(medication))
	if med == "" {
		return Dosage{}, false
	}
	for _, d := range b.dosages {
		name := strings.ToLower(d.name)
		if strings.Contains(med, name) || strings.Contains(name, med) {
			return d.Dosage, true
		}
	}
	return Dosage{}, false
}

// Timeline returns the expected course for a condition, or the generic course.
func (b *Base) Timeline(condition string) Timeline {
	if condition == "" {
		return NoConditionTimeline
	}
	if t, ok := b.timelines[NormalizeText(condition)]; ok {
		return t
	}
	return defaultTimeline
}

func (b *Base) Warnings() []string {
	return cloneStrings(b.warnings)
}

func (b *Base) Stats() Stats {
	return Stats{
		Conditions: len(b.order),
		LabTests:   len(b.labOrder),
		Symptoms:   len(b.symptomOrder),
		Warnings:   len(b.warnings),
	}
}
