package knowledge

import (
	"reflect"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestDefaultBaseContents(t *testing.T) {
	base := Default()

	stats := base.Stats()
	if stats.Conditions != len(SkinClasses)+len(RespiratoryClasses) {
		t.Fatalf("expected %d built-in conditions, got %d", len(SkinClasses)+len(RespiratoryClasses), stats.Conditions)
	}
	if stats.LabTests != 12 {
		t.Fatalf("expected 12 built-in lab tests, got %d", stats.LabTests)
	}
	if len(base.Warnings()) != 0 {
		t.Fatalf("expected no warnings, got %v", base.Warnings())
	}

	skin := base.Conditions(DomainSkin)
	if len(skin) != len(SkinClasses) || skin[0].Name != HealthySkin {
		t.Fatalf("unexpected skin condition order: %v", skin)
	}

	glucose, ok := base.LabTest("Glucose")
	if !ok || glucose.Normal != (Range{70, 100}) {
		t.Fatalf("unexpected glucose definition %+v", glucose)
	}
	if !glucose.Plausible.Covers(glucose.Normal) {
		t.Fatal("expected plausible range to cover normal range")
	}
}

func TestMergeKeepsEveryNameOnce(t *testing.T) {
	ds := Dataset{
		Conditions: []RawCondition{
			{Name: "acne", Domain: "skin", Medications: []string{"Adapalene 0.1% gel", "Benzoyl peroxide 5% gel"}, Description: "Clogged pores", Severity: "moderate"},
			{Name: "Keratosis Pilaris", Domain: "skin", Symptoms: []string{"Rough bumps"}},
			{Name: "", Symptoms: []string{"orphan"}},
		},
		Diseases: []RawCondition{
			{Name: "Common Cold", Symptoms: []string{"Runny Nose", "sneezing"}, Medications: []string{"Rest"}, Duration: "7-10 days"},
		},
	}
	base := New(ds)

	seen := make(map[string]int)
	for _, c := range base.Conditions("") {
		seen[strings.ToLower(c.Name)]++
	}
	for name, count := range seen {
		if count != 1 {
			t.Fatalf("condition %q appears %d times", name, count)
		}
	}
	for _, name := range append(append([]string{}, SkinClasses...), "Keratosis Pilaris", "Common Cold") {
		if seen[strings.ToLower(name)] != 1 {
			t.Fatalf("expected %q in merged base", name)
		}
	}

	acne, _ := base.Condition("ACNE")
	if acne.Name != Acne {
		t.Fatalf("expected built-in display name, got %q", acne.Name)
	}
	if acne.Description != "Clogged pores" || acne.Severity != SeverityModerate {
		t.Fatalf("expected dataset descriptive fields to win, got %+v", acne)
	}
	if acne.Medications[0] != "Adapalene 0.1% gel" {
		t.Fatalf("expected dataset medications first, got %v", acne.Medications)
	}
	count := 0
	for _, m := range acne.Medications {
		if m == "Benzoyl peroxide 5% gel" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected deduplicated medications, got %v", acne.Medications)
	}

	all := base.Conditions("")
	if all[0].Name != Acne || all[1].Name != "Keratosis Pilaris" {
		t.Fatalf("expected dataset entries first, got %s, %s", all[0].Name, all[1].Name)
	}
	if len(base.Warnings()) != 1 {
		t.Fatalf("expected one warning for the unnamed entry, got %v", base.Warnings())
	}
}

func TestSymptomIndex(t *testing.T) {
	ds := Dataset{
		Diseases: []RawCondition{
			{Name: "Influenza", Symptoms: []string{"Fever", "Muscle  Pain"}, Medications: []string{"Oseltamivir 75mg"}, Severity: "moderate"},
			{Name: "Common Cold", Symptoms: []string{"fever", "runny nose"}, Medications: []string{"Rest"}},
		},
	}
	base := New(ds)

	fever, ok := base.Symptom("fever")
	if !ok {
		t.Fatal("expected fever in index")
	}
	if fever.Conditions[0] != "Influenza" || fever.Conditions[1] != "Common Cold" {
		t.Fatalf("expected contributing conditions in merge order, got %v", fever.Conditions)
	}
	if !strings.Contains(fever.Advice, "Common Cold") {
		t.Fatalf("expected advice from the last contributor, got %q", fever.Advice)
	}
	if fever.Severity != SeverityModerate {
		t.Fatalf("expected max contributor severity, got %s", fever.Severity)
	}
	hasDefaultMed := false
	for _, m := range fever.Medications {
		if m == "Acetaminophen 500mg" {
			hasDefaultMed = true
		}
	}
	if !hasDefaultMed {
		t.Fatalf("expected built-in medications unioned in, got %v", fever.Medications)
	}

	if _, ok := base.Symptom("muscle_pain"); !ok {
		t.Fatal("expected whitespace-collapsed key muscle_pain")
	}

	for _, key := range base.SymptomKeys() {
		entry, _ := base.Symptom(key)
		if len(entry.Conditions) == 0 {
			t.Fatalf("symptom %q has no conditions", key)
		}
		if key != NormalizeKey(key) {
			t.Fatalf("symptom key %q is not normalized", key)
		}
	}
}

func TestLabMergeWidensPlausibility(t *testing.T) {
	ds := Dataset{
		Tests: []RawLabTest{
			{Name: "Glucose (Fasting)", NormalRange: &RawRange{Min: floatPtr(65), Max: floatPtr(600)}},
			{Name: "Vitamin D", Unit: "ng/mL", NormalRange: &RawRange{Min: floatPtr(30), Max: floatPtr(100)}},
			{Name: "Ferritin", NormalRange: &RawRange{Min: floatPtr(300), Max: floatPtr(20)}},
		},
	}
	base := New(ds)

	glucose, _ := base.LabTest("glucose")
	if glucose.Normal != (Range{65, 600}) {
		t.Fatalf("expected dataset normal range, got %v", glucose.Normal)
	}
	if !glucose.Plausible.Covers(glucose.Normal) {
		t.Fatalf("expected plausibility widened to %v, got %v", glucose.Normal, glucose.Plausible)
	}

	vitd, ok := base.LabTest("vitamin_d")
	if !ok {
		t.Fatal("expected dataset-only test to be added")
	}
	if len(vitd.Patterns) != 1 || !strings.HasPrefix(vitd.Patterns[0], `vitamin\s+d`) {
		t.Fatalf("expected synthesized pattern, got %v", vitd.Patterns)
	}
	if vitd.High.Condition != "High Vitamin D" {
		t.Fatalf("expected derived band label, got %q", vitd.High.Condition)
	}

	if _, ok := base.LabTest("ferritin"); ok {
		t.Fatal("expected inverted range to be rejected")
	}
	if len(base.Warnings()) == 0 {
		t.Fatal("expected a warning for the inverted range")
	}
}

func TestLabMergeResolvesBuiltInNames(t *testing.T) {
	builtIn := len(Default().LabTests())
	base := New(Dataset{Tests: []RawLabTest{
		{Name: "Total Cholesterol", Unit: "mg/dL", NormalRange: &RawRange{Min: floatPtr(0), Max: floatPtr(200)},
			Medications: map[string][]string{StatusHigh: {"Atorvastatin"}}},
		{Name: "HDL Cholesterol", Unit: "mg/dL", NormalRange: &RawRange{Min: floatPtr(40), Max: floatPtr(1000)}},
		{Name: "LDL Cholesterol", Unit: "mg/dL", NormalRange: &RawRange{Min: floatPtr(0), Max: floatPtr(100)}},
		{Name: "Blood Sugar", Description: "Fasting plasma glucose"},
	}})

	if got := len(base.LabTests()); got != builtIn {
		t.Fatalf("expected %d tests after merge, got %d", builtIn, got)
	}
	for _, key := range []string{"total_cholesterol", "hdl_cholesterol", "ldl_cholesterol", "blood_sugar"} {
		if _, ok := base.LabTest(key); ok {
			t.Fatalf("expected %s to merge into a built-in test", key)
		}
	}
	chol, _ := base.LabTest("cholesterol")
	if chol.High.Medications[0] != "Atorvastatin" {
		t.Fatalf("expected dataset medications merged into cholesterol, got %v", chol.High.Medications)
	}
	glucose, _ := base.LabTest("glucose")
	if glucose.Description != "Fasting plasma glucose" {
		t.Fatalf("expected pattern-resolved description on glucose, got %q", glucose.Description)
	}
	if base.ResolveLabKey("HDL Cholesterol") != "hdl" || base.ResolveLabKey("Vitamin D") != "vitamin_d" {
		t.Fatal("unexpected lab key resolution")
	}
}

func TestLabPlausibilityCoversClosedNormalBounds(t *testing.T) {
	tighter := map[string]bool{}
	for _, def := range Default().LabTests() {
		if !def.plausibleCoversNormal() {
			t.Fatalf("%s: plausible %v does not cover normal %v", def.Key, def.Plausible, def.Normal)
		}
		if !def.Plausible.Covers(def.Normal) {
			tighter[def.Key] = true
		}
	}
	// Open-ended normal ranges keep their tighter artifact filters.
	want := map[string]bool{"cholesterol": true, "hdl": true, "ldl": true, "triglycerides": true}
	if !reflect.DeepEqual(tighter, want) {
		t.Fatalf("expected tighter filters only on open-ended tests, got %v", tighter)
	}

	base := New(Dataset{Tests: []RawLabTest{{Name: "HDL", Unit: "mg/dL"}}})
	hdl, _ := base.LabTest("hdl")
	if hdl.Plausible != (Range{10, 200}) || hdl.Normal != (Range{40, 1000}) {
		t.Fatalf("expected unit-only entry to keep ranges, got normal %v plausible %v", hdl.Normal, hdl.Plausible)
	}
	if len(base.Warnings()) != 0 {
		t.Fatalf("expected no warnings, got %v", base.Warnings())
	}
}

func TestLabMergePartialNormalRange(t *testing.T) {
	base := New(Dataset{Tests: []RawLabTest{
		{Name: "Glucose", NormalRange: &RawRange{Max: floatPtr(120)}},
		{Name: "Vitamin B12", NormalRange: &RawRange{Min: floatPtr(200)}},
	}})
	glucose, _ := base.LabTest("glucose")
	if glucose.Normal != (Range{70, 120}) {
		t.Fatalf("expected missing min to keep 70, got %v", glucose.Normal)
	}
	b12, ok := base.LabTest("vitamin_b12")
	if !ok || b12.Normal != (Range{200, 1000}) {
		t.Fatalf("expected missing max to default to 1000, got %v", b12.Normal)
	}
}

func TestDosageLookup(t *testing.T) {
	base := Default()
	if d, ok := base.Dosage("Ibuprofen 400mg"); !ok || d.Dose != "400mg per dose" {
		t.Fatalf("expected exact dosage match, got %+v", d)
	}
	if d, ok := base.Dosage("Acetaminophen for pain"); !ok || d.Dose != "500-1000mg per dose" {
		t.Fatalf("expected partial dosage match, got %+v", d)
	}
	if _, ok := base.Dosage("Ginger tea"); ok {
		t.Fatal("expected no dosage for ginger tea")
	}
	if base.Timeline("") != NoConditionTimeline {
		t.Fatal("expected generic timeline for no condition")
	}
	if base.Timeline("Pneumonia").Recovery != "3-4 weeks" {
		t.Fatal("expected pneumonia timeline")
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(SeverityNone < SeverityMild && SeverityMild < SeverityModerate && SeverityModerate < SeveritySevere) {
		t.Fatal("severity ordinal out of order")
	}
	if s, ok := ParseSeverity("HIGH"); !ok || s != SeveritySevere {
		t.Fatalf("expected high to parse as severe, got %s", s)
	}
	if Severity(9).String() != SeverityUnknown {
		t.Fatal("expected out-of-range severity to print unknown")
	}
}
