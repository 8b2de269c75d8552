package labparser

import (
	"reflect"
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseSingleValue(t *testing.T) {
	p := New(knowledge.Default())

	got := p.Parse("Glucose: 95")
	if !reflect.DeepEqual(got, map[string]float64{"glucose": 95}) {
		t.Fatalf("expected {glucose:95}, got %v", got)
	}
	if got := p.Parse("Glucose: 9999"); len(got) != 0 {
		t.Fatalf("expected implausible value to be dropped, got %v", got)
	}
	if got := p.Parse(""); len(got) != 0 {
		t.Fatalf("expected empty text to yield nothing, got %v", got)
	}
}

func TestParseReport(t *testing.T) {
	p := New(knowledge.Default())
	text := `PATIENT LAB REPORT
Fasting Glucose: 126 mg/dL
Total Cholesterol: 245
HDL Cholesterol: 38
Hemoglobin 10.8 g/dL
WBC: 12500`

	got := p.Parse(text)
	want := map[string]float64{
		"glucose":     126,
		"cholesterol": 245,
		"hdl":         38,
		"hemoglobin":  10.8,
		"wbc":         12500,
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("expected %s=%v, got %v (all: %v)", k, v, got[k], got)
		}
	}
}

func TestParseFallsThroughImplausibleAlternative(t *testing.T) {
	p := New(knowledge.Default())
	got := p.Parse("glucose: 4000\nblood sugar: 110")
	if got["glucose"] != 110 {
		t.Fatalf("expected next alternative to supply 110, got %v", got)
	}
}

func TestParseValuesAlwaysPlausible(t *testing.T) {
	base := knowledge.Default()
	p := New(base)
	inputs := []string{
		"glucose: 19 chol 501 hdl: 9 ldl 301 tg: 1001 hb: 4 wbc 999 rbc 11 plt 49999 cr 16 alt 501 ast 0",
		"glucose: 20 cholesterol: 500 hdl 200 ldl 10 hemoglobin 25 creatinine 0.1",
		"random text with no values at all",
	}
	for _, in := range inputs {
		for key, v := range p.Parse(in) {
			def, _ := base.LabTest(key)
			if v < def.Plausible.Min || v > def.Plausible.Max {
				t.Fatalf("%s=%v outside plausibility %v", key, v, def.Plausible)
			}
		}
	}
}

func TestDatasetOnlyTestIsParsed(t *testing.T) {
	base := knowledge.New(knowledge.Dataset{Tests: []knowledge.RawLabTest{
		{Name: "Vitamin D", NormalRange: &knowledge.RawRange{Min: floatPtr(30), Max: floatPtr(100)}, Aliases: []string{"25-OH D"}},
	}})
	p := New(base)
	if got := p.Parse("Vitamin D: 18.5 ng/mL"); got["vitamin_d"] != 18.5 {
		t.Fatalf("expected synthesized pattern to match, got %v", got)
	}
	if got := p.Parse("25-oh d 42"); got["vitamin_d"] != 42 {
		t.Fatalf("expected alias pattern to match, got %v", got)
	}
	if !p.Plausible("unknown_test", -5) {
		t.Fatal("expected unknown tests to be accepted")
	}
}

func TestDemoValuesDeterministic(t *testing.T) {
	a := DemoValues(DemoSeed(42, "blurry scan"))
	b := DemoValues(DemoSeed(42, "blurry scan"))
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical demo panels, got %v and %v", a, b)
	}
	for seed := int64(0); seed < 50; seed++ {
		v := DemoValues(seed)
		if v["glucose"] < 85 || v["glucose"] > 180 {
			t.Fatalf("glucose out of range: %v", v["glucose"])
		}
		if v["hemoglobin"] < 11.5 || v["hemoglobin"] > 16.5 {
			t.Fatalf("hemoglobin out of range: %v", v["hemoglobin"])
		}
		if v["hdl"] < 35 || v["hdl"] > 65 {
			t.Fatalf("hdl out of range: %v", v["hdl"])
		}
	}
}
