package engine

import (
	"context"
	"io"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/report"
)

type panickingExtractor struct{}

func (panickingExtractor) Extract(context.Context, features.Modality, io.Reader) (features.Record, error) {
	panic("decoder exploded")
}

func TestAnalyzeNeverPanics(t *testing.T) {
	eng := New(knowledge.Default(), Options{Extractor: panickingExtractor{}})

	r := eng.Analyze(context.Background(), Input{Modality: features.ModalitySkin, Payload: []byte("{}")})
	if r.Diagnosis != report.FailedDiagnosis || r.Severity != knowledge.SeverityUnknown {
		t.Fatalf("expected failure report, got %+v", r)
	}
	if r.TreatmentText != "Please try again with a clearer, well-lit image" {
		t.Fatalf("unexpected retry hint: %q", r.TreatmentText)
	}
	if r.Confidence != nil || r.Medications == nil || r.Recommendations == nil {
		t.Fatalf("failure report must be well formed: %+v", r)
	}

	cases := []features.Record{
		{Modality: features.ModalitySkin},
		{Modality: features.ModalityRespiratory},
		{Modality: "xray"},
	}
	for _, rec := range cases {
		got := eng.AnalyzeRecord(rec)
		if got.Error == "" || got.Diagnosis != report.FailedDiagnosis {
			t.Fatalf("%s: expected failure report, got %+v", rec.Modality, got)
		}
	}
}

func TestHighRiskShortCircuit(t *testing.T) {
	eng := New(knowledge.Default(), Options{})
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		f := features.ImageFeatures{
			AvgHue:            rng.Float64() * 180,
			AvgSaturation:     rng.Float64() * 255,
			AvgValue:          1 + rng.Float64()*78,
			StdHue:            rng.Float64() * 60,
			StdSaturation:     rng.Float64() * 100,
			StdValue:          rng.Float64() * 100,
			TextureVariance:   rng.Float64() * 4000,
			TextureComplexity: rng.Float64() * 3000,
			AvgGradient:       rng.Float64() * 60,
			EdgeDensity:       0.16 + rng.Float64()*0.3,
			EdgeStrength:      rng.Float64() * 255,
			ContourArea:       rng.Float64() * 20000,
			ContourPerimeter:  rng.Float64() * 1000,
			Circularity:       rng.Float64() * 0.59,
		}
		r := eng.AnalyzeRecord(features.Record{Modality: features.ModalitySkin, Image: &f})
		if r.Diagnosis != knowledge.Melanoma || r.Severity != "severe" {
			t.Fatalf("iteration %d: expected melanoma/severe, got %s/%s for %+v", i, r.Diagnosis, r.Severity, f)
		}
	}
}

func TestLabSeverityThroughEngine(t *testing.T) {
	eng := New(knowledge.Default(), Options{})

	normal := eng.AnalyzeRecord(features.Record{
		Modality: features.ModalityLab,
		Lab:      &features.LabFeatures{Text: "Glucose: 90 mg/dL\nHemoglobin: 14.2 g/dL"},
	})
	if normal.Severity != "none" || len(normal.AbnormalValues) != 0 || normal.LabValues["glucose"] != 90 {
		t.Fatalf("unexpected normal report: %+v", normal)
	}

	severe := eng.AnalyzeRecord(features.Record{
		Modality: features.ModalityLab,
		Lab: &features.LabFeatures{Values: map[string]float64{
			"Glucose (Fasting)": 150,
			"cholesterol":       260,
			"ldl":               190,
			"triglycerides":     300,
			"hemoglobin":        8,
		}},
	})
	if severe.Severity != "severe" || len(severe.AbnormalValues) != 5 {
		t.Fatalf("expected five findings and severe, got %s with %d", severe.Severity, len(severe.AbnormalValues))
	}
}

func TestDatasetLipidPanelDoesNotDoubleCount(t *testing.T) {
	r := func(lo, hi float64) *knowledge.RawRange { return &knowledge.RawRange{Min: &lo, Max: &hi} }
	base := knowledge.New(knowledge.Dataset{Tests: []knowledge.RawLabTest{
		{Name: "Total Cholesterol", Unit: "mg/dL", NormalRange: r(0, 200)},
		{Name: "HDL Cholesterol", Unit: "mg/dL", NormalRange: r(40, 1000)},
		{Name: "LDL Cholesterol", Unit: "mg/dL", NormalRange: r(0, 100)},
	}})
	eng := New(base, Options{})

	rep := eng.AnalyzeRecord(features.Record{
		Modality: features.ModalityLab,
		Lab:      &features.LabFeatures{Text: "Total Cholesterol: 260\nHDL Cholesterol: 30\nLDL Cholesterol: 190"},
	})
	want := map[string]float64{"cholesterol": 260, "hdl": 30, "ldl": 190}
	if !reflect.DeepEqual(rep.LabValues, want) {
		t.Fatalf("expected %v, got %v", want, rep.LabValues)
	}
	if len(rep.AbnormalValues) != 3 || rep.Severity != "moderate" {
		t.Fatalf("expected three findings and moderate, got %s with %d", rep.Severity, len(rep.AbnormalValues))
	}

	explicit := eng.AnalyzeRecord(features.Record{
		Modality: features.ModalityLab,
		Lab:      &features.LabFeatures{Values: map[string]float64{"Total Cholesterol": 260, "Blood Sugar": 90}},
	})
	if explicit.LabValues["cholesterol"] != 260 || explicit.LabValues["glucose"] != 90 || len(explicit.LabValues) != 2 {
		t.Fatalf("expected display names resolved to built-in keys, got %v", explicit.LabValues)
	}
}

func TestImplausibleValuesAreDropped(t *testing.T) {
	eng := New(knowledge.Default(), Options{})
	r := eng.AnalyzeRecord(features.Record{
		Modality: features.ModalityLab,
		Lab:      &features.LabFeatures{Values: map[string]float64{"glucose": 9000, "hdl": 50}},
	})
	if _, ok := r.LabValues["glucose"]; ok {
		t.Fatalf("expected glucose 9000 to be dropped, got %v", r.LabValues)
	}
	if r.Severity != "none" {
		t.Fatalf("expected none, got %s", r.Severity)
	}
}

func TestLabDemoFallback(t *testing.T) {
	rec := features.Record{Modality: features.ModalityLab, Lab: &features.LabFeatures{Text: "blurry scan"}}

	off := New(knowledge.Default(), Options{})
	r := off.AnalyzeRecord(rec)
	if r.Error != ErrNoLabValues.Error() || r.DemoData {
		t.Fatalf("expected failure without demo fallback, got %+v", r)
	}

	on := New(knowledge.Default(), Options{DemoFallback: true, DemoSeed: 42})
	first := on.AnalyzeRecord(rec)
	if !first.DemoData || len(first.LabValues) != 5 {
		t.Fatalf("expected demo panel, got %+v", first)
	}
	second := on.AnalyzeRecord(rec)
	if !reflect.DeepEqual(first.LabValues, second.LabValues) {
		t.Fatalf("expected reproducible demo panel, got %v and %v", first.LabValues, second.LabValues)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	eng := New(knowledge.Default(), Options{})
	inputs := []Input{
		{Modality: features.ModalityChat, Payload: []byte("I have a headache, nausea and a fever")},
		{Modality: features.ModalityRespiratory, Payload: []byte(`{"rms_energy":0.08,"spectral_centroid":1200,"zero_crossing_rate":0.05}`)},
		{Modality: features.ModalitySkin, Payload: []byte(`{"avg_hue":10,"avg_saturation":70,"avg_value":200,"std_saturation":45,"edge_density":0.12,"texture_variance":1500,"contour_area":1000,"circularity":0.8}`)},
	}
	for _, in := range inputs {
		a := eng.Analyze(context.Background(), in)
		b := eng.Analyze(context.Background(), in)
		if a.Failed() {
			t.Fatalf("%s: unexpected failure: %s", in.Modality, a.Error)
		}
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: expected identical reports", in.Modality)
		}
	}
}

func TestRespiratoryPayload(t *testing.T) {
	eng := New(knowledge.Default(), Options{})
	r := eng.Analyze(context.Background(), Input{
		Modality: features.ModalityRespiratory,
		Payload:  []byte(`{"rms_energy":0.08,"spectral_centroid":1200,"zero_crossing_rate":0.05}`),
	})
	if r.Diagnosis != knowledge.Bronchitis || r.Severity != "moderate" {
		t.Fatalf("expected bronchitis/moderate, got %s/%s", r.Diagnosis, r.Severity)
	}
	if r.AudioFeatures == nil || r.AudioFeatures.RMSEnergy != 0.08 {
		t.Fatalf("expected audio features echo, got %+v", r.AudioFeatures)
	}
}

func TestChatEmergency(t *testing.T) {
	eng := New(knowledge.Default(), Options{})
	r := eng.Analyze(context.Background(), Input{Modality: features.ModalityChat, Payload: []byte("Hi, I think I'm having a heart attack")})
	if r.Severity != "severe" || r.Intent != "emergency" {
		t.Fatalf("expected emergency, got %+v", r)
	}
	if !strings.Contains(r.TreatmentText, "911") {
		t.Fatalf("expected emergency reply, got %q", r.TreatmentText)
	}
}
