package severity

import (
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/scoring"
)

func TestImageSeverity(t *testing.T) {
	book := rules.Default()
	base := book.Image.Baseline

	if sev, _ := Image(book.ImageSeverity, base, knowledge.HealthySkin, features.ImageFeatures{StdSaturation: 90}); sev != knowledge.SeverityNone {
		t.Fatalf("expected none for baseline, got %s", sev)
	}
	if sev, _ := Image(book.ImageSeverity, base, knowledge.Melanoma, features.ImageFeatures{ContourArea: 1}); sev != knowledge.SeveritySevere {
		t.Fatalf("expected melanoma to be severe regardless of features, got %s", sev)
	}

	cases := []struct {
		condition string
		f         features.ImageFeatures
		want      knowledge.Severity
		points    int
	}{
		{knowledge.Acne, features.ImageFeatures{ContourArea: 100}, knowledge.SeverityMild, 1},
		{knowledge.Eczema, features.ImageFeatures{StdSaturation: 55, ContourArea: 100}, knowledge.SeverityModerate, 3},
		{knowledge.Psoriasis, features.ImageFeatures{StdSaturation: 80, EdgeDensity: 0.2, ContourArea: 6000, TextureVariance: 2500}, knowledge.SeveritySevere, 8},
		{knowledge.Rosacea, features.ImageFeatures{EdgeDensity: 0.11, ContourArea: 7000}, knowledge.SeverityModerate, 3},
	}
	for _, tc := range cases {
		sev, points := Image(book.ImageSeverity, base, tc.condition, tc.f)
		if sev != tc.want || points != tc.points {
			t.Fatalf("%s: expected %s/%d, got %s/%d", tc.condition, tc.want, tc.points, sev, points)
		}
	}
}

func TestLabSeverityCounts(t *testing.T) {
	r := rules.Default().LabSeverity
	want := []knowledge.Severity{
		knowledge.SeverityNone,
		knowledge.SeverityMild, knowledge.SeverityMild,
		knowledge.SeverityModerate, knowledge.SeverityModerate,
		knowledge.SeveritySevere, knowledge.SeveritySevere,
	}
	for n, expected := range want {
		findings := make([]scoring.Finding, n)
		if got := Lab(r, findings); got != expected {
			t.Fatalf("%d findings: expected %s, got %s", n, expected, got)
		}
	}
}

func TestAudioSeverity(t *testing.T) {
	book := rules.Default()
	cases := map[string]knowledge.Severity{
		knowledge.HealthyBreathing: knowledge.SeverityNone,
		knowledge.Asthma:           knowledge.SeverityModerate,
		knowledge.Bronchitis:       knowledge.SeverityModerate,
		knowledge.WhoopingCough:    knowledge.SeverityModerate,
		knowledge.Pneumonia:        knowledge.SeveritySevere,
		knowledge.COPD:             knowledge.SeveritySevere,
	}
	for condition, want := range cases {
		if got := Audio(book.AudioSeverity, book.Audio.Baseline, condition); got != want {
			t.Fatalf("%s: expected %s, got %s", condition, want, got)
		}
	}
}

func TestSymptomSeverityIsMax(t *testing.T) {
	matches := []scoring.SymptomMatch{
		{Key: "cough", Entry: knowledge.SymptomEntry{Severity: knowledge.SeverityMild}},
		{Key: "chest_pain", Entry: knowledge.SymptomEntry{Severity: knowledge.SeveritySevere}},
		{Key: "nausea", Entry: knowledge.SymptomEntry{Severity: knowledge.SeverityMild}},
	}
	if got := Symptoms(matches, false); got != knowledge.SeveritySevere {
		t.Fatalf("expected severe, got %s", got)
	}
	if got := Symptoms(nil, false); got != knowledge.SeverityNone {
		t.Fatalf("expected none without symptoms, got %s", got)
	}
	if got := Symptoms(nil, true); got != knowledge.SeveritySevere {
		t.Fatalf("expected severe for emergency, got %s", got)
	}
}
