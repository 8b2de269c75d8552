package scoring

import (
	"math/rand"
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
)

func TestScoreImageBaseline(t *testing.T) {
	book := rules.Default()
	// Bright, smooth, uniform and symmetric: every class stays under the ceiling.
	f := features.ImageFeatures{AvgHue: 100, AvgSaturation: 20, AvgValue: 200, StdHue: 30, StdSaturation: 20, TextureVariance: 300, EdgeDensity: 0.02, Circularity: 0.5, ContourArea: 1000}
	res := ScoreImage(book.Image, f)
	if res.Winner.Condition != knowledge.HealthySkin {
		t.Fatalf("expected baseline, got %+v", res.Winner)
	}
	if res.Winner.Confidence != 0.95 {
		t.Fatalf("expected confidence clamp to 0.95, got %v", res.Winner.Confidence)
	}
}

func TestScoreImageMelanoma(t *testing.T) {
	book := rules.Default()
	f := features.ImageFeatures{AvgValue: 260, StdHue: 40, StdSaturation: 30, EdgeDensity: 0.2, Circularity: 0.4, ContourArea: 9000, AvgHue: 100}
	// avg_value >= 80 so the darkness rule misses; remaining melanoma rules sum to 0.90.
	res := ScoreImage(book.Image, f)
	if res.Winner.Condition != knowledge.Melanoma {
		t.Fatalf("expected melanoma, got %+v", res.Winner)
	}
	if res.QualityFactor != 1 {
		t.Fatalf("expected full quality factor, got %v", res.QualityFactor)
	}
	if res.Candidates[0].Raw != 0 {
		t.Fatal("expected no baseline award when a class reaches the ceiling")
	}
}

func TestScoreImageZeroBrightnessFallsBackToHealthySkin(t *testing.T) {
	book := rules.Default()
	// Dark irregular lesion: every melanoma rule fires, but avg_value 0 zeroes the quality factor.
	f := features.ImageFeatures{AvgValue: 0, StdHue: 40, StdSaturation: 30, EdgeDensity: 0.2, Circularity: 0.4, ContourArea: 9000, AvgHue: 100}
	res := ScoreImage(book.Image, f)
	if res.QualityFactor != 0 {
		t.Fatalf("expected zero quality factor, got %v", res.QualityFactor)
	}
	if res.Winner.Condition != knowledge.HealthySkin {
		t.Fatalf("expected healthy skin at avg_value 0, got %+v", res.Winner)
	}
	for _, c := range res.Candidates[1:] {
		if c.Adjusted != 0 {
			t.Fatalf("expected %s adjusted score 0, got %v", c.Condition, c.Adjusted)
		}
	}
}

func TestScoreImageQualityScalesNonBaseline(t *testing.T) {
	book := rules.Default()
	f := features.ImageFeatures{AvgValue: 51, AvgHue: 25, EdgeDensity: 0.11, Circularity: 0.8, StdSaturation: 10, TextureVariance: 100}
	res := ScoreImage(book.Image, f)
	fungal := res.Candidates[7]
	if fungal.Condition != knowledge.FungalInfection {
		t.Fatalf("unexpected candidate order %+v", res.Candidates)
	}
	if fungal.Adjusted >= fungal.Raw {
		t.Fatalf("expected quality factor to reduce score, raw=%v adjusted=%v", fungal.Raw, fungal.Adjusted)
	}
}

func TestScoreImageConfidenceBounds(t *testing.T) {
	book := rules.Default()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		f := features.ImageFeatures{
			AvgHue:            r.Float64() * 180,
			AvgSaturation:     r.Float64() * 255,
			AvgValue:          r.Float64() * 255,
			StdHue:            r.Float64() * 60,
			StdSaturation:     r.Float64() * 100,
			TextureVariance:   r.Float64() * 4000,
			TextureComplexity: r.Float64() * 3000,
			AvgGradient:       r.Float64() * 60,
			EdgeDensity:       r.Float64() * 0.3,
			Circularity:       r.Float64(),
			ContourArea:       r.Float64() * 20000,
		}
		res := ScoreImage(book.Image, f)
		for _, c := range res.Candidates {
			if c.Confidence < 0.60 || c.Confidence > 0.95 {
				t.Fatalf("confidence %v out of bounds for %+v", c.Confidence, f)
			}
			if c.Adjusted > res.Winner.Adjusted {
				t.Fatalf("winner %+v is not the argmax (%+v)", res.Winner, c)
			}
		}
	}
}

func TestScoreImageTieTakesLowestIndex(t *testing.T) {
	book := rules.ImageRules{
		Baseline: "Base", BaselineScore: 0.1, BaselineCeiling: 0.5,
		ConfidenceOffset: 0.4, ConfidenceMin: 0.6, ConfidenceMax: 0.95,
		Classes: []rules.ClassRules{
			{Class: "A", Rules: []rules.WeightedRule{{Predicate: rules.Predicate{Feature: "avg_value", Op: rules.OpGreater, Value: 0}, Weight: 0.3}}},
			{Class: "B", Rules: []rules.WeightedRule{{Predicate: rules.Predicate{Feature: "avg_value", Op: rules.OpGreater, Value: 0}, Weight: 0.3}}},
		},
	}
	res := ScoreImage(book, features.ImageFeatures{AvgValue: 260})
	if res.Winner.Condition != "A" {
		t.Fatalf("expected tie to resolve to A, got %s", res.Winner.Condition)
	}
}

func TestClassifyLab(t *testing.T) {
	base := knowledge.Default()
	findings := ClassifyLab(base, map[string]float64{"glucose": 150, "hemoglobin": 10, "cholesterol": 200, "unknown": 1})
	if len(findings) != 2 {
		t.Fatalf("expected two findings, got %+v", findings)
	}
	if findings[0].Test != "glucose" || findings[0].Status != knowledge.StatusHigh || findings[0].Condition != "Hyperglycemia" {
		t.Fatalf("unexpected glucose finding %+v", findings[0])
	}
	if findings[1].Test != "hemoglobin" || findings[1].Status != knowledge.StatusLow || findings[1].Condition != "Anemia" {
		t.Fatalf("unexpected hemoglobin finding %+v", findings[1])
	}
	if findings[0].NormalRange != "70-100" {
		t.Fatalf("unexpected normal range text %q", findings[0].NormalRange)
	}
}

func TestDetectSymptomsAndRanking(t *testing.T) {
	base := knowledge.Default()
	book := rules.Default()

	matches := DetectSymptoms(base, "I have a FEVER and a sore throat, also some cough")
	keys := map[string]bool{}
	for _, m := range matches {
		keys[m.Key] = true
	}
	for _, want := range []string{"fever", "sore_throat", "cough"} {
		if !keys[want] {
			t.Fatalf("expected %s to match, got %v", want, keys)
		}
	}

	conds := RankConditions(book.Chat, matches)
	if conds[0].Name != "Common Cold" || conds[0].Count != 2 || conds[0].Confidence != 90 {
		t.Fatalf("expected Common Cold ranked first with confidence 90, got %+v", conds[0])
	}
	for i := 1; i < len(conds); i++ {
		if conds[i].Count > conds[i-1].Count {
			t.Fatalf("conditions not sorted by count: %+v", conds)
		}
	}

	meds := RankMedications(matches)
	seen := map[string]bool{}
	for _, m := range meds {
		if seen[m.Name] {
			t.Fatalf("duplicate medication %s", m.Name)
		}
		seen[m.Name] = true
	}

	if got := DetectSymptoms(base, "sore_throat since monday"); len(got) != 1 || got[0].Key != "sore_throat" {
		t.Fatalf("expected underscore form to match, got %+v", got)
	}
}

func TestDetectIntent(t *testing.T) {
	chat := rules.Default().Chat
	cases := []struct {
		msg     string
		matched bool
		want    Intent
	}{
		{"Hello there", false, IntentGreeting},
		{"this is an emergency", true, IntentEmergency},
		{"I can't breathe", false, IntentEmergency},
		{"thanks, bye", false, IntentFarewell},
		{"can you help me", false, IntentHelp},
		{"hi, I have a headache", true, IntentNone},
		{"this chip is broken", false, IntentNone},
	}
	for _, tc := range cases {
		if got := DetectIntent(chat, tc.msg, tc.matched); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.msg, tc.want, got)
		}
	}
}

func TestScoreAudioDecisionList(t *testing.T) {
	audio := rules.Default().Audio
	cases := []struct {
		f    features.AudioFeatures
		want string
		conf float64
	}{
		{features.AudioFeatures{RMSEnergy: 0.01, ZeroCrossingRate: 0.5, SpectralCentroid: 3000}, knowledge.HealthyBreathing, 0.85},
		{features.AudioFeatures{RMSEnergy: 0.03, ZeroCrossingRate: 0.15, SpectralCentroid: 2500}, knowledge.Asthma, 0.75},
		{features.AudioFeatures{RMSEnergy: 0.08, ZeroCrossingRate: 0.05, SpectralCentroid: 1200}, knowledge.Bronchitis, 0.70},
		{features.AudioFeatures{RMSEnergy: 0.04, ZeroCrossingRate: 0.05, SpectralCentroid: 1800}, knowledge.HealthyBreathing, 0.80},
	}
	for _, tc := range cases {
		got := ScoreAudio(audio, tc.f)
		if got.Condition != tc.want || got.Confidence != tc.conf {
			t.Fatalf("%+v: expected %s@%v, got %+v", tc.f, tc.want, tc.conf, got)
		}
	}
}
