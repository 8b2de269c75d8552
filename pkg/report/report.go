// Package report assembles the structured diagnostic report returned for every analysis.
package report

import (
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/scoring"
	"github.com/synaptica-ai/diagnostics/pkg/terminology"
)

const (
	DefaultDisclaimer = "This is AI-generated guidance for informational purposes only. " +
		"Always consult a qualified healthcare professional for diagnosis and treatment."

	FailedDiagnosis = "Analysis failed"
)

var retryHints = map[features.Modality]string{
	features.ModalitySkin:        "Please try again with a clearer, well-lit image",
	features.ModalityLab:         "Please upload a clearer image of your lab report",
	features.ModalityRespiratory: "Please upload a clear audio recording of breathing or coughing",
	features.ModalityChat:        "Please describe your symptoms again",
}

// Report is always well formed: Medications and Recommendations are never nil and
// Severity is a known ordinal name or "unknown".
type Report struct {
	Modality          features.Modality `json:"modality"`
	Diagnosis         string            `json:"diagnosis"`
	Confidence        *float64          `json:"confidence,omitempty"`
	ConfidencePercent *float64          `json:"confidence_percent,omitempty"`
	Severity          string            `json:"severity"`
	SeverityPoints    int               `json:"severity_points,omitempty"`
	TreatmentText     string            `json:"treatment_text"`
	Description       string            `json:"description,omitempty"`
	Intent            string            `json:"intent,omitempty"`

	Characteristics    []string                     `json:"characteristics,omitempty"`
	AbnormalValues     []scoring.Finding            `json:"abnormal_values,omitempty"`
	LabValues          map[string]float64           `json:"lab_values,omitempty"`
	MatchedSymptoms    []string                     `json:"matched_symptoms,omitempty"`
	PossibleConditions []scoring.ConditionCandidate `json:"possible_conditions,omitempty"`
	Advice             []string                     `json:"advice,omitempty"`
	Timeline           *knowledge.Timeline          `json:"timeline,omitempty"`

	Medications       []string           `json:"medications"`
	MedicationDetails []MedicationDetail `json:"medication_details,omitempty"`
	Recommendations   []string           `json:"recommendations"`

	AnalysisDetails     map[string]string         `json:"analysis_details,omitempty"`
	ConfidenceBreakdown map[string]float64        `json:"confidence_breakdown,omitempty"`
	AudioFeatures       *features.AudioFeatures   `json:"audio_features,omitempty"`
	Candidates          []scoring.ScoredCandidate `json:"candidates,omitempty"`
	Codes               []terminology.Concept     `json:"codes,omitempty"`

	DemoData   bool   `json:"demo_data,omitempty"`
	Disclaimer string `json:"disclaimer"`
	Error      string `json:"error,omitempty"`
}

type MedicationDetail struct {
	Name        string            `json:"name"`
	ForSymptoms []string          `json:"for_symptoms,omitempty"`
	Dosage      *knowledge.Dosage `json:"dosage,omitempty"`
}

// Failed reports whether the report describes a failed analysis.
func (r Report) Failed() bool {
	return r.Error != ""
}

// Failure builds the report for an analysis that could not complete.
func Failure(modality features.Modality, err error) Report {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Report{
		Modality:        modality,
		Diagnosis:       FailedDiagnosis,
		Severity:        knowledge.SeverityUnknown,
		TreatmentText:   RetryHint(modality),
		Medications:     []string{},
		Recommendations: []string{},
		Disclaimer:      DefaultDisclaimer,
		Error:           msg,
	}
}

func RetryHint(modality features.Modality) string {
	if hint, ok := retryHints[modality]; ok {
		return hint
	}
	return "Please try again"
}

func confidence(v float64) (*float64, *float64) {
	c := v
	p := roundTo(v*100, 2)
	return &c, &p
}
