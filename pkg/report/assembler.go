package report

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/scoring"
	"github.com/synaptica-ai/diagnostics/pkg/terminology"
)

const (
	maxChatMedications     = 8
	maxChatAdvice          = 5
	maxChatRecommendations = 8

	NormalLabDiagnosis  = "All lab values are within normal range"
	EmergencyDiagnosis  = "Medical emergency"
	NoSymptomsDiagnosis = "No symptoms detected"
)

type SkinEvidence struct {
	Features features.ImageFeatures
	Result   scoring.ImageResult
	Severity knowledge.Severity
	Points   int
}

type RespiratoryEvidence struct {
	Features features.AudioFeatures
	Winner   scoring.ScoredCandidate
	Severity knowledge.Severity
}

type LabEvidence struct {
	Values   map[string]float64
	Findings []scoring.Finding
	Severity knowledge.Severity
	Demo     bool
}

type ChatEvidence struct {
	Matches  []scoring.SymptomMatch
	Intent   scoring.Intent
	Severity knowledge.Severity
}

// Assembler turns scored evidence into reports. It holds only read-only state and is
// safe for concurrent use.
type Assembler struct {
	base    *knowledge.Base
	book    rules.RuleBook
	catalog *Catalog
	terms   terminology.Catalog
}

func NewAssembler(base *knowledge.Base, book rules.RuleBook, catalog *Catalog, terms terminology.Catalog) *Assembler {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Assembler{base: base, book: book, catalog: catalog, terms: terms}
}

func (a *Assembler) Catalog() *Catalog {
	return a.catalog
}

func (a *Assembler) newReport(modality features.Modality) Report {
	disclaimer := a.catalog.Disclaimer
	if disclaimer == "" {
		disclaimer = DefaultDisclaimer
	}
	return Report{
		Modality:        modality,
		Medications:     []string{},
		Recommendations: []string{},
		Disclaimer:      disclaimer,
	}
}

func (a *Assembler) conditionData(name string, sev knowledge.Severity) (knowledge.ConditionRecord, TemplateData) {
	rec, _ := a.base.Condition(name)
	return rec, TemplateData{
		Condition:      name,
		Severity:       sev.String(),
		Description:    rec.Description,
		Duration:       rec.Duration,
		Medications:    rec.Medications,
		EmergencySigns: rec.EmergencySigns,
	}
}

func (a *Assembler) Skin(ev SkinEvidence) Report {
	r := a.newReport(features.ModalitySkin)
	name := ev.Result.Winner.Condition
	rec, data := a.conditionData(name, ev.Severity)

	r.Diagnosis = name
	r.Confidence, r.ConfidencePercent = confidence(ev.Result.Winner.Confidence)
	r.Severity = ev.Severity.String()
	r.SeverityPoints = ev.Points
	r.Description = rec.Description
	r.Characteristics = rec.Characteristics

	treatment, tips := a.catalog.Render(name, r.Severity, data)
	r.TreatmentText = treatment
	r.Medications = nonNil(rec.Medications)
	r.Recommendations = dedupe(a.catalog.General["skin"], tips)

	r.AnalysisDetails = ev.Features.Details()
	r.ConfidenceBreakdown = ev.Features.ConfidenceFactors()
	r.Candidates = ev.Result.Candidates
	r.Codes = a.terms.Codes(name)
	return r
}

func (a *Assembler) Respiratory(ev RespiratoryEvidence) Report {
	r := a.newReport(features.ModalityRespiratory)
	name := ev.Winner.Condition
	rec, data := a.conditionData(name, ev.Severity)

	r.Diagnosis = name
	r.Confidence, r.ConfidencePercent = confidence(ev.Winner.Confidence)
	r.Severity = ev.Severity.String()
	r.Description = rec.Description
	r.Characteristics = rec.Characteristics

	treatment, tips := a.catalog.Render(name, r.Severity, data)
	r.TreatmentText = treatment
	r.Medications = nonNil(rec.Medications)

	var banner []string
	if contains(a.book.AudioSeverity.Urgent, name) {
		banner = a.catalog.General["respiratory_urgent"]
	}
	r.Recommendations = dedupe(banner, a.catalog.General["respiratory"], tips)

	audio := ev.Features
	r.AudioFeatures = &audio
	r.Codes = a.terms.Codes(name)
	return r
}

func (a *Assembler) Lab(ev LabEvidence) Report {
	r := a.newReport(features.ModalityLab)
	r.Severity = ev.Severity.String()
	r.LabValues = ev.Values
	r.AbnormalValues = ev.Findings
	r.DemoData = ev.Demo

	data := TemplateData{Condition: LabKey, Severity: r.Severity}
	tests := make([]string, 0, len(ev.Findings))
	conditions := make([]string, 0, len(ev.Findings))
	issues := make([]string, 0, len(ev.Findings))
	medLists := make([][]string, 0, len(ev.Findings))
	for _, f := range ev.Findings {
		tests = append(tests, f.Test)
		conditions = append(conditions, f.Condition)
		issues = append(issues, statusLabel(f.Status)+" "+f.Test)
		medLists = append(medLists, f.Medications)
		data.Findings = append(data.Findings, FindingView{
			Name:        f.Name,
			Value:       strconv.FormatFloat(f.Value, 'f', -1, 64),
			Status:      f.Status,
			NormalRange: f.NormalRange,
			Condition:   f.Condition,
			Medications: f.Medications,
		})
	}

	if len(ev.Findings) == 0 {
		r.Diagnosis = NormalLabDiagnosis
	} else {
		r.Diagnosis = "Some abnormal values detected: " + strings.Join(issues, ", ")
	}
	data.Conditions = conditions
	data.Medications = rankByCount(medLists)

	treatment, lead := a.catalog.Render(LabKey, r.Severity, data)
	r.TreatmentText = treatment
	r.Medications = nonNil(data.Medications)
	r.Recommendations = dedupe(
		lead,
		a.catalog.General["lab"],
		GroupRecommendations(a.catalog.LabGroups, tests),
		a.catalog.General["lab_monitoring"],
	)
	r.Codes = a.terms.Codes(conditions...)
	return r
}

func (a *Assembler) Chat(ev ChatEvidence) Report {
	r := a.newReport(features.ModalityChat)
	r.Intent = string(ev.Intent)
	keys := make([]string, 0, len(ev.Matches))
	for _, m := range ev.Matches {
		keys = append(keys, m.Key)
	}
	r.MatchedSymptoms = keys

	if ev.Intent == scoring.IntentEmergency {
		r.Diagnosis = EmergencyDiagnosis
		r.Severity = knowledge.SeveritySevere.String()
		r.TreatmentText = a.catalog.Reply(ReplyEmergency)
		r.Recommendations = dedupe(a.catalog.General["emergency"])
		return r
	}

	if len(ev.Matches) == 0 {
		r.Diagnosis = NoSymptomsDiagnosis
		r.Severity = knowledge.SeverityNone.String()
		switch ev.Intent {
		case scoring.IntentGreeting:
			r.TreatmentText = a.catalog.Reply(ReplyGreeting)
		case scoring.IntentFarewell:
			r.TreatmentText = a.catalog.Reply(ReplyFarewell)
		case scoring.IntentHelp:
			r.TreatmentText = a.catalog.Reply(ReplyHelp)
		default:
			r.TreatmentText = a.catalog.Reply(ReplyFallback)
		}
		return r
	}

	ranked := scoring.RankConditions(a.book.Chat, ev.Matches)
	r.PossibleConditions = ranked
	conditions := make([]string, 0, len(ranked))
	for _, c := range ranked {
		conditions = append(conditions, c.Name)
	}
	top := ""
	if len(ranked) > 0 {
		top = ranked[0].Name
		r.Diagnosis = top
		r.Confidence, r.ConfidencePercent = confidence(ranked[0].Confidence / 100)
	} else {
		r.Diagnosis = "Symptoms noted"
	}
	r.Severity = ev.Severity.String()

	meds := scoring.RankMedications(ev.Matches)
	if len(meds) > maxChatMedications {
		meds = meds[:maxChatMedications]
	}
	for _, m := range meds {
		r.Medications = append(r.Medications, m.Name)
		detail := MedicationDetail{Name: m.Name, ForSymptoms: m.Symptoms}
		if d, ok := a.base.Dosage(m.Name); ok {
			dosage := d
			detail.Dosage = &dosage
		}
		r.MedicationDetails = append(r.MedicationDetails, detail)
	}

	for _, m := range ev.Matches {
		if len(r.Advice) == maxChatAdvice {
			break
		}
		if m.Entry.Advice != "" && !contains(r.Advice, m.Entry.Advice) {
			r.Advice = append(r.Advice, m.Entry.Advice)
		}
	}
	timeline := a.base.Timeline(top)
	r.Timeline = &timeline

	displayKeys := make([]string, len(keys))
	for i, k := range keys {
		displayKeys[i] = knowledge.DisplayKey(k)
	}
	treatment, priority := a.catalog.Render(ChatKey, r.Severity, TemplateData{
		Condition:   ChatKey,
		Severity:    r.Severity,
		Medications: r.Medications,
		Symptoms:    displayKeys,
		Conditions:  conditions,
		Advice:      r.Advice,
	})
	r.TreatmentText = treatment
	recs := dedupe(priority, a.catalog.General["chat"], GroupRecommendations(a.catalog.SymptomGroups, keys))
	if len(recs) > maxChatRecommendations {
		recs = recs[:maxChatRecommendations]
	}
	r.Recommendations = recs
	r.Codes = a.terms.Codes(conditions...)
	return r
}

func statusLabel(status string) string {
	if status == "" {
		return status
	}
	return strings.ToUpper(status[:1]) + status[1:]
}

// rankByCount orders items by the number of lists containing them, ties in first-seen
// order, each item once.
func rankByCount(lists [][]string) []string {
	var order []string
	counts := make(map[string]int)
	for _, list := range lists {
		seenHere := make(map[string]struct{}, len(list))
		for _, item := range list {
			if _, dup := seenHere[item]; dup {
				continue
			}
			seenHere[item] = struct{}{}
			if _, ok := counts[item]; !ok {
				order = append(order, item)
			}
			counts[item]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	return order
}

func dedupe(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, item := range list {
			if item == "" {
				continue
			}
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

func nonNil(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
