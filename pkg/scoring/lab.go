package scoring

import (
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
)

// Finding is one reading outside its normal range.
type Finding struct {
	Test        string          `json:"test"`
	Name        string          `json:"name"`
	Value       float64         `json:"value"`
	Unit        string          `json:"unit,omitempty"`
	Status      string          `json:"status"`
	Normal      knowledge.Range `json:"-"`
	NormalRange string          `json:"normal_range"`
	Condition   string          `json:"condition"`
	Medications []string        `json:"-"`
}

// ClassifyLab flags value < min as low and value > max as high, in knowledge order.
// Readings for tests the base does not define are ignored.
func ClassifyLab(base *knowledge.Base, values map[string]float64) []Finding {
	var findings []Finding
	for _, def := range base.LabTests() {
		v, ok := values[def.Key]
		if !ok {
			continue
		}
		var status string
		switch {
		case v < def.Normal.Min:
			status = knowledge.StatusLow
		case v > def.Normal.Max:
			status = knowledge.StatusHigh
		default:
			continue
		}
		band := def.Band(status)
		findings = append(findings, Finding{
			Test:        def.Key,
			Name:        def.Name,
			Value:       v,
			Unit:        def.Unit,
			Status:      status,
			Normal:      def.Normal,
			NormalRange: def.Normal.String(),
			Condition:   band.Condition,
			Medications: band.Medications,
		})
	}
	return findings
}
