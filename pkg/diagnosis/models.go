package diagnosis

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
	SourceCLI   = "cli"
)

// AnalysisLog is the audit row for one analysis. Input holds the redacted record;
// no free text is stored unmasked.
type AnalysisLog struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	RequestID  string         `json:"request_id,omitempty" gorm:"column:request_id;index"`
	Source     string         `json:"source" gorm:"column:source"`
	Modality   string         `json:"modality" gorm:"column:modality;index"`
	Diagnosis  string         `json:"diagnosis" gorm:"column:diagnosis"`
	Severity   string         `json:"severity" gorm:"column:severity"`
	Confidence *float64       `json:"confidence,omitempty" gorm:"column:confidence"`
	Failed     bool           `json:"failed" gorm:"column:failed"`
	DemoData   bool           `json:"demo_data" gorm:"column:demo_data"`
	Cached     bool           `json:"cached" gorm:"column:cached"`
	PHITypes   datatypes.JSON `json:"phi_types,omitempty" gorm:"column:phi_types"`
	Input      datatypes.JSON `json:"input" gorm:"column:input"`
	Report     datatypes.JSON `json:"report" gorm:"column:report"`
	LatencyMs  float64        `json:"latency_ms" gorm:"column:latency_ms"`
	CreatedAt  time.Time      `json:"created_at" gorm:"column:created_at;index"`
}

func (AnalysisLog) TableName() string {
	return "diagnosis_logs"
}
