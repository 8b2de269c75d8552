package models

import (
	"time"

	"github.com/google/uuid"
)

// Event types carried on the bus.
const (
	EventFeaturesExtracted = "features.extracted"
	EventDiagnosisComplete = "diagnosis.completed"
	EventDiagnosisFailed   = "diagnosis.failed"
)

// Event is the envelope for every message on the bus.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

func NewEvent(eventType, source string, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// PHI redaction
type PHIFinding struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Type  string `json:"type"`
}

type RedactionResult struct {
	Text     string       `json:"text"`
	Detected bool         `json:"detected"`
	PHITypes []string     `json:"phi_types,omitempty"`
	Findings []PHIFinding `json:"findings,omitempty"`
}

// Health
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
