// Package diagnosis runs analyses for the HTTP and event surfaces, caching reports and
// keeping a redacted audit trail.
package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/common/middleware"
	"github.com/synaptica-ai/diagnostics/pkg/common/models"
	"github.com/synaptica-ai/diagnostics/pkg/dlp"
	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/observability/metrics"
	"github.com/synaptica-ai/diagnostics/pkg/report"
	"gorm.io/datatypes"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, eventType, source, key string, data map[string]interface{}) error
}

const serviceName = "diagnosis-service"

type Result struct {
	ID        string        `json:"id"`
	RequestID string        `json:"request_id,omitempty"`
	Cached    bool          `json:"cached"`
	Report    report.Report `json:"report"`
}

// Options wires the optional collaborators. Any of them may be nil.
type Options struct {
	Redactor  *dlp.Redactor
	Audit     AuditStore
	Cache     Cache
	Publisher Publisher
}

type Service struct {
	engine    *engine.Engine
	redactor  *dlp.Redactor
	audit     AuditStore
	cache     Cache
	publisher Publisher
	log       *logrus.Entry
}

func NewService(eng *engine.Engine, opts Options) *Service {
	return &Service{
		engine:    eng,
		redactor:  opts.Redactor,
		audit:     opts.Audit,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		log:       logger.Component("diagnosis"),
	}
}

func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Analyze returns an error only for invalid input. Extraction and analysis failures
// come back as a failure report.
func (s *Service) Analyze(ctx context.Context, in engine.Input, source string) (*Result, error) {
	start := time.Now()
	requestID := middleware.RequestID(ctx)

	rec, err := s.engine.Extract(ctx, in)
	if err != nil {
		if features.IsValidationError(err) {
			return nil, err
		}
		rep := report.Failure(in.Modality, err)
		return s.finish(ctx, requestID, source, features.Record{Modality: in.Modality}, rep, false, start), nil
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	key, keyErr := CacheKey(rec)
	if keyErr == nil && s.cache != nil {
		rep, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WithError(err).Warn("Report cache read failed")
		}
		metrics.ObserveCache(hit)
		if hit {
			return s.finish(ctx, requestID, source, rec, rep, true, start), nil
		}
	}

	rep := s.engine.AnalyzeRecord(rec)

	// Demo panels are random per input text and failures may be transient.
	if keyErr == nil && s.cache != nil && !rep.Failed() && !rep.DemoData {
		if err := s.cache.Set(ctx, key, rep); err != nil {
			s.log.WithError(err).Warn("Report cache write failed")
		}
	}
	return s.finish(ctx, requestID, source, rec, rep, false, start), nil
}

func (s *Service) finish(ctx context.Context, requestID, source string, rec features.Record, rep report.Report, cached bool, start time.Time) *Result {
	id := uuid.New()
	latency := time.Since(start)
	metrics.ObserveAnalysis(string(rep.Modality), rep.Failed(), rep.DemoData, latency.Microseconds())

	s.recordAudit(ctx, id, requestID, source, rec, rep, cached, latency)
	s.publish(ctx, id.String(), requestID, rep)

	s.log.WithFields(logrus.Fields{
		"id":         id.String(),
		"request_id": requestID,
		"modality":   rep.Modality,
		"diagnosis":  rep.Diagnosis,
		"failed":     rep.Failed(),
		"cached":     cached,
		"latency":    latency.String(),
	}).Info("Analysis finished")

	return &Result{ID: id.String(), RequestID: requestID, Cached: cached, Report: rep}
}

func (s *Service) recordAudit(ctx context.Context, id uuid.UUID, requestID, source string, rec features.Record, rep report.Report, cached bool, latency time.Duration) {
	if s.audit == nil {
		return
	}

	var phiTypes []string
	if s.redactor != nil {
		if rec.Text != nil {
			phiTypes = append(phiTypes, s.redactor.Scan(rec.Text.Message).PHITypes...)
		}
		if rec.Lab != nil {
			phiTypes = append(phiTypes, s.redactor.Scan(rec.Lab.Text).PHITypes...)
		}
		rec = s.redactor.RedactRecord(rec)
	} else {
		rec = features.Record{Modality: rec.Modality}
	}

	input, err := json.Marshal(rec)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode audit input")
	}
	output, err := json.Marshal(rep)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode audit report")
	}
	types, _ := json.Marshal(dedupeStrings(phiTypes))

	entry := &AnalysisLog{
		ID:         id,
		RequestID:  requestID,
		Source:     source,
		Modality:   string(rep.Modality),
		Diagnosis:  rep.Diagnosis,
		Severity:   rep.Severity,
		Confidence: rep.Confidence,
		Failed:     rep.Failed(),
		DemoData:   rep.DemoData,
		Cached:     cached,
		PHITypes:   datatypes.JSON(types),
		Input:      datatypes.JSON(input),
		Report:     datatypes.JSON(output),
		LatencyMs:  float64(latency.Microseconds()) / 1000,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.WithError(err).WithField("id", id.String()).Error("Failed to record analysis")
	}
}

func (s *Service) publish(ctx context.Context, id, requestID string, rep report.Report) {
	if s.publisher == nil {
		return
	}

	eventType := models.EventDiagnosisComplete
	if rep.Failed() {
		eventType = models.EventDiagnosisFailed
	}
	payload, err := reportPayload(rep)
	if err != nil {
		s.log.WithError(err).Warn("Failed to encode report event")
		return
	}
	data := map[string]interface{}{
		"analysis_id": id,
		"request_id":  requestID,
		"modality":    string(rep.Modality),
		"diagnosis":   rep.Diagnosis,
		"severity":    rep.Severity,
		"failed":      rep.Failed(),
		"report":      payload,
	}

	key := requestID
	if key == "" {
		key = id
	}
	if err := s.publisher.PublishEvent(ctx, eventType, serviceName, key, data); err != nil {
		s.log.WithError(err).WithField("id", id).Warn("Failed to publish diagnosis event")
		return
	}
	metrics.ObserveEventPublished()
}

func reportPayload(rep report.Report) (map[string]interface{}, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*AnalysisLog, error) {
	if s.audit == nil {
		return nil, ErrNotFound
	}
	return s.audit.Get(ctx, id)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]AnalysisLog, error) {
	if s.audit == nil {
		return []AnalysisLog{}, nil
	}
	return s.audit.Recent(ctx, limit)
}

// HandleEvent consumes features.extracted events. Undecodable events are logged and
// acknowledged so they are not redelivered.
func (s *Service) HandleEvent(ctx context.Context, event models.Event) error {
	metrics.ObserveEventConsumed()
	if event.Type != models.EventFeaturesExtracted {
		s.log.WithField("event_type", event.Type).Debug("Ignoring event")
		return nil
	}

	req := requestFromEvent(event.Data)
	in, err := req.ToInput()
	if err != nil {
		s.log.WithError(err).WithField("event_id", event.ID).Warn("Dropping malformed feature event")
		return nil
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = event.ID
	}
	ctx = context.WithValue(ctx, middleware.RequestIDKey, requestID)

	if _, err := s.Analyze(ctx, in, SourceKafka); err != nil {
		s.log.WithError(err).WithField("event_id", event.ID).Warn("Dropping invalid feature event")
	}
	return nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Describe is a short human label used by the CLI.
func (r Result) Describe() string {
	if r.Report.Failed() {
		return fmt.Sprintf("%s: %s (%s)", r.Report.Modality, r.Report.Diagnosis, r.Report.Error)
	}
	return fmt.Sprintf("%s: %s [%s]", r.Report.Modality, r.Report.Diagnosis, r.Report.Severity)
}
