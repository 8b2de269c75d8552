// Package engine is the single entry point for analyses: one Input in, one Report out.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/labparser"
	"github.com/synaptica-ai/diagnostics/pkg/report"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/scoring"
	"github.com/synaptica-ai/diagnostics/pkg/severity"
	"github.com/synaptica-ai/diagnostics/pkg/terminology"
)

var ErrNoLabValues = errors.New("no lab values found in report")

// Input is either an extracted Record or a raw payload for the Extractor.
type Input struct {
	Modality features.Modality
	Record   *features.Record
	Payload  []byte
}

type Options struct {
	Rules     *rules.RuleBook
	Catalog   *report.Catalog
	Terms     *terminology.Catalog
	Extractor features.Extractor

	// DemoFallback substitutes a generated panel when no lab value can be parsed.
	DemoFallback bool
	DemoSeed     int64
}

type Engine struct {
	base      *knowledge.Base
	parser    *labparser.Parser
	book      rules.RuleBook
	assembler *report.Assembler
	extractor features.Extractor
	demo      bool
	demoSeed  int64
	log       *logrus.Entry
}

func New(base *knowledge.Base, opts Options) *Engine {
	if base == nil {
		base = knowledge.Default()
	}
	book := *rules.Default()
	if opts.Rules != nil {
		book = *opts.Rules
	}
	terms := terminology.DefaultCatalog()
	if opts.Terms != nil {
		terms = *opts.Terms
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = features.NewDecodeExtractor(0)
	}
	return &Engine{
		base:      base,
		parser:    labparser.New(base),
		book:      book,
		assembler: report.NewAssembler(base, book, opts.Catalog, terms),
		extractor: extractor,
		demo:      opts.DemoFallback,
		demoSeed:  opts.DemoSeed,
		log:       logger.Component("engine"),
	}
}

func (e *Engine) Base() *knowledge.Base {
	return e.base
}

func (e *Engine) Parser() *labparser.Parser {
	return e.parser
}

func (e *Engine) Rules() rules.RuleBook {
	return e.book
}

// Analyze extracts the input when needed and analyzes it. It never panics and never
// returns a malformed report; failures produce a failure report.
func (e *Engine) Analyze(ctx context.Context, in Input) report.Report {
	rec, err := e.Extract(ctx, in)
	if err != nil {
		e.log.WithError(err).WithField("modality", in.Modality).Warn("Feature extraction failed")
		return report.Failure(in.Modality, err)
	}
	return e.AnalyzeRecord(rec)
}

// Extract returns the input's Record, running the Extractor over Payload when no
// Record was supplied. Extractor panics become ErrExtractionFailed.
func (e *Engine) Extract(ctx context.Context, in Input) (rec features.Record, err error) {
	if in.Record != nil {
		rec = *in.Record
		if rec.Modality == "" {
			rec.Modality = in.Modality
		}
		return rec, nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: extractor panic: %v", features.ErrExtractionFailed, p)
		}
	}()
	return e.extractor.Extract(ctx, in.Modality, bytes.NewReader(in.Payload))
}

// AnalyzeRecord runs scoring, severity and assembly over an extracted record.
func (e *Engine) AnalyzeRecord(rec features.Record) (out report.Report) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			e.log.WithFields(logrus.Fields{
				"modality": rec.Modality,
				"panic":    p,
				"stack":    string(debug.Stack()),
			}).Error("Analysis panicked")
			out = report.Failure(rec.Modality, fmt.Errorf("internal error: %v", p))
		}
	}()

	if err := rec.Validate(); err != nil {
		return report.Failure(rec.Modality, err)
	}

	switch rec.Modality {
	case features.ModalitySkin:
		out = e.skin(*rec.Image)
	case features.ModalityRespiratory:
		out = e.respiratory(*rec.Audio)
	case features.ModalityLab:
		out = e.lab(*rec.Lab)
	case features.ModalityChat:
		out = e.chat(*rec.Text)
	}

	e.log.WithFields(logrus.Fields{
		"modality":  rec.Modality,
		"diagnosis": out.Diagnosis,
		"severity":  out.Severity,
		"duration":  time.Since(start).String(),
	}).Debug("Analysis completed")
	return out
}

func (e *Engine) skin(f features.ImageFeatures) report.Report {
	result := scoring.ScoreImage(e.book.Image, f)
	sev, points := severity.Image(e.book.ImageSeverity, e.book.Image.Baseline, result.Winner.Condition, f)
	return e.assembler.Skin(report.SkinEvidence{
		Features: f,
		Result:   result,
		Severity: sev,
		Points:   points,
	})
}

func (e *Engine) respiratory(f features.AudioFeatures) report.Report {
	winner := scoring.ScoreAudio(e.book.Audio, f)
	return e.assembler.Respiratory(report.RespiratoryEvidence{
		Features: f,
		Winner:   winner,
		Severity: severity.Audio(e.book.AudioSeverity, e.book.Audio.Baseline, winner.Condition),
	})
}

func (e *Engine) lab(f features.LabFeatures) report.Report {
	values := make(map[string]float64, len(f.Values))
	for k, v := range f.Values {
		key := e.base.ResolveLabKey(k)
		if !e.parser.Plausible(key, v) {
			e.log.WithFields(logrus.Fields{"test": key, "value": v}).Debug("Dropping implausible lab value")
			continue
		}
		values[key] = v
	}
	if len(f.Values) == 0 {
		values = e.parser.Parse(f.Text)
	}

	demo := false
	if len(values) == 0 {
		if !e.demo {
			return report.Failure(features.ModalityLab, ErrNoLabValues)
		}
		values = labparser.DemoValues(labparser.DemoSeed(e.demoSeed, f.Text))
		demo = true
		e.log.Info("No lab values parsed, using demo panel")
	}

	findings := scoring.ClassifyLab(e.base, values)
	return e.assembler.Lab(report.LabEvidence{
		Values:   values,
		Findings: findings,
		Severity: severity.Lab(e.book.LabSeverity, findings),
		Demo:     demo,
	})
}

func (e *Engine) chat(f features.TextFeatures) report.Report {
	matches := scoring.DetectSymptoms(e.base, f.Message)
	intent := scoring.DetectIntent(e.book.Chat, f.Message, len(matches) > 0)
	return e.assembler.Chat(report.ChatEvidence{
		Matches:  matches,
		Intent:   intent,
		Severity: severity.Symptoms(matches, intent == scoring.IntentEmergency),
	})
}
