package diagnosis

import (
	"github.com/synaptica-ai/diagnostics/pkg/common/config"
	"github.com/synaptica-ai/diagnostics/pkg/common/httpclient"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/dlp"
	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
	"github.com/synaptica-ai/diagnostics/pkg/report"
	"github.com/synaptica-ai/diagnostics/pkg/rules"
	"github.com/synaptica-ai/diagnostics/pkg/terminology"
)

// NewEngineFromConfig loads every configured source. A source that fails to load is
// logged and replaced by its built-in defaults.
func NewEngineFromConfig(cfg *config.Config) *engine.Engine {
	ds, errs := knowledge.LoadDatasets(cfg.KnowledgePaths...)
	for _, err := range errs {
		logger.Log.WithError(err).Warn("Skipping knowledge dataset")
	}
	base := knowledge.New(ds)
	for _, w := range base.Warnings() {
		logger.Log.Warn(w)
	}
	stats := base.Stats()
	logger.Log.WithFields(map[string]interface{}{
		"conditions": stats.Conditions,
		"lab_tests":  stats.LabTests,
	}).Info("Knowledge base loaded")

	book, err := rules.LoadRuleBook(cfg.RulesPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.RulesPath).Warn("Using built-in rules")
	}
	catalog, err := report.LoadCatalog(cfg.TemplatesPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.TemplatesPath).Warn("Using built-in templates")
	}
	terms, err := terminology.Load(cfg.TerminologyPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.TerminologyPath).Warn("Using built-in terminology")
	}

	var extractor features.Extractor = features.NewDecodeExtractor(cfg.MaxRequestBody)
	if cfg.ExtractorURL != "" {
		extractor = features.NewRemoteExtractor(httpclient.New(cfg.ExtractorTimeout), cfg.ExtractorURL, cfg.MaxRequestBody)
		logger.Log.WithField("url", cfg.ExtractorURL).Info("Using remote feature extractor")
	}

	return engine.New(base, engine.Options{
		Extractor:    extractor,
		Rules:        book,
		Catalog:      catalog,
		Terms:        &terms,
		DemoFallback: cfg.LabDemoFallback,
		DemoSeed:     cfg.LabDemoSeed,
	})
}

// NewRedactorFromConfig falls back to the built-in PHI rules when the configured set is
// unreadable or fails to compile.
func NewRedactorFromConfig(cfg *config.Config) *dlp.Redactor {
	ruleset, err := dlp.LoadRules(cfg.DLPRulesPath)
	if err != nil {
		logger.Log.WithError(err).WithField("path", cfg.DLPRulesPath).Warn("Using built-in PHI rules")
	}
	redactor, err := dlp.NewRedactor(ruleset)
	if err != nil {
		logger.Log.WithError(err).Warn("Invalid PHI rules, using built-in set")
		redactor, _ = dlp.NewRedactor(dlp.DefaultRules())
	}
	return redactor
}
