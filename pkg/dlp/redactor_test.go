package dlp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/features"
)

func TestRedactorMasksIdentifiers(t *testing.T) {
	redactor, err := NewRedactor(DefaultRules())
	if err != nil {
		t.Fatalf("failed to create redactor: %v", err)
	}

	text := "I have a fever. SSN 123-45-6789, born 04/12/1980, mail john@example.com or call (555) 123-4567"
	result := redactor.Scan(text)
	if !result.Detected {
		t.Fatal("expected PHI detection")
	}
	if len(result.PHITypes) != 4 {
		t.Fatalf("expected four PHI types, got %v", result.PHITypes)
	}
	for _, leaked := range []string{"123-45-6789", "04/12/1980", "john@example.com", "123-4567"} {
		if strings.Contains(result.Text, leaked) {
			t.Fatalf("expected %q to be masked in %q", leaked, result.Text)
		}
	}
	if !strings.HasPrefix(result.Text, "I have a fever.") {
		t.Fatalf("expected clinical text to survive, got %q", result.Text)
	}
	for i := 1; i < len(result.Findings); i++ {
		if result.Findings[i].Start < result.Findings[i-1].Start {
			t.Fatalf("findings not ordered: %+v", result.Findings)
		}
	}
}

func TestRedactRecordCopies(t *testing.T) {
	redactor, _ := NewRedactor(DefaultRules())
	rec := features.Record{Modality: features.ModalityChat, Text: &features.TextFeatures{Message: "cough, reach me at a@b.io"}}

	out := redactor.RedactRecord(rec)
	if out.Text.Message != "cough, reach me at ***@***" {
		t.Fatalf("unexpected redaction: %q", out.Text.Message)
	}
	if rec.Text.Message != "cough, reach me at a@b.io" {
		t.Fatal("original record must not be modified")
	}
}

func TestLoadRules(t *testing.T) {
	cfg, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || len(cfg.Rules) != len(DefaultRules().Rules) {
		t.Fatalf("expected defaults with error, got %d rules, err %v", len(cfg.Rules), err)
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "rules:\n  - name: MRN\n    type: mrn\n    pattern: 'MRN\\d{6}'\n    mask: MRN######\n    enabled: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	cfg, err = LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redactor, err := NewRedactor(cfg)
	if err != nil {
		t.Fatalf("failed to create redactor: %v", err)
	}
	if got := redactor.Redact("record MRN123456"); got != "record MRN######" {
		t.Fatalf("unexpected redaction: %q", got)
	}

	if _, err := NewRedactor(RulesConfig{Rules: []Rule{{Name: "bad", Pattern: "(", Enabled: true}}}); err == nil {
		t.Fatal("expected invalid pattern error")
	}
}
