package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/synaptica-ai/diagnostics/pkg/report"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, "I have a fever and a bad cough", "analyze", "--modality", "chat")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var r report.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if r.Diagnosis != "Common Cold" {
		t.Fatalf("expected Common Cold, got %q", r.Diagnosis)
	}
}

func TestAnalyzeCommandFailsWithoutLabValues(t *testing.T) {
	out, err := run(t, "", "analyze", "--no-demo", "--format", "text", "-m", "lab", "-t", "smudged scan")
	if err == nil {
		t.Fatalf("expected error for unparseable lab report")
	}
	if !strings.Contains(out, "Analysis failed") {
		t.Fatalf("expected failure report, got %s", out)
	}
}

func TestParseLabCommand(t *testing.T) {
	out, err := run(t, "", "parse-lab", "--format", "text", "--text", "Glucose: 126\nHDL: 38")
	if err != nil {
		t.Fatalf("parse-lab: %v", err)
	}
	if !strings.Contains(out, "glucose") || !strings.Contains(out, "126") || !strings.Contains(out, "hdl") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestConditionsCommand(t *testing.T) {
	out, err := run(t, "", "conditions", "--format", "text", "--domain", "respiratory")
	if err != nil {
		t.Fatalf("conditions: %v", err)
	}
	if !strings.Contains(out, "Bronchitis") || strings.Contains(out, "Melanoma") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestUnknownModality(t *testing.T) {
	if _, err := run(t, "{}", "analyze", "-m", "xray"); err == nil {
		t.Fatalf("expected unknown modality error")
	}
}
