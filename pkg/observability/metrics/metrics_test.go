package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestObserveAndWrite(t *testing.T) {
	before := Read()
	ObserveAnalysis("lab", true, true, 120)
	ObserveAnalysis("xray", true, false, 10)
	ObserveCache(true)
	ObserveCache(false)

	after := Read()
	if after.Analyses["lab"] != before.Analyses["lab"]+1 || after.Failures["lab"] != before.Failures["lab"]+1 {
		t.Fatalf("expected lab counters to advance: %+v -> %+v", before, after)
	}
	if after.DemoFallbacks != before.DemoFallbacks+1 {
		t.Fatalf("expected demo fallback counted")
	}
	if after.CacheHits != before.CacheHits+1 || after.CacheMisses != before.CacheMisses+1 {
		t.Fatalf("expected cache counters to advance")
	}

	rec := httptest.NewRecorder()
	WritePrometheus(rec)
	body := rec.Body.String()
	if !strings.Contains(body, `synaptica_diagnosis_analyses_total{modality="lab"}`) {
		t.Fatalf("expected labelled counter in output:\n%s", body)
	}
	if strings.Contains(body, "xray") {
		t.Fatal("unknown modality must not be exported")
	}
}
