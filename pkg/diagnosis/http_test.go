package diagnosis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
)

func newRouter(t *testing.T, opts engine.Options) (*mux.Router, fixture) {
	t.Helper()
	f := newFixture(t, opts)
	router := mux.NewRouter()
	NewHTTPHandler(f.service, 1<<20).Register(router.PathPrefix("/api/v1").Subrouter())
	return router, f
}

func do(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, _ := newRouter(t, engine.Options{})

	rec := do(router, http.MethodPost, "/api/v1/analyze", `{"modality":"text","text":"I have a fever and a bad cough"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ID == "" || res.Report.Diagnosis != "Common Cold" {
		t.Fatalf("unexpected result: %+v", res)
	}

	rec = do(router, http.MethodPost, "/api/v1/analyze", `{"modality":"lab","features":{"values":{"glucose":150,"ldl":160}}}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "High glucose") {
		t.Fatalf("unexpected lab response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeEndpointErrors(t *testing.T) {
	router, _ := newRouter(t, engine.Options{})

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, "/api/v1/analyze", `{`, http.StatusBadRequest},
		{"unknown modality", http.MethodPost, "/api/v1/analyze", `{"modality":"xray","text":"x"}`, http.StatusBadRequest},
		{"empty request", http.MethodPost, "/api/v1/analyze", `{"modality":"chat"}`, http.StatusBadRequest},
		{"both inputs", http.MethodPost, "/api/v1/analyze", `{"modality":"chat","text":"x","features":{"message":"y"}}`, http.StatusBadRequest},
		{"raw unknown modality", http.MethodPost, "/api/v1/analyze/xray", `{}`, http.StatusBadRequest},
		{"no lab values", http.MethodPost, "/api/v1/analyze/lab", `smudged`, http.StatusUnprocessableEntity},
		{"missing analysis", http.MethodGet, "/api/v1/analyses/not-an-id", ``, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(router, tc.method, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHistoryEndpoints(t *testing.T) {
	router, _ := newRouter(t, engine.Options{})

	rec := do(router, http.MethodPost, "/api/v1/analyze/respiratory",
		`{"spectral_centroid":1800,"spectral_rolloff":3500,"zero_crossing_rate":0.12,"rms_energy":0.05}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = do(router, http.MethodGet, "/api/v1/analyses/"+res.ID, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"modality":"respiratory"`) {
		t.Fatalf("unexpected get response %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/api/v1/analyses/recent?limit=5", "")
	var logs []AnalysisLog
	if err := json.Unmarshal(rec.Body.Bytes(), &logs); err != nil || len(logs) != 1 {
		t.Fatalf("expected one recent analysis, got %d (%v)", len(logs), err)
	}
}

func TestKnowledgeEndpoints(t *testing.T) {
	router, _ := newRouter(t, engine.Options{})

	rec := do(router, http.MethodGet, "/api/v1/knowledge/conditions?domain=skin", "")
	var conditions []knowledge.ConditionRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &conditions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(conditions) != len(knowledge.SkinClasses) {
		t.Fatalf("expected %d skin conditions, got %d", len(knowledge.SkinClasses), len(conditions))
	}

	rec = do(router, http.MethodGet, "/api/v1/knowledge/symptoms", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"key":"fever"`) {
		t.Fatalf("unexpected symptoms response: %s", rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/api/v1/knowledge/lab-tests", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"normal_range":"70-100"`) {
		t.Fatalf("unexpected lab tests response: %s", rec.Body.String())
	}

	rec = do(router, http.MethodPost, "/api/v1/lab/parse", "Glucose: 105 mg/dL\nHemoglobin 13.5")
	var parsed struct {
		Values map[string]float64 `json:"values"`
		Count  int                `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Count != 2 || parsed.Values["glucose"] != 105 || parsed.Values["hemoglobin"] != 13.5 {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
}
