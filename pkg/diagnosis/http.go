package diagnosis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/common/middleware"
	"github.com/synaptica-ai/diagnostics/pkg/engine"
	"github.com/synaptica-ai/diagnostics/pkg/features"
	"github.com/synaptica-ai/diagnostics/pkg/knowledge"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/analyze", h.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/analyze/{modality}", h.handleAnalyzeRaw).Methods(http.MethodPost)
	router.HandleFunc("/analyses/recent", h.handleRecent).Methods(http.MethodGet)
	router.HandleFunc("/analyses/{id}", h.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/lab/parse", h.handleParseLab).Methods(http.MethodPost)
	router.HandleFunc("/knowledge/conditions", h.handleConditions).Methods(http.MethodGet)
	router.HandleFunc("/knowledge/symptoms", h.handleSymptoms).Methods(http.MethodGet)
	router.HandleFunc("/knowledge/lab-tests", h.handleLabTests).Methods(http.MethodGet)
}

func (h *HTTPHandler) limit(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
}

func (h *HTTPHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	h.limit(w, r)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid analysis payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if req.RequestID != "" && middleware.RequestID(ctx) == "" {
		ctx = context.WithValue(ctx, middleware.RequestIDKey, req.RequestID)
	}
	h.analyze(w, r.WithContext(ctx), in)
}

// handleAnalyzeRaw takes the modality's JSON feature object, or plain text for lab and
// chat, as the whole body.
func (h *HTTPHandler) handleAnalyzeRaw(w http.ResponseWriter, r *http.Request) {
	modality, err := features.ParseModality(mux.Vars(r)["modality"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.limit(w, r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.analyze(w, r, engine.Input{Modality: modality, Payload: body})
}

func (h *HTTPHandler) analyze(w http.ResponseWriter, r *http.Request, in engine.Input) {
	result, err := h.service.Analyze(r.Context(), in, SourceHTTP)
	if err != nil {
		if IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to analyze input")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if result.Report.Failed() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

func (h *HTTPHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		logger.Log.WithError(err).Error("failed to list analyses")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *HTTPHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch analysis")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *HTTPHandler) handleParseLab(w http.ResponseWriter, r *http.Request) {
	h.limit(w, r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	values := h.service.Engine().Parser().Parse(string(body))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"values": values,
		"count":  len(values),
	})
}

func (h *HTTPHandler) handleConditions(w http.ResponseWriter, r *http.Request) {
	domain := knowledge.Domain(r.URL.Query().Get("domain"))
	writeJSON(w, http.StatusOK, h.service.Engine().Base().Conditions(domain))
}

func (h *HTTPHandler) handleSymptoms(w http.ResponseWriter, r *http.Request) {
	base := h.service.Engine().Base()
	keys := base.SymptomKeys()
	entries := make([]knowledge.SymptomEntry, 0, len(keys))
	for _, key := range keys {
		if entry, ok := base.Symptom(key); ok {
			entries = append(entries, entry)
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

type labTestView struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	Unit        string         `json:"unit,omitempty"`
	Description string         `json:"description,omitempty"`
	NormalRange string         `json:"normal_range"`
	Low         knowledge.Band `json:"low"`
	High        knowledge.Band `json:"high"`
}

func (h *HTTPHandler) handleLabTests(w http.ResponseWriter, r *http.Request) {
	tests := h.service.Engine().Base().LabTests()
	views := make([]labTestView, 0, len(tests))
	for _, t := range tests {
		views = append(views, labTestView{
			Key:         t.Key,
			Name:        t.Name,
			Unit:        t.Unit,
			Description: t.Description,
			NormalRange: t.Normal.String(),
			Low:         t.Low,
			High:        t.High,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("failed to encode response")
	}
}
