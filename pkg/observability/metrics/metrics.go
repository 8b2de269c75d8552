package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var modalities = []string{"skin", "respiratory", "lab", "chat"}

var (
	analyses        = map[string]*atomic.Int64{}
	failures        = map[string]*atomic.Int64{}
	demoFallbacks   atomic.Int64
	cacheHits       atomic.Int64
	cacheMisses     atomic.Int64
	eventsConsumed  atomic.Int64
	eventsPublished atomic.Int64
	latencyMicros   atomic.Int64
)

func init() {
	for _, m := range modalities {
		analyses[m] = &atomic.Int64{}
		failures[m] = &atomic.Int64{}
	}
}

// ObserveAnalysis counts one finished analysis. Unknown modalities are not tracked.
func ObserveAnalysis(modality string, failed, demo bool, latencyMicrosecs int64) {
	if c, ok := analyses[modality]; ok {
		c.Add(1)
	}
	if failed {
		if c, ok := failures[modality]; ok {
			c.Add(1)
		}
	}
	if demo {
		demoFallbacks.Add(1)
	}
	latencyMicros.Add(latencyMicrosecs)
}

func ObserveCache(hit bool) {
	if hit {
		cacheHits.Add(1)
		return
	}
	cacheMisses.Add(1)
}

func ObserveEventConsumed()  { eventsConsumed.Add(1) }
func ObserveEventPublished() { eventsPublished.Add(1) }

// Snapshot is a point-in-time copy for tests and the CLI.
type Snapshot struct {
	Analyses      map[string]int64
	Failures      map[string]int64
	DemoFallbacks int64
	CacheHits     int64
	CacheMisses   int64
}

func Read() Snapshot {
	s := Snapshot{Analyses: map[string]int64{}, Failures: map[string]int64{}}
	for _, m := range modalities {
		s.Analyses[m] = analyses[m].Load()
		s.Failures[m] = failures[m].Load()
	}
	s.DemoFallbacks = demoFallbacks.Load()
	s.CacheHits = cacheHits.Load()
	s.CacheMisses = cacheMisses.Load()
	return s
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP synaptica_diagnosis_analyses_total Number of analyses completed per modality.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_analyses_total counter\n")
	for _, m := range modalities {
		fmt.Fprintf(w, "synaptica_diagnosis_analyses_total{modality=%q} %d\n", m, analyses[m].Load())
	}

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_failures_total Number of analyses that produced a failure report.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_failures_total counter\n")
	for _, m := range modalities {
		fmt.Fprintf(w, "synaptica_diagnosis_failures_total{modality=%q} %d\n", m, failures[m].Load())
	}

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_lab_demo_fallbacks_total Number of lab analyses answered with a demo panel.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_lab_demo_fallbacks_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_lab_demo_fallbacks_total %d\n", demoFallbacks.Load())

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_report_cache_hits_total Number of reports served from cache.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_report_cache_hits_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_report_cache_hits_total %d\n", cacheHits.Load())

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_report_cache_misses_total Number of cache lookups that missed.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_report_cache_misses_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_report_cache_misses_total %d\n", cacheMisses.Load())

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_events_consumed_total Number of feature events consumed.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_events_consumed_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_events_consumed_total %d\n", eventsConsumed.Load())

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_events_published_total Number of diagnosis events published.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_events_published_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_events_published_total %d\n", eventsPublished.Load())

	fmt.Fprintf(w, "# HELP synaptica_diagnosis_latency_microseconds_total Cumulative analysis latency.\n")
	fmt.Fprintf(w, "# TYPE synaptica_diagnosis_latency_microseconds_total counter\n")
	fmt.Fprintf(w, "synaptica_diagnosis_latency_microseconds_total %d\n", latencyMicros.Load())
}
