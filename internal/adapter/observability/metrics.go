package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of resume analyses by grade and industry",
		},
		[]string{"grade", "industry"},
	)
	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Full pipeline duration in seconds by document format",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"format"},
	)
	ExtractionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of failed text extractions by kind",
		},
		[]string{"kind"},
	)

	AIReviewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_reviews_total",
			Help: "Total number of AI review calls by outcome",
		},
		[]string{"outcome"},
	)
	AIReviewDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_review_duration_seconds",
			Help:    "AI review round trip duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// Score distributions over completed analyses.
	OverallScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_overall_score",
			Help:    "Distribution of heuristic overall scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	CombinedScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_combined_score",
			Help:    "Distribution of combined heuristic and AI scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(ExtractionFailuresTotal)
	prometheus.MustRegister(AIReviewsTotal)
	prometheus.MustRegister(AIReviewDuration)
	prometheus.MustRegister(OverallScoreHistogram)
	prometheus.MustRegister(CombinedScoreHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveAnalysis records the outcome of a completed analysis.
func ObserveAnalysis(grade, industry, format string, overall float64, elapsed time.Duration) {
	AnalysesTotal.WithLabelValues(grade, industry).Inc()
	AnalysisDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	if overall >= 0 && overall <= 100 {
		OverallScoreHistogram.Observe(overall)
	}
}

// ObserveCombinedScore records the blended heuristic and AI score.
func ObserveCombinedScore(score float64) {
	if score >= 0 && score <= 100 {
		CombinedScoreHistogram.Observe(score)
	}
}

// ObserveAIReview records one review round trip by outcome.
func ObserveAIReview(outcome string, elapsed time.Duration) {
	AIReviewsTotal.WithLabelValues(outcome).Inc()
	AIReviewDuration.Observe(elapsed.Seconds())
}
