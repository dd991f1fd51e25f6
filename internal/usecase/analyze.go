// Package usecase contains the application services that sit between
// the HTTP adapters and the analysis core.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fairyhunter13/resume-insight/internal/adapter/observability"
	"github.com/fairyhunter13/resume-insight/internal/analyzer"
	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// Combined score blend between the heuristic pipeline and the AI
// review. The review carries the larger weight; the heuristic score
// anchors the rest.
const (
	heuristicWeight = 0.4
	reviewWeight    = 0.6
)

// AnalyzeService runs the full pipeline for an uploaded resume: extract,
// analyze, optionally review, persist.
type AnalyzeService struct {
	Analyzer *analyzer.Analyzer
	Repo     domain.AnalysisRepository
	Reviewer domain.Reviewer
}

// NewAnalyzeService constructs an AnalyzeService. Reviewer may be nil
// when no AI backend is configured; analyses then carry the heuristic
// score alone.
func NewAnalyzeService(a *analyzer.Analyzer, repo domain.AnalysisRepository, rev domain.Reviewer) AnalyzeService {
	return AnalyzeService{Analyzer: a, Repo: repo, Reviewer: rev}
}

// Analyze processes the document for the given user and returns the
// stored analysis record.
func (s AnalyzeService) Analyze(ctx domain.Context, userID, filename string, doc domain.RawDocument) (domain.Analysis, error) {
	start := time.Now()

	result, err := s.Analyzer.Analyze(ctx, doc)
	if err != nil {
		observability.ExtractionFailuresTotal.WithLabelValues(extractionErrorKind(err)).Inc()
		return domain.Analysis{}, err
	}

	a := domain.Analysis{
		UserID:        userID,
		Filename:      filename,
		Result:        result,
		CombinedScore: result.OverallScore,
		CreatedAt:     time.Now().UTC(),
	}

	if s.Reviewer != nil {
		review, err := s.Reviewer.Review(ctx, result.Profile)
		if err != nil {
			// Misconfiguration, not a transient failure. The heuristic
			// result still stands.
			slog.Error("ai review skipped", slog.Any("error", err))
		} else {
			a.Review = &review
			if review.OverallScore > 0 {
				a.CombinedScore = round2(heuristicWeight*result.OverallScore + reviewWeight*review.OverallScore)
			}
		}
	}

	id, err := s.Repo.Create(ctx, a)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("op=analyze.persist: %w", err)
	}
	a.ID = id

	observability.ObserveAnalysis(a.Result.Quality.Grade, a.Result.Industry.PrimaryIndustry, string(doc.Format), a.Result.OverallScore, time.Since(start))
	observability.ObserveCombinedScore(a.CombinedScore)
	slog.Info("analysis stored",
		slog.String("analysis_id", id),
		slog.String("grade", a.Result.Quality.Grade),
		slog.String("industry", a.Result.Industry.PrimaryIndustry),
		slog.Float64("overall_score", a.Result.OverallScore),
		slog.Float64("combined_score", a.CombinedScore))
	return a, nil
}

// extractionErrorKind labels the extraction failure for metrics.
func extractionErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, domain.ErrEmptyExtraction):
		return "empty_extraction"
	case errors.Is(err, domain.ErrExtractionFailure):
		return "extraction_failure"
	default:
		return "other"
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
