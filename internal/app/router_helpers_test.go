package app_test

import (
	"github.com/fairyhunter13/resume-insight/internal/analyzer"
	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/usecase"
)

type nopRepo struct{}

func (nopRepo) Create(_ domain.Context, _ domain.Analysis) (string, error) { return "id", nil }

func (nopRepo) GetByID(_ domain.Context, _, _ string) (domain.Analysis, error) {
	return domain.Analysis{}, domain.ErrNotFound
}

func (nopRepo) ListByUser(_ domain.Context, _ string) ([]domain.AnalysisSummary, error) {
	return []domain.AnalysisSummary{}, nil
}

func newAnalyzeService() usecase.AnalyzeService {
	return usecase.NewAnalyzeService(analyzer.New(dictionary.Load()), nopRepo{}, nil)
}

func newResultService() usecase.ResultService {
	return usecase.NewResultService(nopRepo{})
}
