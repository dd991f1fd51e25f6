package usecase

import (
	"fmt"

	"github.com/fairyhunter13/resume-insight/internal/domain"
)

// ResultService provides read access to stored analyses, scoped to the
// requesting user.
type ResultService struct {
	Repo domain.AnalysisRepository
}

// NewResultService constructs a ResultService with the given repository.
func NewResultService(repo domain.AnalysisRepository) ResultService {
	return ResultService{Repo: repo}
}

// Fetch loads the analysis by id. A record owned by another user is
// indistinguishable from a missing one.
func (s ResultService) Fetch(ctx domain.Context, id, userID string) (domain.Analysis, error) {
	if id == "" {
		return domain.Analysis{}, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument)
	}
	a, err := s.Repo.GetByID(ctx, id, userID)
	if err != nil {
		return domain.Analysis{}, err
	}
	return a, nil
}

// History lists the user's past analyses as summaries, newest first.
func (s ResultService) History(ctx domain.Context, userID string) ([]domain.AnalysisSummary, error) {
	list, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("op=result.history: %w", err)
	}
	return list, nil
}
