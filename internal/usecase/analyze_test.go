package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-insight/internal/analyzer"
	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/usecase"
)

type stubRepo struct {
	created *domain.Analysis
	err     error
	stored  domain.Analysis
	getErr  error
}

func (r *stubRepo) Create(_ domain.Context, a domain.Analysis) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.created = &a
	return "generated-id", nil
}

func (r *stubRepo) GetByID(_ domain.Context, id, userID string) (domain.Analysis, error) {
	if r.getErr != nil {
		return domain.Analysis{}, r.getErr
	}
	if r.stored.ID != id || r.stored.UserID != userID {
		return domain.Analysis{}, domain.ErrNotFound
	}
	return r.stored, nil
}

func (r *stubRepo) ListByUser(_ domain.Context, userID string) ([]domain.AnalysisSummary, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored.UserID != userID {
		return []domain.AnalysisSummary{}, nil
	}
	return []domain.AnalysisSummary{{
		ID:            r.stored.ID,
		Filename:      r.stored.Filename,
		CombinedScore: r.stored.CombinedScore,
		CreatedAt:     r.stored.CreatedAt,
	}}, nil
}

type stubReviewer struct {
	review domain.AIReview
	err    error
	called bool
}

func (s *stubReviewer) Review(_ domain.Context, _ domain.ParsedProfile) (domain.AIReview, error) {
	s.called = true
	return s.review, s.err
}

// buildDOCX assembles a minimal in-memory .docx with one paragraph per line.
func buildDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(docxBody(lines)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func docxBody(lines []string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, ln := range lines {
		b.WriteString(`<w:p><w:r><w:t>` + ln + `</w:t></w:r></w:p>`)
	}
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func sampleDoc(t *testing.T) domain.RawDocument {
	return domain.RawDocument{
		Data: buildDOCX(t,
			"Jane Doe",
			"jane@x.com",
			"555-123-4567",
			"Experience",
			"Software Engineer at Acme",
			"Improved deployment speed by 40%",
			"Skills",
			"Python, React, AWS",
		),
		Format:   domain.FormatDOCX,
		Filename: "resume.docx",
	}
}

func newService(repo *stubRepo, rev domain.Reviewer) usecase.AnalyzeService {
	return usecase.NewAnalyzeService(analyzer.New(dictionary.Load()), repo, rev)
}

func TestAnalyze_PersistsHeuristicResult(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	svc := newService(repo, nil)

	a, err := svc.Analyze(context.Background(), "user-1", "resume.docx", sampleDoc(t))
	require.NoError(t, err)

	assert.Equal(t, "generated-id", a.ID)
	assert.Equal(t, "user-1", a.UserID)
	assert.Equal(t, "resume.docx", a.Filename)
	assert.Nil(t, a.Review)
	assert.Equal(t, a.Result.OverallScore, a.CombinedScore)
	require.NotNil(t, repo.created)
	assert.Equal(t, "jane@x.com", repo.created.Result.Profile.Personal.Email)
}

func TestAnalyze_CombinesReviewScore(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	rev := &stubReviewer{review: domain.AIReview{OverallScore: 90}}
	svc := newService(repo, rev)

	a, err := svc.Analyze(context.Background(), "user-1", "resume.docx", sampleDoc(t))
	require.NoError(t, err)

	assert.True(t, rev.called)
	require.NotNil(t, a.Review)
	// review weighted 0.6, heuristic 0.4
	want := 0.4*a.Result.OverallScore + 0.6*90
	assert.InDelta(t, want, a.CombinedScore, 0.01)
}

func TestAnalyze_ZeroScoreReviewDoesNotDilute(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	rev := &stubReviewer{review: domain.AIReview{OverallScore: 0, Fallback: true}}
	svc := newService(repo, rev)

	a, err := svc.Analyze(context.Background(), "user-1", "resume.docx", sampleDoc(t))
	require.NoError(t, err)

	require.NotNil(t, a.Review)
	assert.Equal(t, a.Result.OverallScore, a.CombinedScore)
}

func TestAnalyze_ReviewerErrorKeepsHeuristicResult(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	rev := &stubReviewer{err: errors.New("config broken")}
	svc := newService(repo, rev)

	a, err := svc.Analyze(context.Background(), "user-1", "resume.docx", sampleDoc(t))
	require.NoError(t, err)
	assert.Nil(t, a.Review)
	assert.Equal(t, a.Result.OverallScore, a.CombinedScore)
}

func TestAnalyze_ExtractionErrorSurfacesVerbatim(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{}
	svc := newService(repo, nil)

	_, err := svc.Analyze(context.Background(), "user-1", "notes.txt", domain.RawDocument{
		Data:   []byte("plain text"),
		Format: "txt",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Nil(t, repo.created)
}

func TestAnalyze_PersistError(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{err: errors.New("db down")}
	svc := newService(repo, nil)

	_, err := svc.Analyze(context.Background(), "user-1", "resume.docx", sampleDoc(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=analyze.persist")
}

func TestResultFetch_ScopedToUser(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{stored: domain.Analysis{ID: "a-1", UserID: "user-1"}}
	svc := usecase.NewResultService(repo)

	got, err := svc.Fetch(context.Background(), "a-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)

	_, err = svc.Fetch(context.Background(), "a-1", "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResultFetch_EmptyID(t *testing.T) {
	t.Parallel()
	svc := usecase.NewResultService(&stubRepo{})
	_, err := svc.Fetch(context.Background(), "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestResultHistory_ScopedToUser(t *testing.T) {
	t.Parallel()
	repo := &stubRepo{stored: domain.Analysis{ID: "a-1", UserID: "user-1", Filename: "resume.pdf", CombinedScore: 75.5}}
	svc := usecase.NewResultService(repo)

	list, err := svc.History(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a-1", list[0].ID)
	assert.Equal(t, "resume.pdf", list[0].Filename)
	assert.Equal(t, 75.5, list[0].CombinedScore)

	other, err := svc.History(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestResultHistory_RepoError(t *testing.T) {
	t.Parallel()
	svc := usecase.NewResultService(&stubRepo{getErr: errors.New("db down")})
	_, err := svc.History(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=result.history")
}
