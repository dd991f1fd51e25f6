package httpserver_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-insight/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-insight/internal/analyzer"
	"github.com/fairyhunter13/resume-insight/internal/config"
	"github.com/fairyhunter13/resume-insight/internal/dictionary"
	"github.com/fairyhunter13/resume-insight/internal/domain"
	"github.com/fairyhunter13/resume-insight/internal/usecase"
)

type memRepo struct {
	byID map[string]domain.Analysis
	next int
	err  error
}

func newMemRepo() *memRepo { return &memRepo{byID: map[string]domain.Analysis{}} }

func (r *memRepo) Create(_ domain.Context, a domain.Analysis) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.next++
	a.ID = "a-" + string(rune('0'+r.next))
	r.byID[a.ID] = a
	return a.ID, nil
}

func (r *memRepo) GetByID(_ domain.Context, id, userID string) (domain.Analysis, error) {
	a, ok := r.byID[id]
	if !ok || a.UserID != userID {
		return domain.Analysis{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *memRepo) ListByUser(_ domain.Context, userID string) ([]domain.AnalysisSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.AnalysisSummary, 0)
	for _, a := range r.byID {
		if a.UserID != userID {
			continue
		}
		out = append(out, domain.AnalysisSummary{
			ID:            a.ID,
			Filename:      a.Filename,
			CombinedScore: a.CombinedScore,
			CreatedAt:     a.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func newTestServer(repo domain.AnalysisRepository) *httpserver.Server {
	cfg := config.Config{MaxUploadMB: 10}
	a := analyzer.New(dictionary.Load())
	return httpserver.NewServer(cfg,
		usecase.NewAnalyzeService(a, repo, nil),
		usecase.NewResultService(repo),
		nil,
	)
}

// buildDOCX assembles a minimal in-memory .docx with one paragraph per line.
func buildDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + docxParas(lines) + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func docxParas(lines []string) string {
	var b bytes.Buffer
	for _, ln := range lines {
		b.WriteString(`<w:p><w:r><w:t>` + ln + `</w:t></w:r></w:p>`)
	}
	return b.String()
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postResume(t *testing.T, srv *httpserver.Server, filename string, data []byte, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, "resume", filename, data)
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "user-1")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)
	return rec
}

func validResume(t *testing.T) []byte {
	return buildDOCX(t,
		"Jane Doe",
		"jane@x.com",
		"555-123-4567",
		"Experience",
		"Software Engineer at Acme",
		"Improved deployment speed by 40%",
		"Skills",
		"Python, React, AWS",
	)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	t.Parallel()
	repo := newMemRepo()
	srv := newTestServer(repo)

	rec := postResume(t, srv, "resume.docx", validResume(t), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "resume.docx", got.Filename)
	assert.Equal(t, "jane@x.com", got.Result.Profile.Personal.Email)
	assert.GreaterOrEqual(t, got.Result.OverallScore, 0.0)
	assert.LessOrEqual(t, got.Result.OverallScore, 100.0)
}

func TestAnalyzeHandler_MissingUserHeader(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	body, contentType := multipartBody(t, "resume", "resume.docx", validResume(t))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "X-User-Id")
}

func TestAnalyzeHandler_UnsupportedExtension(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	rec := postResume(t, srv, "resume.txt", []byte("plain text resume"), nil)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestAnalyzeHandler_ContentSniffRejectsFakeDocx(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	// Plain text with a .docx extension fails the mimetype allowlist.
	rec := postResume(t, srv, "resume.docx", []byte("just plain text, no zip"), nil)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestAnalyzeHandler_CorruptDocxIs422(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	// A zip without word/document.xml passes sniffing but fails extraction.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("unrelated.txt")
	require.NoError(t, err)
	_, _ = f.Write([]byte("nothing"))
	require.NoError(t, zw.Close())

	rec := postResume(t, srv, "resume.docx", buf.Bytes(), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EXTRACTION_FAILURE")
}

func TestAnalyzeHandler_EmptyDocxIs422(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	rec := postResume(t, srv, "resume.docx", buildDOCX(t, "", ""), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_EXTRACTION")
}

func TestAnalyzeHandler_MissingFile(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	body, contentType := multipartBody(t, "wrongfield", "resume.docx", validResume(t))
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "resume file required")
}

func TestAnalyzeHandler_NotAcceptable(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	rec := postResume(t, srv, "resume.docx", validResume(t), map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestResultHandler_RoundTrip(t *testing.T) {
	t.Parallel()
	repo := newMemRepo()
	srv := newTestServer(repo)

	rec := postResume(t, srv, "resume.docx", validResume(t), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/"+created.ID, nil)
	req.Header.Set("X-User-Id", "user-1")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	getRec := httptest.NewRecorder()
	srv.ResultHandler()(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)
	var got domain.Analysis
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Result.OverallScore, got.Result.OverallScore)
}

func TestResultHandler_OtherUsersRecordIs404(t *testing.T) {
	t.Parallel()
	repo := newMemRepo()
	srv := newTestServer(repo)

	rec := postResume(t, srv, "resume.docx", validResume(t), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes/"+created.ID, nil)
	req.Header.Set("X-User-Id", "intruder")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", created.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	getRec := httptest.NewRecorder()
	srv.ResultHandler()(getRec, req)

	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestHistoryHandler_ListsOwnAnalysesOnly(t *testing.T) {
	t.Parallel()
	repo := newMemRepo()
	srv := newTestServer(repo)

	require.Equal(t, http.StatusCreated, postResume(t, srv, "resume.docx", validResume(t), nil).Code)
	require.Equal(t, http.StatusCreated, postResume(t, srv, "resume-v2.docx", validResume(t), nil).Code)
	require.Equal(t, http.StatusCreated,
		postResume(t, srv, "other.docx", validResume(t), map[string]string{"X-User-Id": "user-2"}).Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	srv.HistoryHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Analyses []domain.AnalysisSummary `json:"analyses"`
		Count    int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Analyses, 2)
	filenames := []string{got.Analyses[0].Filename, got.Analyses[1].Filename}
	assert.ElementsMatch(t, []string{"resume.docx", "resume-v2.docx"}, filenames)
	for _, s := range got.Analyses {
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.CreatedAt.IsZero())
	}
}

func TestHistoryHandler_EmptyList(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	req := httptest.NewRequest(http.MethodGet, "/v1/resumes", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	srv.HistoryHandler()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analyses":[],"count":0}`, rec.Body.String())
}

func TestHistoryHandler_MissingUserHeader(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())

	rec := httptest.NewRecorder()
	srv.HistoryHandler()(rec, httptest.NewRequest(http.MethodGet, "/v1/resumes", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyzHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())
	srv.DBCheck = func(context.Context) error { return nil }

	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.DBCheck = func(context.Context) error { return errors.New("db down") }
	rec = httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthzHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(newMemRepo())
	rec := httptest.NewRecorder()
	srv.HealthzHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
