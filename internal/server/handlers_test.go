package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rafael/resume-match/internal/match"
	"github.com/rafael/resume-match/internal/presets"
	"github.com/rafael/resume-match/internal/types"
)

type fixedAnalyzer struct {
	result *match.Result
}

func (f fixedAnalyzer) Analyze(_ context.Context, _ *types.Job, _ string) (*match.Result, error) {
	return f.result, nil
}

func fixtureLibrary(t *testing.T) *presets.Library {
	t.Helper()
	dir := t.TempDir()

	jobFile := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(jobFile, []byte(`{"id": "job-default", "title": "Engineer"}`), 0o644))

	resumeDir := filepath.Join(dir, "cvs")
	require.NoError(t, os.Mkdir(resumeDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(resumeDir, "candidate_cv_joao_santos.md"),
		[]byte("# João Santos"), 0o644))

	return presets.NewLibrary(jobFile, resumeDir)
}

func newTestServer(t *testing.T, analyzer match.Analyzer) *Server {
	t.Helper()
	if analyzer == nil {
		analyzer = fixedAnalyzer{result: &match.Result{
			Analysis: types.Analysis{
				OverallScore:  88,
				MatchedSkills: []string{"node.js"},
				MissingSkills: []string{"kubernetes"},
				Insights:      "Boa aderência.",
				Strengths:     []string{"node.js"},
				Gaps:          []string{"kubernetes"},
			},
			Source: types.SourceOpenAI,
		}}
	}

	service := match.NewService(match.NewStore(), analyzer, zap.NewNop())
	return New(Config{
		Host:             "127.0.0.1",
		Port:             0,
		CORSOrigins:      []string{"*"},
		OpenAIConfigured: true,
	}, service, fixtureLibrary(t), zap.NewNop())
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const matchBody = `{
	"job": {"id": "j1", "title": "Engineer", "keywords": ["node.js"]},
	"resumeMarkdown": "# Resume\n\nNode.js developer.",
	"candidate": {"id": "cand-1", "name": "João Santos"}
}`

func TestCreateMatch_ReturnsSummary(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/api/match", matchBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summary types.MatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "cand-1", summary.CandidateID)
	assert.Equal(t, "João Santos", summary.CandidateName)
	assert.Equal(t, "j1", summary.JobID)
	assert.Equal(t, 88, summary.OverallScore)
	assert.Equal(t, types.SourceOpenAI, summary.AnalysisSource)
	assert.False(t, summary.CreatedAt.IsZero())

	// The summary must not leak the full report fields.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "resumeMarkdown")
	assert.NotContains(t, raw, "job")
}

func TestCreateMatch_RejectsMalformedBody(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/api/match", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request payload", body.Message)
	require.NotEmpty(t, body.Issues)
	assert.Equal(t, "(body)", body.Issues[0].Path)
}

func TestCreateMatch_RejectsMissingFields(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodPost, "/api/match", `{"resumeMarkdown": ""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request payload", body.Message)

	paths := make([]string, 0, len(body.Issues))
	for _, issue := range body.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "job")
	assert.Contains(t, paths, "resumeMarkdown")
}

func TestCreateMatch_RejectsInvalidJob(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	body := `{"job": {"description": "no id or title"}, "resumeMarkdown": "# Resume"}`
	rec := doRequest(t, handler, http.MethodPost, "/api/match", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var parsed errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	paths := make([]string, 0, len(parsed.Issues))
	for _, issue := range parsed.Issues {
		paths = append(paths, issue.Path)
	}
	assert.Contains(t, paths, "job.id")
	assert.Contains(t, paths, "job.title")
}

func TestListMatches(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/match", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	require.Equal(t, http.StatusCreated,
		doRequest(t, handler, http.MethodPost, "/api/match", matchBody).Code)
	require.Equal(t, http.StatusCreated,
		doRequest(t, handler, http.MethodPost, "/api/match", matchBody).Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/match", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []types.MatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.False(t, summaries[0].CreatedAt.Before(summaries[1].CreatedAt))
}

func TestMatchReport(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	created := doRequest(t, handler, http.MethodPost, "/api/match", matchBody)
	require.Equal(t, http.StatusCreated, created.Code)

	var summary types.MatchSummary
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &summary))

	rec := doRequest(t, handler, http.MethodGet, "/api/match/report/"+summary.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, summary.ID, report.ID)
	assert.Equal(t, "# Resume\n\nNode.js developer.", report.ResumeMarkdown)
	require.NotNil(t, report.Job)
	assert.Equal(t, "Engineer", report.Job.Title)
	assert.Equal(t, []string{"node.js"}, report.MatchedSkills)
}

func TestMatchReport_NotFound(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/match/report/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Match result not found", body.Message)
}

func TestStatus(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ai": {"openaiConfigured": true}}`, rec.Body.String())
}

func TestDefaultJobPreset(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/presets/job", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var job types.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "job-default", job.ID)
	assert.Equal(t, "Engineer", job.Title)
}

func TestPresetResumes(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/api/presets/resumes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resumes []presets.PresetResume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resumes))
	require.Len(t, resumes, 1)
	assert.Equal(t, "Joao Santos", resumes[0].Label)
	assert.Contains(t, resumes[0].Markdown, "João Santos")
}

func TestHealth(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	rec := doRequest(t, handler, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestCORS_AllowAll(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	handler := newTestServer(t, nil).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/match", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_SpecificOrigin(t *testing.T) {
	service := match.NewService(match.NewStore(), fixedAnalyzer{result: &match.Result{Source: types.SourceOpenAI}}, zap.NewNop())
	srv := New(Config{
		CORSOrigins: []string{"https://app.example.com"},
	}, service, fixtureLibrary(t), zap.NewNop())
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
