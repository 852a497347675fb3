package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"ezra/internal/config"
	"ezra/internal/models"
	"ezra/internal/pipeline"
	"ezra/internal/providers"
	"ezra/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	srv     *httptest.Server
	pipe    *pipeline.Pipeline
	docs    *storage.MemoryDocumentStore
	reports *storage.MemoryReportStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		UploadDir:        t.TempDir(),
		MaxUploadBytes:   10 << 20,
		MaxConcurrentLLM: 2,
		ReportDeadline:   10 * time.Second,
	}
	docs := storage.NewMemoryDocumentStore()
	reports := storage.NewMemoryReportStore(100)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipe := pipeline.New(docs, reports, providers.NewMockProvider(), log, cfg)
	srv := httptest.NewServer(NewServer(cfg, docs, reports, pipe, log).Routes())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, pipe: pipe, docs: docs, reports: reports}
}

// hebrewConceptText is a well-formed concept document: over 100 words,
// names goals and a timeline.
func hebrewConceptText() string {
	var b strings.Builder
	b.WriteString("מסמך ייזום לפרויקט כיתה דיגיטלית.\n\n")
	b.WriteString("מטרות הפרויקט: שיפור הישגי התלמידים ושילוב טכנולוגיה בהוראה.\n\n")
	b.WriteString("לוח זמנים: הפרויקט יימשך שנתיים החל מספטמבר.\n\n")
	for i := 0; i < 60; i++ {
		b.WriteString("תוכן נוסף על אודות הפעילות המתוכננת בבית הספר. ")
	}
	return b.String()
}

func uploadBody(t *testing.T, fields map[string]string, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, fields map[string]string, filename, contentType string, data []byte) (int, map[string]any) {
	t.Helper()
	body, ct := uploadBody(t, fields, filename, contentType, data)
	resp, err := http.Post(e.srv.URL+"/documents", ct, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (e *testEnv) postJSON(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(e.srv.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (e *testEnv) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(e.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func errMessage(out map[string]any) string {
	e, _ := out["error"].(map[string]any)
	msg, _ := e["message"].(string)
	return msg
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	code, out := e.getJSON(t, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["ok"])
}

func TestUploadPlainTextDocument(t *testing.T) {
	e := newTestEnv(t)
	code, out := e.upload(t, map[string]string{
		"projectName":  "כיתה דיגיטלית",
		"organization": "משרד החינוך",
	}, "concept.txt", "text/plain", []byte(hebrewConceptText()))

	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, out["documentId"])

	doc, ok := out["document"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "processed", doc["status"])
	assert.Greater(t, doc["textLength"].(float64), float64(0))
	assert.Empty(t, doc["textPreview"], "upload response carries no preview")

	// Goals and timeline are present, scope is not: validation should warn
	// about scope only.
	validation, ok := doc["validation"].(map[string]any)
	require.True(t, ok)
	stats := validation["statistics"].(map[string]any)
	assert.Equal(t, true, stats["hasGoals"])
	assert.Equal(t, true, stats["hasTimeline"])
	assert.Equal(t, false, stats["hasScope"])
}

func TestUploadUnsupportedFormatStoredWithError(t *testing.T) {
	e := newTestEnv(t)
	code, out := e.upload(t, nil, "photo.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})

	require.Equal(t, http.StatusOK, code)
	doc := out["document"].(map[string]any)
	assert.Equal(t, "error", doc["status"])
	assert.Contains(t, doc["error"], "unsupported")
}

func TestUploadMissingFile(t *testing.T) {
	e := newTestEnv(t)
	code, out := e.upload(t, map[string]string{"projectName": "x"}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errMessage(out), "file is required")
}

func TestUploadFieldTooLong(t *testing.T) {
	e := newTestEnv(t)
	code, _ := e.upload(t, map[string]string{
		"description": strings.Repeat("x", 1001),
	}, "concept.txt", "text/plain", []byte(hebrewConceptText()))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetDocumentPreview(t *testing.T) {
	e := newTestEnv(t)
	_, out := e.upload(t, nil, "concept.txt", "text/plain", []byte(hebrewConceptText()))
	id := out["documentId"].(string)

	code, out := e.getJSON(t, "/documents/"+id)
	require.Equal(t, http.StatusOK, code)
	doc := out["document"].(map[string]any)

	preview := doc["textPreview"].(string)
	assert.NotEmpty(t, preview)
	assert.Less(t, len([]rune(preview)), 210, "preview is capped, never the full text")

	code, _ = e.getJSON(t, "/documents/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGenerateUnknownDocument(t *testing.T) {
	e := newTestEnv(t)
	code, out := e.postJSON(t, "/reports", map[string]any{"documentId": "missing"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, errMessage(out), "not found")
}

func TestGenerateUnprocessedDocument(t *testing.T) {
	e := newTestEnv(t)
	_, out := e.upload(t, nil, "photo.png", "image/png", []byte{0x89})
	id := out["documentId"].(string)

	code, out := e.postJSON(t, "/reports", map[string]any{"documentId": id})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errMessage(out), "no extracted text")

	// The failed request must not leave a report behind.
	code, out = e.getJSON(t, "/reports")
	require.Equal(t, http.StatusOK, code)
	pagination := out["pagination"].(map[string]any)
	assert.Equal(t, float64(0), pagination["total"])
}

func TestGenerateAndPoll(t *testing.T) {
	e := newTestEnv(t)
	_, out := e.upload(t, nil, "concept.txt", "text/plain", []byte(hebrewConceptText()))
	docID := out["documentId"].(string)

	code, out := e.postJSON(t, "/reports", map[string]any{
		"documentId":  docID,
		"projectName": "פרויקט חדשנות",
	})
	require.Equal(t, http.StatusAccepted, code)
	reportID := out["reportId"].(string)
	assert.Equal(t, "generating", out["status"])

	e.pipe.Wait()

	code, out = e.getJSON(t, "/reports/"+reportID)
	require.Equal(t, http.StatusOK, code)
	rep := out["report"].(map[string]any)
	assert.Equal(t, "completed", rep["status"])
	assert.Equal(t, float64(100), rep["progress"])
	assert.Equal(t, true, rep["hasHtml"])
	assert.NotNil(t, rep["content"])
	assert.NotNil(t, rep["completedAt"])
}

func TestExportFormats(t *testing.T) {
	e := newTestEnv(t)
	_, out := e.upload(t, nil, "concept.txt", "text/plain", []byte(hebrewConceptText()))
	docID := out["documentId"].(string)
	_, out = e.postJSON(t, "/reports", map[string]any{"documentId": docID})
	reportID := out["reportId"].(string)
	e.pipe.Wait()

	// pdf export is a distinct not-implemented, never a generic failure.
	code, out := e.postJSON(t, "/reports/"+reportID+"/export", map[string]any{"format": "pdf"})
	assert.Equal(t, http.StatusNotImplemented, code)
	assert.Contains(t, errMessage(out), "pdf export is not implemented")

	code, _ = e.postJSON(t, "/reports/"+reportID+"/export", map[string]any{"format": "docx"})
	assert.Equal(t, http.StatusBadRequest, code)

	// html export returns the stored document verbatim.
	body, err := json.Marshal(map[string]any{"format": "html"})
	require.NoError(t, err)
	resp, err := http.Post(e.srv.URL+"/reports/"+reportID+"/export", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	html, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	stored, err := e.reports.Get(context.Background(), reportID)
	require.NoError(t, err)
	assert.Equal(t, stored.HTMLContent, string(html))
}

func TestExportIncompleteReport(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.reports.Create(context.Background(), models.Report{
		ID:     "r1",
		Status: models.ReportGenerating,
	}))

	code, _ := e.postJSON(t, "/reports/r1/export", map[string]any{"format": "html"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = e.postJSON(t, "/reports/missing/export", map[string]any{"format": "html"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestListPagination(t *testing.T) {
	e := newTestEnv(t)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, e.reports.Create(context.Background(), models.Report{
			ID:        id,
			Status:    models.ReportCompleted,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	code, out := e.getJSON(t, "/reports?page=1&limit=2")
	require.Equal(t, http.StatusOK, code)
	reports := out["reports"].([]any)
	require.Len(t, reports, 2)
	assert.Equal(t, "r3", reports[0].(map[string]any)["id"], "newest first")
	pagination := out["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["total"])

	// List summaries never include content.
	_, hasContent := reports[0].(map[string]any)["content"]
	assert.False(t, hasContent)

	code, _ = e.getJSON(t, "/reports?limit=0")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = e.getJSON(t, "/reports?page=abc")
	assert.Equal(t, http.StatusBadRequest, code)
}
