package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ezra/internal/config"
	"ezra/internal/extract"
	"ezra/internal/models"
	"ezra/internal/pipeline"
	"ezra/internal/storage"
	"ezra/internal/util"
	"ezra/internal/validate"

	"github.com/google/uuid"
)

const (
	maxProjectNameLen = 200
	maxOrgLen         = 200
	maxDescriptionLen = 1000
	textPreviewRunes  = 200
	defaultPageLimit  = 10
	maxPageLimit      = 100
)

type Server struct {
	cfg      config.Config
	docs     storage.DocumentStore
	reports  storage.ReportStore
	pipeline *pipeline.Pipeline
	log      *slog.Logger
}

func NewServer(cfg config.Config, docs storage.DocumentStore, reports storage.ReportStore, pipe *pipeline.Pipeline, log *slog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		docs:     docs,
		reports:  reports,
		pipeline: pipe,
		log:      log,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/documents", s.handleDocuments)
	mux.HandleFunc("/documents/", s.handleDocumentsScoped)
	mux.HandleFunc("/reports", s.handleReports)
	mux.HandleFunc("/reports/", s.handleReportsScoped)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// documentView is the external shape of a document. The extracted text is
// never returned whole; readers get its length and, on the detail endpoint,
// a short preview.
type documentView struct {
	ID           string             `json:"id"`
	OriginalName string             `json:"originalName"`
	Size         int64              `json:"size"`
	MimeType     string             `json:"mimeType"`
	UploadTime   time.Time          `json:"uploadTime"`
	ProjectName  string             `json:"projectName,omitempty"`
	Organization string             `json:"organization,omitempty"`
	Description  string             `json:"description,omitempty"`
	Status       string             `json:"status"`
	TextLength   int                `json:"textLength"`
	TextPreview  string             `json:"textPreview,omitempty"`
	Validation   *models.Validation `json:"validation,omitempty"`
	Error        string             `json:"error,omitempty"`
}

func docView(doc models.Document, withPreview bool) documentView {
	v := documentView{
		ID:           doc.ID,
		OriginalName: doc.OriginalName,
		Size:         doc.Size,
		MimeType:     doc.MimeType,
		UploadTime:   doc.UploadTime,
		ProjectName:  doc.ProjectName,
		Organization: doc.Organization,
		Description:  doc.Description,
		Status:       doc.Status,
		TextLength:   len(doc.ExtractedText),
		Validation:   doc.Validation,
		Error:        doc.Error,
	}
	if withPreview {
		v.TextPreview = util.Preview(doc.ExtractedText, textPreviewRunes)
	}
	return v
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	s.handleUpload(w, r)
}

func (s *Server) handleDocumentsScoped(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/documents/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	doc, err := s.docs.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeErr(w, http.StatusNotFound, fmt.Errorf("document not found"))
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": docView(doc, true)})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	projectName := strings.TrimSpace(r.FormValue("projectName"))
	organization := strings.TrimSpace(r.FormValue("organization"))
	description := strings.TrimSpace(r.FormValue("description"))
	if len(projectName) > maxProjectNameLen {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("projectName exceeds %d characters", maxProjectNameLen))
		return
	}
	if len(organization) > maxOrgLen {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("organization exceeds %d characters", maxOrgLen))
		return
	}
	if len(description) > maxDescriptionLen {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("description exceeds %d characters", maxDescriptionLen))
		return
	}

	file, fh, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}

	doc := models.Document{
		ID:           uuid.NewString(),
		OriginalName: filepath.Base(fh.Filename),
		Size:         int64(len(data)),
		MimeType:     mimeType,
		UploadTime:   time.Now().UTC(),
		ProjectName:  projectName,
		Organization: organization,
		Description:  description,
		Status:       models.DocumentUploaded,
	}
	doc.StoredFilename = util.SHA256Hex(data)[:12] + "_" + doc.OriginalName

	if err := s.saveUpload(doc.StoredFilename, data); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	// Extraction and validation run synchronously; the document is stored
	// even when extraction fails so the failure is inspectable later.
	text, err := extract.Text(data, mimeType)
	if err != nil {
		doc.Status = models.DocumentError
		doc.Error = err.Error()
		s.log.Warn("document extraction failed", "documentId", doc.ID, "mimeType", mimeType, "error", err)
	} else {
		v := validate.Document(text)
		doc.Status = models.DocumentProcessed
		doc.ExtractedText = text
		doc.Validation = &v
	}

	if err := s.docs.Put(r.Context(), doc); err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("document uploaded", "documentId", doc.ID, "name", doc.OriginalName, "status", doc.Status, "textLength", len(doc.ExtractedText))

	writeJSON(w, http.StatusOK, map[string]any{
		"documentId": doc.ID,
		"document":   docView(doc, false),
	})
}

func (s *Server) saveUpload(storedName string, data []byte) error {
	if err := util.EnsureDir(s.cfg.UploadDir); err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}
	path := util.SafeJoin(s.cfg.UploadDir, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}
	return nil
}

// reportView is the external shape of a report. Content and the HTML flag
// appear only once generation has completed.
type reportView struct {
	ID           string             `json:"id"`
	DocumentID   string             `json:"documentId"`
	ProjectName  string             `json:"projectName,omitempty"`
	Organization string             `json:"organization,omitempty"`
	Status       string             `json:"status"`
	Progress     int                `json:"progress"`
	CreatedAt    time.Time          `json:"createdAt"`
	CompletedAt  *time.Time         `json:"completedAt,omitempty"`
	Content      *models.ReportData `json:"content,omitempty"`
	HasHTML      bool               `json:"hasHtml"`
	Error        string             `json:"error,omitempty"`
}

func reportDetailView(r models.Report) reportView {
	v := reportSummaryView(r)
	if r.Status == models.ReportCompleted {
		v.Content = r.Content
		v.HasHTML = r.HTMLContent != ""
	}
	return v
}

func reportSummaryView(r models.Report) reportView {
	return reportView{
		ID:           r.ID,
		DocumentID:   r.DocumentID,
		ProjectName:  r.ProjectName,
		Organization: r.Organization,
		Status:       r.Status,
		Progress:     r.Progress,
		CreatedAt:    r.CreatedAt,
		CompletedAt:  r.CompletedAt,
		Error:        r.Error,
	}
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleGenerate(w, r)
	case http.MethodGet:
		s.handleList(w, r)
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentID         string `json:"documentId"`
		ProjectName        string `json:"projectName"`
		Organization       string `json:"organization"`
		CustomInstructions string `json:"customInstructions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	id, err := s.pipeline.Start(r.Context(), pipeline.GenerateRequest{
		DocumentID:         strings.TrimSpace(req.DocumentID),
		ProjectName:        strings.TrimSpace(req.ProjectName),
		Organization:       strings.TrimSpace(req.Organization),
		CustomInstructions: strings.TrimSpace(req.CustomInstructions),
	})
	switch {
	case errors.Is(err, pipeline.ErrInvalidRequest):
		writeErr(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, storage.ErrNotFound):
		writeErr(w, http.StatusNotFound, fmt.Errorf("document not found"))
		return
	case errors.Is(err, pipeline.ErrNotProcessed):
		writeErr(w, http.StatusBadRequest, fmt.Errorf("document has no extracted text to analyze"))
		return
	case errors.Is(err, storage.ErrStoreFull):
		writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("report store is full, retry later"))
		return
	case err != nil:
		writeErr(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"reportId": id,
		"status":   models.ReportGenerating,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("page must be a positive integer"))
		return
	}
	limit, err := queryInt(r, "limit", defaultPageLimit)
	if err != nil || limit < 1 || limit > maxPageLimit {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("limit must be between 1 and %d", maxPageLimit))
		return
	}

	reports, total, err := s.reports.List(r.Context(), (page-1)*limit, limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]reportView, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportSummaryView(rep))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports": out,
		"pagination": map[string]any{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (s *Server) handleReportsScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/reports/"), "/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		s.handleReportStatus(w, r, id)
	case action == "export" && r.Method == http.MethodPost:
		s.handleExport(w, r, id)
	case action == "":
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request, id string) {
	rep, err := s.reports.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeErr(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"report": reportDetailView(rep)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Format string `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "html":
	case "pdf":
		writeErr(w, http.StatusNotImplemented, fmt.Errorf("pdf export is not implemented"))
		return
	default:
		writeErr(w, http.StatusBadRequest, fmt.Errorf("unsupported export format %q", req.Format))
		return
	}

	rep, err := s.reports.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeErr(w, http.StatusNotFound, fmt.Errorf("report not found"))
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if rep.Status != models.ReportCompleted || rep.HTMLContent == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("report is not completed"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+rep.ID+".html"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rep.HTMLContent))
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    errCode(code),
			"message": msg,
		},
	})
}

func errCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "EZ-API-4001"
	case http.StatusNotFound:
		return "EZ-API-4004"
	case http.StatusMethodNotAllowed:
		return "EZ-API-4005"
	case http.StatusNotImplemented:
		return "EZ-API-5010"
	case http.StatusServiceUnavailable:
		return "EZ-API-5030"
	default:
		return "EZ-API-5000"
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
