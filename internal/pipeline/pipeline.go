package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ezra/internal/config"
	"ezra/internal/models"
	"ezra/internal/providers"
	"ezra/internal/report"
	"ezra/internal/storage"
	"ezra/internal/util"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const (
	maxProjectNameLen  = 200
	maxOrgLen          = 200
	maxInstructionsLen = 1000
)

var (
	ErrInvalidRequest = errors.New("invalid generation request")
	// ErrNotProcessed means the document exists but has no extracted text
	// to analyze, either because extraction failed or has not run.
	ErrNotProcessed = errors.New("document has no extracted text")
)

// GenerateRequest asks for a new report over an already-uploaded document.
type GenerateRequest struct {
	DocumentID         string
	ProjectName        string
	Organization       string
	CustomInstructions string
}

// Pipeline drives report generation: prompt construction, the model call,
// response parsing and HTML rendering. Runs are detached from the request
// that started them; progress is observed by polling the report store.
type Pipeline struct {
	docs     storage.DocumentStore
	reports  storage.ReportStore
	provider providers.LLMProvider
	sem      *semaphore.Weighted
	log      *slog.Logger

	deadline time.Duration
	outRoot  string // artifact directory, empty disables artifacts
	now      func() time.Time

	wg sync.WaitGroup
}

func New(docs storage.DocumentStore, reports storage.ReportStore, provider providers.LLMProvider, log *slog.Logger, cfg config.Config) *Pipeline {
	maxConcurrent := cfg.MaxConcurrentLLM
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	deadline := cfg.ReportDeadline
	if deadline <= 0 {
		deadline = 5 * time.Minute
	}
	return &Pipeline{
		docs:     docs,
		reports:  reports,
		provider: provider,
		sem:      semaphore.NewWeighted(maxConcurrent),
		log:      log,
		deadline: deadline,
		outRoot:  cfg.DataOutRoot,
		now:      time.Now,
	}
}

// Start validates the request, creates the report record and spawns the
// detached run. It returns the new report id. Precondition failures
// (unknown document, no extracted text) are returned synchronously and
// leave no record behind.
func (p *Pipeline) Start(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.DocumentID) == "" {
		return "", fmt.Errorf("%w: documentId is required", ErrInvalidRequest)
	}
	if len(req.ProjectName) > maxProjectNameLen {
		return "", fmt.Errorf("%w: projectName exceeds %d characters", ErrInvalidRequest, maxProjectNameLen)
	}
	if len(req.Organization) > maxOrgLen {
		return "", fmt.Errorf("%w: organization exceeds %d characters", ErrInvalidRequest, maxOrgLen)
	}
	if len(req.CustomInstructions) > maxInstructionsLen {
		return "", fmt.Errorf("%w: customInstructions exceeds %d characters", ErrInvalidRequest, maxInstructionsLen)
	}

	doc, err := p.docs.Get(ctx, req.DocumentID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(doc.ExtractedText) == "" {
		return "", ErrNotProcessed
	}

	projectName := req.ProjectName
	if projectName == "" {
		projectName = doc.ProjectName
	}
	organization := req.Organization
	if organization == "" {
		organization = doc.Organization
	}

	r := models.Report{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		ProjectName:  projectName,
		Organization: organization,
		Status:       models.ReportGenerating,
		Progress:     10,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.reports.Create(ctx, r); err != nil {
		return "", fmt.Errorf("create report record: %w", err)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(r.ID, doc, req)
	}()

	return r.ID, nil
}

// Wait blocks until every in-flight run has finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// run executes the stages for one report. It uses a background context so
// the run survives the originating HTTP request, bounded by the per-report
// deadline.
func (p *Pipeline) run(id string, doc models.Document, req GenerateRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), p.deadline)
	defer cancel()

	log := p.log.With("reportId", id, "documentId", doc.ID)
	started := p.now()

	if err := p.setStage(ctx, id, models.ReportAnalyzing, 10); err != nil {
		p.fail(id, log, models.ReportAnalyzing, err)
		return
	}
	prompt := report.BuildPrompt(doc.ExtractedText, report.Options{
		ProjectName:        firstNonEmpty(req.ProjectName, doc.ProjectName),
		Organization:       firstNonEmpty(req.Organization, doc.Organization),
		CustomInstructions: req.CustomInstructions,
	})

	if err := p.setStage(ctx, id, models.ReportCallingClaude, 20); err != nil {
		p.fail(id, log, models.ReportCallingClaude, err)
		return
	}
	raw, info, err := p.generate(ctx, prompt)
	if err != nil {
		p.fail(id, log, "model call", err)
		return
	}
	log.Info("model response received", "provider", info.Name, "model", info.Model, "chars", len(raw))

	if err := p.setStage(ctx, id, models.ReportParsing, 60); err != nil {
		p.fail(id, log, models.ReportParsing, err)
		return
	}
	data, err := report.ParseResponse(raw)
	if err != nil {
		p.fail(id, log, "parse response", err)
		return
	}

	if err := p.setStage(ctx, id, models.ReportGeneratingHTML, 80); err != nil {
		p.fail(id, log, models.ReportGeneratingHTML, err)
		return
	}
	html, err := report.RenderHTML(data, report.RenderOptions{Now: p.now})
	if err != nil {
		p.fail(id, log, "render html", err)
		return
	}

	completedAt := p.now().UTC()
	err = p.reports.Update(ctx, id, func(r *models.Report) error {
		r.Status = models.ReportCompleted
		r.Progress = 100
		r.Content = data
		r.HTMLContent = html
		r.CompletedAt = &completedAt
		r.Error = ""
		return nil
	})
	if err != nil {
		p.fail(id, log, "persist completion", err)
		return
	}
	p.writeArtifacts(id, data, html, log)
	log.Info("report completed", "elapsed", p.now().Sub(started).Round(time.Millisecond))
}

// generate performs the rate-limited model call. The semaphore is held only
// for the duration of the call itself.
func (p *Pipeline) generate(ctx context.Context, prompt string) (string, providers.ProviderInfo, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", providers.ProviderInfo{}, fmt.Errorf("waiting for generation slot: %w", err)
	}
	defer p.sem.Release(1)

	resp, info, err := p.provider.Generate(ctx, providers.GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", info, err
	}
	return resp.Text, info, nil
}

func (p *Pipeline) setStage(ctx context.Context, id, status string, progress int) error {
	return p.reports.Update(ctx, id, func(r *models.Report) error {
		r.Status = status
		r.Progress = progress
		return nil
	})
}

// fail marks the report as failed. Progress resets to 0 and a short
// message replaces anything staged so far; no partial content survives.
func (p *Pipeline) fail(id string, log *slog.Logger, stage string, cause error) {
	msg := failureMessage(cause)
	log.Error("report generation failed", "stage", stage, "error", cause)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := p.reports.Update(ctx, id, func(r *models.Report) error {
		r.Status = models.ReportError
		r.Progress = 0
		r.Error = msg
		r.Content = nil
		r.HTMLContent = ""
		return nil
	})
	if err != nil {
		log.Error("persist failure state failed", "error", err)
	}
}

// failureMessage maps an internal error to the short user-facing message
// stored on the report.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, providers.ErrRateLimited):
		return "model provider rate limit exceeded, try again later"
	case errors.Is(err, providers.ErrUnauthorized):
		return "model provider rejected the API credentials"
	case errors.Is(err, providers.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "model call timed out"
	case errors.Is(err, providers.ErrEmptyResponse):
		return "model returned an empty response"
	case errors.Is(err, report.ErrNoJSONFound):
		return "model response contained no JSON report"
	case errors.Is(err, report.ErrMalformedJSON):
		return "model response JSON could not be parsed"
	case errors.Is(err, report.ErrSchemaViolation):
		return "model response did not match the report schema"
	case errors.Is(err, report.ErrRenderFailed):
		return "report HTML rendering failed"
	default:
		return "report generation failed"
	}
}

// writeArtifacts persists the generated report to disk for inspection.
// Best effort: a write failure is logged and does not fail the report.
func (p *Pipeline) writeArtifacts(id string, data *models.ReportData, html string, log *slog.Logger) {
	if p.outRoot == "" {
		return
	}
	dir := filepath.Join(p.outRoot, "reports")
	if err := util.EnsureDir(dir); err != nil {
		log.Warn("artifact dir unavailable", "error", err)
		return
	}
	if err := util.WriteTextAtomic(filepath.Join(dir, id+".html"), html); err != nil {
		log.Warn("write html artifact failed", "error", err)
	}
	if err := util.WriteJSONAtomic(filepath.Join(dir, id+".json"), data); err != nil {
		log.Warn("write json artifact failed", "error", err)
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
