package report

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"ezra/internal/models"
)

var ErrRenderFailed = errors.New("render report HTML failed")

// RenderOptions controls rendering. Now supplies the generation timestamp
// shown in the footer; nil means time.Now.
type RenderOptions struct {
	Now func() time.Time
}

// RenderHTML renders the canonical report data into a self-contained HTML
// document. Every slot's fragment is computed first and all substitutions
// are applied in a single pass, so the output is built whole in memory:
// there is no partial HTML on failure and no double substitution.
func RenderHTML(data *models.ReportData, opts RenderOptions) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: no report data", ErrRenderFailed)
	}
	if len(data.Goals) == 0 {
		return "", fmt.Errorf("%w: report data has no goals", ErrRenderFailed)
	}
	if len(data.Risks) == 0 {
		return "", fmt.Errorf("%w: report data has no risks", ErrRenderFailed)
	}

	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}

	counts := models.RiskCounts{}
	if data.RiskCounts != nil {
		counts = *data.RiskCounts
	}
	innovation := models.InnovationLevel{}
	if data.InnovationLevel != nil {
		innovation = *data.InnovationLevel
	}

	slots := map[string]string{
		"PROJECT_NAME":              html.EscapeString(data.ProjectName),
		"ORGANIZATION":              html.EscapeString(data.Organization),
		"PROJECT_MANAGER":           html.EscapeString(data.ProjectManager),
		"PROJECT_TYPE":              html.EscapeString(data.ProjectType),
		"PROJECT_SCOPE":             html.EscapeString(data.ProjectScope),
		"TIMELINE":                  html.EscapeString(data.Timeline),
		"REGULATORY_PARTNERS":       html.EscapeString(data.RegulatoryPartners),
		"GOALS_LIST":                goalsHTML(data.Goals),
		"DELIVERABLES_LIST":         deliverablesHTML(data.Deliverables),
		"RISK_COUNT_VERY_HIGH":      strconv.Itoa(counts.VeryHigh),
		"RISK_COUNT_HIGH":           strconv.Itoa(counts.High),
		"RISK_COUNT_MEDIUM":         strconv.Itoa(counts.Medium),
		"RISK_COUNT_LOW":            strconv.Itoa(counts.Low),
		"RISKS_CARDS":               risksHTML(data.Risks),
		"INNOVATION_SCORE":          formatScore(innovation.TotalScore),
		"INNOVATION_PEDAGOGICAL":    formatScore(innovation.PedagogicalImpact),
		"INNOVATION_TECHNOLOGICAL":  formatScore(innovation.TechnologicalComplexity),
		"INNOVATION_ORGANIZATIONAL": formatScore(innovation.OrganizationalChange),
		"INNOVATION_RISK":           formatScore(innovation.TechnologicalRisk),
		"INNOVATION_DESCRIPTION":    html.EscapeString(data.InnovationDescription),
		"INNOVATION_DEFINITION":     html.EscapeString(data.InnovationDefinition),
		"COMMITTEE_RECOMMENDATION":  html.EscapeString(data.CommitteeRecommendation),
		"EXECUTIVE_SUMMARY":         html.EscapeString(data.ExecutiveSummary),
		"RECOMMENDATIONS_LIST":      recommendationsHTML(data.Recommendations, data.Goals),
		"GENERATION_DATE":           now.Format("02.01.2006"),
		"GENERATION_TIME":           now.Format("15:04:05"),
	}

	pairs := make([]string, 0, len(slots)*2)
	for name, fragment := range slots {
		pairs = append(pairs, "{{"+name+"}}", fragment)
	}
	return strings.NewReplacer(pairs...).Replace(reportTemplate), nil
}

func goalsHTML(goals []models.Goal) string {
	var b strings.Builder
	for _, g := range goals {
		b.WriteString(`<div class="goal-item editable"><strong>`)
		b.WriteString(html.EscapeString(g.Title))
		b.WriteString(`</strong><br>`)
		b.WriteString(html.EscapeString(g.Description))
		b.WriteString(`</div>`)
	}
	return b.String()
}

func deliverablesHTML(deliverables []string) string {
	var b strings.Builder
	for _, d := range deliverables {
		b.WriteString(`<div class="deliverable-item editable"><strong>`)
		b.WriteString(html.EscapeString(d))
		b.WriteString(`</strong></div>`)
	}
	return b.String()
}

// risksHTML renders one styled card per risk. The visual class and label
// are recomputed from the severity score here rather than trusting the
// stored severityLevel string, so a card still classifies correctly when
// the model omitted severity.
func risksHTML(risks []models.Risk) string {
	var b strings.Builder
	for _, r := range risks {
		score := Score(r)
		b.WriteString(`<div class="risk-card ` + SeverityClass(score) + `">`)
		b.WriteString(`<div class="risk-header"><h3 class="risk-title editable">`)
		b.WriteString(html.EscapeString(r.Title))
		b.WriteString(`</h3><span class="risk-severity severity-` + strings.TrimPrefix(SeverityClass(score), "risk-") + ` editable">`)
		b.WriteString(SeverityLabel(score))
		b.WriteString(`</span></div>`)

		b.WriteString(`<div class="risk-metrics">`)
		writeMetric(&b, strconv.Itoa(r.Probability), "הסתברות")
		writeMetric(&b, strconv.Itoa(r.Impact), "נזק")
		writeMetric(&b, strconv.Itoa(score), "חומרה כוללת")
		b.WriteString(`</div>`)

		b.WriteString(`<div class="risk-description editable">`)
		b.WriteString(html.EscapeString(r.Description))
		b.WriteString(`</div>`)

		b.WriteString(`<div class="risk-impact"><div class="impact-title">השלכות פוטנציאליות:</div><ul class="impact-list">`)
		for _, impact := range r.Impacts {
			b.WriteString(`<li class="editable">` + html.EscapeString(impact) + `</li>`)
		}
		b.WriteString(`</ul></div>`)

		b.WriteString(`<div class="risk-opportunity"><div class="opportunity-title">הזדמנויות:</div><ul class="opportunity-list">`)
		for _, opp := range r.Opportunities {
			b.WriteString(`<li class="editable">` + html.EscapeString(opp) + `</li>`)
		}
		b.WriteString(`</ul></div>`)

		b.WriteString(`</div>`)
	}
	return b.String()
}

func writeMetric(b *strings.Builder, value, label string) {
	b.WriteString(`<div class="metric"><div class="metric-value editable">`)
	b.WriteString(value)
	b.WriteString(`</div><div class="metric-label">`)
	b.WriteString(label)
	b.WriteString(`</div></div>`)
}

// recommendationsHTML resolves each recommendation's linked goal title by
// id; an unmatched id leaves the reference blank.
func recommendationsHTML(recs []models.Recommendation, goals []models.Goal) string {
	titles := make(map[int]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
	}
	var b strings.Builder
	for _, rec := range recs {
		b.WriteString(`<div class="recommendation-item"><div class="recommendation-header"><strong>`)
		b.WriteString(html.EscapeString(rec.Title))
		b.WriteString(`</strong></div><div class="recommendation-content editable">`)
		b.WriteString(html.EscapeString(rec.Description))
		b.WriteString(`</div><div class="recommendation-goal"><small>קשור למטרה: `)
		b.WriteString(html.EscapeString(titles[rec.LinkedGoal]))
		b.WriteString(`</small></div></div>`)
	}
	return b.String()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
