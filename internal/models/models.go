package models

import "time"

// Document statuses.
const (
	DocumentUploaded  = "uploaded"
	DocumentProcessed = "processed"
	DocumentError     = "error"
)

// Report statuses. The generating->completed sequence carries fixed
// progress checkpoints; error is terminal with progress reset to 0.
const (
	ReportGenerating     = "generating"
	ReportAnalyzing      = "analyzing"
	ReportCallingClaude  = "processing_with_claude"
	ReportParsing        = "parsing_response"
	ReportGeneratingHTML = "generating_html"
	ReportCompleted      = "completed"
	ReportError          = "error"
)

type Document struct {
	ID             string      `json:"id"`
	OriginalName   string      `json:"original_name"`
	StoredFilename string      `json:"stored_filename"`
	Size           int64       `json:"size"`
	MimeType       string      `json:"mime_type"`
	UploadTime     time.Time   `json:"upload_time"`
	ProjectName    string      `json:"project_name,omitempty"`
	Organization   string      `json:"organization,omitempty"`
	Description    string      `json:"description,omitempty"`
	Status         string      `json:"status"`
	ExtractedText  string      `json:"extracted_text,omitempty"`
	Validation     *Validation `json:"validation,omitempty"`
	Error          string      `json:"error,omitempty"`
}

type Validation struct {
	IsValid     bool           `json:"isValid"`
	Warnings    []string       `json:"warnings"`
	Suggestions []string       `json:"suggestions"`
	Statistics  TextStatistics `json:"statistics"`
}

type TextStatistics struct {
	WordCount      int  `json:"wordCount"`
	ParagraphCount int  `json:"paragraphCount"`
	HasGoals       bool `json:"hasGoals"`
	HasTimeline    bool `json:"hasTimeline"`
	HasScope       bool `json:"hasScope"`
}

type Report struct {
	ID           string      `json:"id"`
	DocumentID   string      `json:"document_id"`
	ProjectName  string      `json:"project_name"`
	Organization string      `json:"organization"`
	Status       string      `json:"status"`
	Progress     int         `json:"progress"`
	CreatedAt    time.Time   `json:"created_at"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	Content      *ReportData `json:"content,omitempty"`
	HTMLContent  string      `json:"html_content,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// Terminal reports whether no further state transitions can occur.
func (r Report) Terminal() bool {
	return r.Status == ReportCompleted || r.Status == ReportError
}

// ReportData is the canonical parsed model output. Field tags mirror the
// JSON schema the prompt instructs the model to emit.
type ReportData struct {
	ProjectName        string `json:"projectName"`
	Organization       string `json:"organization"`
	ProjectManager     string `json:"projectManager,omitempty"`
	ProjectScope       string `json:"projectScope,omitempty"`
	Timeline           string `json:"timeline,omitempty"`
	ProjectType        string `json:"projectType,omitempty"`
	RegulatoryPartners string `json:"regulatoryPartners,omitempty"`

	Goals        []Goal   `json:"goals"`
	Deliverables []string `json:"deliverables,omitempty"`
	Risks        []Risk   `json:"risks"`

	Strategies []Strategy `json:"strategies,omitempty"`

	InnovationLevel       *InnovationLevel `json:"innovationLevel,omitempty"`
	InnovationDescription string           `json:"innovationDescription,omitempty"`
	InnovationDefinition  string           `json:"innovationDefinition,omitempty"`

	CommitteeRecommendation string                 `json:"committeeRecommendation,omitempty"`
	RegulatoryCompliance    []RegulatoryCompliance `json:"regulatoryCompliance,omitempty"`
	ExecutiveSummary        string                 `json:"executiveSummary,omitempty"`
	Recommendations         []Recommendation       `json:"recommendations,omitempty"`
	RiskCounts              *RiskCounts            `json:"riskCounts,omitempty"`
}

type Goal struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Risk struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	LinkedGoal      int      `json:"linkedGoal"`
	LinkedGoalTitle string   `json:"linkedGoalTitle,omitempty"`
	Probability     int      `json:"probability"`
	Impact          int      `json:"impact"`
	Severity        int      `json:"severity,omitempty"`
	SeverityLevel   string   `json:"severityLevel,omitempty"`
	Description     string   `json:"description"`
	Impacts         []string `json:"impacts,omitempty"`
	Opportunities   []string `json:"opportunities,omitempty"`
}

type Strategy struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Objectives     string `json:"objectives,omitempty"`
	Methods        string `json:"methods,omitempty"`
	Timeline       string `json:"timeline,omitempty"`
	SuccessMetrics string `json:"successMetrics,omitempty"`
}

type InnovationLevel struct {
	TotalScore              float64 `json:"totalScore"`
	PedagogicalImpact       float64 `json:"pedagogicalImpact"`
	TechnologicalComplexity float64 `json:"technologicalComplexity"`
	OrganizationalChange    float64 `json:"organizationalChange"`
	TechnologicalRisk       float64 `json:"technologicalRisk"`
}

type RegulatoryCompliance struct {
	Requirement string `json:"requirement"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Actions     string `json:"actions,omitempty"`
}

type Recommendation struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LinkedGoal  int    `json:"linkedGoal"`
}

type RiskCounts struct {
	VeryHigh int `json:"veryHigh"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}
