package providers

import "context"

// MockProvider returns a deterministic, schema-valid report for local runs
// and tests, wrapped in a code fence the way real models often answer.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	_ = req
	return GenerateResponse{Text: mockReportText}, ProviderInfo{Name: "mock", Model: "mock-llm-v1"}, nil
}

const mockReportText = "להלן הדוח:\n```json\n" + `{
  "projectName": "פרויקט לדוגמה",
  "organization": "ארגון לדוגמה",
  "projectManager": "מנהל הפרויקט",
  "projectScope": "היקף הפרויקט כפי שמתואר במסמך",
  "timeline": "שנת לימודים אחת",
  "projectType": "פיילוט חדשנות",
  "regulatoryPartners": "משרד החינוך",
  "goals": [
    {"id": 1, "title": "מטרה 1: שיפור איכות ההוראה", "description": "העמקת השימוש בכלים דיגיטליים בהוראה"},
    {"id": 2, "title": "מטרה 2: הכשרת צוות", "description": "הכשרת המורים לעבודה בסביבה חדשנית"},
    {"id": 3, "title": "מטרה 3: צמצום פערים", "description": "מענה דיפרנציאלי לתלמידים מתקשים"}
  ],
  "deliverables": ["תוכנית הכשרה", "סביבת למידה", "דוח הערכה"],
  "risks": [
    {"id": 1, "title": "עומס על הצוות", "linkedGoal": 2, "probability": 8, "impact": 9, "description": "עומס חריג על המורים (נגזר ממטרה 2: הכשרת צוות)", "impacts": ["שחיקת מורים"], "opportunities": ["פיתוח מקצועי"]},
    {"id": 2, "title": "פערי תשתית", "linkedGoal": 1, "probability": 6, "impact": 7, "description": "תשתית לא אחידה בין כיתות (נגזר ממטרה 1)", "impacts": ["חוויית למידה לא אחידה"], "opportunities": ["שדרוג תשתיות"]},
    {"id": 3, "title": "התנגדות לשינוי", "linkedGoal": 2, "probability": 5, "impact": 5, "description": "התנגדות חלק מהצוות (נגזר ממטרה 2)", "impacts": ["עיכוב ביישום"], "opportunities": ["שיח צוותי"]},
    {"id": 4, "title": "פגיעה בתלמידים מתקשים", "linkedGoal": 3, "probability": 4, "impact": 6, "description": "קצב לא מותאם (נגזר ממטרה 3)", "impacts": ["הרחבת פערים"], "opportunities": ["למידה מותאמת אישית"]}
  ],
  "innovationLevel": {"totalScore": 7.5, "pedagogicalImpact": 8, "technologicalComplexity": 7, "organizationalChange": 7, "technologicalRisk": 8},
  "innovationDescription": "שילוב כלים דיגיטליים מתקדמים בתהליכי ההוראה",
  "innovationDefinition": "חדשנות ברמה גבוהה",
  "committeeRecommendation": "מומלץ לאשר את הפרויקט בתנאי ליווי פדגוגי צמוד",
  "executiveSummary": "הפרויקט מציע שינוי פדגוגי משמעותי עם סיכונים הניתנים לניהול",
  "recommendations": [
    {"id": 1, "title": "ליווי פדגוגי", "description": "יש לדרוש מהמפעיל ליווי פדגוגי שוטף", "linkedGoal": 1},
    {"id": 2, "title": "תוכנית הכשרה מדורגת", "description": "מומלץ לאשר בתנאי תוכנית הכשרה מדורגת", "linkedGoal": 2},
    {"id": 3, "title": "מעקב אחר תלמידים מתקשים", "description": "יש להגדיר מדדי מעקב לצמצום פערים", "linkedGoal": 3}
  ],
  "riskCounts": {"veryHigh": 0, "high": 1, "medium": 2, "low": 1}
}` + "\n```"
