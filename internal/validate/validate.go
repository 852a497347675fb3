// Package validate scores extracted concept-document text for the
// structural signals a risk analysis needs.
package validate

import (
	"regexp"
	"strings"

	"ezra/internal/models"
)

// Keyword tables are matched as case-insensitive substrings. Each absent
// group adds a warning plus a suggestion; the innovation group only ever
// adds a suggestion.
var (
	goalKeywords       = []string{"מטרה", "מטרות", "יעד", "יעדים", "הדף", "חזון"}
	timelineKeywords   = []string{"לוח זמנים", "תקופה", "שלב", "שלבים", "חודש", "שנה", "רבעון"}
	scopeKeywords      = []string{"היקף", "תחום", "פעילות", "יישום", "תלמידים", "כיתות"}
	educationKeywords  = []string{"חינוך", "לימוד", "הוראה", "תלמיד", "מורה", "כיתה", "בית ספר"}
	innovationKeywords = []string{"חדשנות", "טכנולוגיה", "דיגיטל", "בינה מלאכותית", "ai"}
)

var blankLine = regexp.MustCompile(`\n\s*\n`)

// Document checks the extracted text and returns warnings, suggestions and
// statistics. It is a pure function of the text and the keyword tables and
// never fails.
func Document(text string) models.Validation {
	v := models.Validation{
		IsValid:     true,
		Warnings:    []string{},
		Suggestions: []string{},
	}

	v.Statistics.WordCount = len(strings.Fields(text))
	v.Statistics.ParagraphCount = len(blankLine.Split(text, -1))

	if v.Statistics.WordCount < 100 {
		v.IsValid = false
		v.Warnings = append(v.Warnings, "המסמך קצר מדי (פחות מ-100 מילים)")
	}

	lower := strings.ToLower(text)

	v.Statistics.HasGoals = containsAny(lower, goalKeywords)
	if !v.Statistics.HasGoals {
		v.Warnings = append(v.Warnings, "לא זוהו מטרות ברורות במסמך")
		v.Suggestions = append(v.Suggestions, "וודא שהמסמך כולל סעיף מטרות או יעדים ברור")
	}

	v.Statistics.HasTimeline = containsAny(lower, timelineKeywords)
	if !v.Statistics.HasTimeline {
		v.Warnings = append(v.Warnings, "לא זוהה לוח זמנים במסמך")
		v.Suggestions = append(v.Suggestions, "הוסף מידע על לוח הזמנים המתוכנן")
	}

	v.Statistics.HasScope = containsAny(lower, scopeKeywords)
	if !v.Statistics.HasScope {
		v.Warnings = append(v.Warnings, "לא זוהה היקף פרויקט ברור")
		v.Suggestions = append(v.Suggestions, "הבהר את היקף הפרויקט ואוכלוסיית היעד")
	}

	if !containsAny(lower, educationKeywords) {
		v.Warnings = append(v.Warnings, "לא זוהה הקשר חינוכי ברור במסמך")
		v.Suggestions = append(v.Suggestions, "הדגש את הרלוונטיות החינוכית של הפרויקט")
	}

	if !containsAny(lower, innovationKeywords) {
		v.Suggestions = append(v.Suggestions, "ציין את האספקטים החדשניים או הטכנולוגיים בפרויקט")
	}

	return v
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
