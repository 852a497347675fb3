package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filler(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "נתון"
	}
	return strings.Join(parts, " ")
}

func TestDocumentGoalsAndTimelineWithoutScope(t *testing.T) {
	// 150 words overall, mentions goals and a timeline but nothing about scope.
	text := "מטרות הפרויקט בתחילת המסמך. לוח זמנים מפורט בהמשך. " + filler(142)
	v := Document(text)

	require.True(t, v.IsValid)
	assert.True(t, v.Statistics.HasGoals)
	assert.True(t, v.Statistics.HasTimeline)
	assert.False(t, v.Statistics.HasScope)
	assert.GreaterOrEqual(t, v.Statistics.WordCount, 100)

	scopeWarnings := 0
	for _, w := range v.Warnings {
		if strings.Contains(w, "היקף") {
			scopeWarnings++
		}
	}
	scopeSuggestions := 0
	for _, s := range v.Suggestions {
		if strings.Contains(s, "היקף") {
			scopeSuggestions++
		}
	}
	assert.Equal(t, 1, scopeWarnings)
	assert.Equal(t, 1, scopeSuggestions)
}

func TestDocumentEveryGoalKeywordCounts(t *testing.T) {
	// Each entry of the goal table on its own marks the document as having
	// goals.
	for _, kw := range goalKeywords {
		v := Document(kw + " " + filler(149))
		assert.True(t, v.Statistics.HasGoals, "keyword %q not recognized", kw)
	}
}

func TestDocumentTooShort(t *testing.T) {
	v := Document("מטרות " + filler(20))
	require.False(t, v.IsValid)
	assert.NotEmpty(t, v.Warnings)
	assert.Equal(t, 21, v.Statistics.WordCount)
}

func TestDocumentAllSignalsPresent(t *testing.T) {
	text := "מטרות הפרויקט. לוח זמנים לשנת הלימודים. היקף הפעילות בבית ספר. חדשנות דיגיטלית בהוראה. " + filler(120)
	v := Document(text)
	require.True(t, v.IsValid)
	assert.True(t, v.Statistics.HasGoals)
	assert.True(t, v.Statistics.HasTimeline)
	assert.True(t, v.Statistics.HasScope)
	assert.Empty(t, v.Warnings)
	assert.Empty(t, v.Suggestions)
}

func TestDocumentParagraphCount(t *testing.T) {
	v := Document("אחד\n\nשתיים\n  \nשלוש")
	assert.Equal(t, 3, v.Statistics.ParagraphCount)
}

func TestDocumentKeywordCheckIsCaseInsensitive(t *testing.T) {
	text := "שילוב AI בהוראה. מטרות. לוח זמנים. היקף. " + filler(120)
	v := Document(text)
	for _, s := range v.Suggestions {
		assert.NotContains(t, s, "חדשניים")
	}
}
