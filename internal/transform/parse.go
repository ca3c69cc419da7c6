package transform

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	scorePatterns = map[string]*regexp.Regexp{
		"clarity":          scorePattern("Clarity"),
		"impact":           scorePattern("Impact"),
		"formatting":       scorePattern("Formatting"),
		"relevance":        scorePattern("Relevance"),
		"atsCompatibility": scorePattern("ATS compatibility"),
	}
	feedbackPattern = regexp.MustCompile(`suggestions\.?\s*([^{}\[\]]+)$`)
)

func scorePattern(category string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(category) + `[^0-9]*(10|[1-9])`)
}

// parseAnalysis reads model output as JSON, falling back to pattern
// extraction from prose when it does not parse.
func parseAnalysis(content string) Analysis {
	if strings.TrimSpace(content) == "" {
		return defaultAnalysis(fallbackAnalysis)
	}
	if a, ok := parseAnalysisJSON(content); ok {
		return a
	}
	return parseAnalysisText(content)
}

func parseAnalysisJSON(content string) (Analysis, bool) {
	raw := bytes.TrimSpace([]byte(content))
	if !json.Valid(raw) || bytes.Equal(raw, []byte("null")) {
		return Analysis{}, false
	}
	// Valid JSON that is not an object carries no scores or feedback.
	var doc map[string]json.RawMessage
	_ = json.Unmarshal(raw, &doc)

	var scores map[string]json.RawMessage
	if raw, ok := doc["scores"]; ok {
		_ = json.Unmarshal(raw, &scores)
	}

	a := Analysis{
		Scores: Scores{
			Clarity:          coerceScore(scores["clarity"]),
			Impact:           coerceScore(scores["impact"]),
			Formatting:       coerceScore(scores["formatting"]),
			Relevance:        coerceScore(scores["relevance"]),
			ATSCompatibility: coerceScore(scores["atsCompatibility"]),
		},
		Feedback: fallbackAnalysisFeedback,
	}

	var feedback string
	if raw, ok := doc["feedback"]; ok && json.Unmarshal(raw, &feedback) == nil && feedback != "" {
		a.Feedback = feedback
	}
	return a, true
}

// coerceScore accepts a JSON number or numeric string. Zero, missing and
// unparseable values become the default score.
func coerceScore(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return defaultScore
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return defaultScore
		}
		num, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return defaultScore
		}
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return defaultScore
	}
	n := int(math.Round(num))
	if n == 0 {
		return defaultScore
	}
	return n
}

func parseAnalysisText(content string) Analysis {
	a := Analysis{
		Scores: Scores{
			Clarity:          matchScore(content, "clarity"),
			Impact:           matchScore(content, "impact"),
			Formatting:       matchScore(content, "formatting"),
			Relevance:        matchScore(content, "relevance"),
			ATSCompatibility: matchScore(content, "atsCompatibility"),
		},
		Feedback: fallbackExtractFeedback,
	}
	if m := feedbackPattern.FindStringSubmatch(content); m != nil {
		if fb := strings.TrimSpace(m[1]); fb != "" {
			a.Feedback = fb
		}
	}
	return a
}

func matchScore(content, key string) int {
	m := scorePatterns[key].FindStringSubmatch(content)
	if m == nil {
		return defaultScore
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return defaultScore
	}
	return n
}
