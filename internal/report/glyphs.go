package report

import (
	"strings"

	"github.com/macjunkins/portfolio/internal/health"
)

// PillarOrder is the fixed display order for report grouping.
var PillarOrder = []string{"revenue", "infrastructure", "consistency", "cleanup", "innovation", "unknown"}

var priorityGlyphs = map[string]string{
	"critical": "🚨",
	"high":     "🔴",
	"medium":   "🟡",
	"low":      "🟢",
	"none":     "⚪",
	"unknown":  "❓",
}

var pillarGlyphs = map[string]string{
	"revenue":        "🚨",
	"infrastructure": "🚀",
	"consistency":    "📺",
	"cleanup":        "🟡",
	"innovation":     "🔬",
}

// PriorityGlyph maps a priority name to its display glyph. Unknown
// values degrade to the question-mark glyph.
func PriorityGlyph(priority string) string {
	if g, ok := priorityGlyphs[strings.ToLower(priority)]; ok {
		return g
	}
	return "❓"
}

// PillarGlyph maps a pillar name to its display glyph. Unknown values
// degrade to the package glyph.
func PillarGlyph(pillar string) string {
	if g, ok := pillarGlyphs[strings.ToLower(pillar)]; ok {
		return g
	}
	return "📦"
}

// StatusGlyph maps a health status to its display glyph.
func StatusGlyph(status health.Status) string {
	switch status {
	case health.StatusHealthy:
		return "✅"
	case health.StatusWarning:
		return "⚠️"
	case health.StatusCritical:
		return "🚨"
	}
	return "❓"
}

// title uppercases the first letter of a categorical value for
// display.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
