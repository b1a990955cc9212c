package response

import (
	"regexp"
	"strings"

	"whatshouldiread/internal/model"
)

// recommendationPattern is the grammar the prompt asks the model to follow:
//
//	1. "Book Title" by Author Name - why it fits
const recommendationPattern = `\d+\.\s?"([^"]+)"\sby\s([^-\n]+)-\s(.+)$`

var (
	// lineRegex matches a recommendation at the start of a single line
	lineRegex = regexp.MustCompile(`^` + recommendationPattern)
	// blockRegex extracts every recommendation from the joined block
	blockRegex = regexp.MustCompile(`(?m)` + recommendationPattern)
	// numberedRegex matches anything that looks like a list item
	numberedRegex = regexp.MustCompile(`^\s*\d+\.`)
)

// Parse splits a model reply into preamble, recommendations and postamble
func Parse(text string) model.ParsedReply {
	trimmed := strings.TrimSpace(text)
	lines := strings.Split(trimmed, "\n")

	startIdx, endIdx := -1, -1
	for i, line := range lines {
		if lineRegex.MatchString(line) {
			if startIdx < 0 {
				startIdx = i
			}
			endIdx = i
		}
	}

	// No recommendation line: the whole reply is preamble
	if startIdx < 0 {
		return model.ParsedReply{
			Preamble:        trimmed,
			Recommendations: []model.RecommendationRecord{},
		}
	}

	parsed := model.ParsedReply{
		Preamble:        joinTrimmed(lines[:startIdx]),
		Recommendations: extractRecords(joinTrimmed(lines[startIdx : endIdx+1])),
	}
	if endIdx+1 < len(lines) {
		parsed.Postamble = joinTrimmed(lines[endIdx+1:])
	}
	return parsed
}

// extractRecords re-scans the whole block, so a description may run onto the next line
func extractRecords(block string) []model.RecommendationRecord {
	matches := blockRegex.FindAllStringSubmatch(block, -1)
	records := make([]model.RecommendationRecord, 0, len(matches))
	for _, match := range matches {
		records = append(records, model.RecommendationRecord{
			Title:       strings.TrimSpace(match[1]),
			Author:      strings.TrimSpace(match[2]),
			Description: strings.TrimSpace(match[3]),
		})
	}
	return records
}

// Diagnose reports how closely a reply followed the recommendation format.
// It never changes the parse result.
func Diagnose(text string, parsed model.ParsedReply) model.Diagnostics {
	diag := model.Diagnostics{
		MatchedLines: len(parsed.Recommendations),
		ZeroMatch:    len(parsed.Recommendations) == 0,
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if !numberedRegex.MatchString(line) {
			continue
		}
		diag.NumberedLines++
		if !lineRegex.MatchString(line) {
			diag.PartialLines = append(diag.PartialLines, strings.TrimSpace(line))
		}
	}
	return diag
}

func joinTrimmed(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
