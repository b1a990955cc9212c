package model

// RecommendationRequest is one user submission
type RecommendationRequest struct {
	Tastes string
	Genres string
}

// Diagnostics describes how well a reply followed the numbered recommendation format
type Diagnostics struct {
	MatchedLines  int      `json:"matchedLines"`
	NumberedLines int      `json:"numberedLines"`
	PartialLines  []string `json:"partialLines,omitempty"`
	ZeroMatch     bool     `json:"zeroMatch"`
}

// Partial reports whether some numbered lines did not follow the format
func (d Diagnostics) Partial() bool {
	return len(d.PartialLines) > 0
}

// RecommendationResult is everything rendered for one submission
type RecommendationResult struct {
	RequestID       string
	Preamble        string
	Recommendations []Recommendation
	Postamble       string
	Diagnostics     Diagnostics
}
