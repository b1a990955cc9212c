package model

// UnknownAuthor is used when a metadata item carries no author list
const UnknownAuthor = "Unknown"

// RecommendationRecord is one "N. "Title" by Author - description" line from a model reply
type RecommendationRecord struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// ParsedReply is a model reply split around its recommendation block
type ParsedReply struct {
	Preamble        string                 `json:"preamble"`
	Recommendations []RecommendationRecord `json:"recommendations"`
	Postamble       string                 `json:"postamble"`
}

// BookMetadata is the result of an enrichment lookup.
// A nil field means the value is absent.
type BookMetadata struct {
	CoverImage       []byte
	CoverContentType string
	Authors          []string
	AverageRating    *float64
}

// HasCover reports whether cover bytes were fetched
func (m BookMetadata) HasCover() bool {
	return len(m.CoverImage) > 0
}

// HasRating reports whether a non-zero average rating is present; a zero rating is not shown
func (m BookMetadata) HasRating() bool {
	return m.AverageRating != nil && *m.AverageRating != 0
}

// IsEmpty reports the "no item found" shape (every field absent)
func (m BookMetadata) IsEmpty() bool {
	return m.CoverImage == nil && m.Authors == nil && m.AverageRating == nil
}

// Recommendation pairs a parsed record with its metadata
type Recommendation struct {
	Record   RecommendationRecord
	Metadata BookMetadata
}

// RecommendationResponse is the JSON shape of a single recommendation
type RecommendationResponse struct {
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Authors       []string `json:"authors,omitempty"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	Cover         []byte   `json:"cover,omitempty"`
	CoverType     string   `json:"coverType,omitempty"`
}

// ToResponse converts a recommendation to its JSON shape
func (r *Recommendation) ToResponse() RecommendationResponse {
	return RecommendationResponse{
		Title:         r.Record.Title,
		Author:        r.Record.Author,
		Description:   r.Record.Description,
		Authors:       r.Metadata.Authors,
		AverageRating: r.Metadata.AverageRating,
		Cover:         r.Metadata.CoverImage,
		CoverType:     r.Metadata.CoverContentType,
	}
}
