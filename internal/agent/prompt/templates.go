package prompt

// AssistantPreface is prepended to every completion message
const AssistantPreface = "You are a helpful assistant. "

// GenrePreferenceTemplate introduces the optional genre hint. Args: genres
const GenrePreferenceTemplate = "My preferred genres are %s. "

// RecommendationTemplate asks for numbered recommendations in the format the parser expects.
// Args: tastes, count
const RecommendationTemplate = "Here is some background about my reading tastes: %s.\n\n" +
	"Based on this, please provide %d book recommendations. " +
	"Begin with a short, witty preamble that ties my interests to the suggestions. " +
	"Then, list each recommendation on a new line in the following format:\n" +
	`1. "Book Title" by Author Name - a brief description of why this book suits my tastes.` + "\n" +
	"End with a light postamble. Please avoid using asterisks or markdown formatting."

// Messages shown to the user
const (
	EmptyTastesWarning  = "Please share a bit about your reading preferences to get a recommendation!"
	CoverNotFoundText   = "Cover art not found"
	NoRecommendationsEn = "The assistant did not return any recommendations in the expected format. Please try again."
)
