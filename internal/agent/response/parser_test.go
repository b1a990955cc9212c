package response

import (
	"fmt"
	"strings"
	"testing"

	"whatshouldiread/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `Here are some picks for you!
1. "Dune" by Frank Herbert - an epic of politics and ecology.
2. "Circe" by Madeline Miller - myth retold with heart.
Enjoy the journey!`

func TestParse_SampleReply(t *testing.T) {
	parsed := Parse(sampleReply)

	assert.Equal(t, "Here are some picks for you!", parsed.Preamble)
	assert.Equal(t, "Enjoy the journey!", parsed.Postamble)
	assert.Equal(t, []model.RecommendationRecord{
		{Title: "Dune", Author: "Frank Herbert", Description: "an epic of politics and ecology."},
		{Title: "Circe", Author: "Madeline Miller", Description: "myth retold with heart."},
	}, parsed.Recommendations)
}

func TestParse_Empty(t *testing.T) {
	parsed := Parse("")

	assert.Equal(t, "", parsed.Preamble)
	assert.Empty(t, parsed.Recommendations)
	assert.NotNil(t, parsed.Recommendations)
	assert.Equal(t, "", parsed.Postamble)
}

func TestParse_NoRecommendationLines(t *testing.T) {
	text := "\n  Sorry, I can't think of anything right now.\nTry again later.  \n"
	parsed := Parse(text)

	assert.Equal(t, strings.TrimSpace(text), parsed.Preamble)
	assert.Empty(t, parsed.Recommendations)
	assert.Equal(t, "", parsed.Postamble)
}

func TestParse_SingleLine(t *testing.T) {
	parsed := Parse(`1. "Piranesi" by Susanna Clarke - a house of endless halls.`)

	assert.Equal(t, "", parsed.Preamble)
	assert.Equal(t, "", parsed.Postamble)
	require.Len(t, parsed.Recommendations, 1)
	assert.Equal(t, "Piranesi", parsed.Recommendations[0].Title)
	assert.Equal(t, "Susanna Clarke", parsed.Recommendations[0].Author)
	assert.Equal(t, "a house of endless halls.", parsed.Recommendations[0].Description)
}

func TestParse_SingleLineWithSurroundingText(t *testing.T) {
	parsed := Parse("Intro line\n1. \"Emma\" by Jane Austen - matchmaking gone wrong.\nOutro line")

	assert.Equal(t, "Intro line", parsed.Preamble)
	assert.Equal(t, "Outro line", parsed.Postamble)
	assert.Len(t, parsed.Recommendations, 1)
}

func TestParse_TrimsFields(t *testing.T) {
	parsed := Parse(`1. "  The Hobbit  " by   J.R.R. Tolkien    -    there and back again.   `)

	require.Len(t, parsed.Recommendations, 1)
	rec := parsed.Recommendations[0]
	assert.Equal(t, "The Hobbit", rec.Title)
	assert.Equal(t, "J.R.R. Tolkien", rec.Author)
	assert.Equal(t, "there and back again.", rec.Description)
}

func TestParse_OptionalSpaceAfterNumber(t *testing.T) {
	parsed := Parse(`1."Beloved" by Toni Morrison - a haunting.`)

	require.Len(t, parsed.Recommendations, 1)
	assert.Equal(t, "Beloved", parsed.Recommendations[0].Title)
}

func TestParse_DuplicateTitlesKept(t *testing.T) {
	parsed := Parse("1. \"Dune\" by Frank Herbert - first.\n2. \"Dune\" by Frank Herbert - second.")

	require.Len(t, parsed.Recommendations, 2)
	assert.Equal(t, "first.", parsed.Recommendations[0].Description)
	assert.Equal(t, "second.", parsed.Recommendations[1].Description)
}

func TestParse_DescriptionKeepsLaterDashes(t *testing.T) {
	parsed := Parse(`1. "Middlemarch" by George Eliot - provincial life - and marriage - in depth.`)

	require.Len(t, parsed.Recommendations, 1)
	assert.Equal(t, "George Eliot", parsed.Recommendations[0].Author)
	assert.Equal(t, "provincial life - and marriage - in depth.", parsed.Recommendations[0].Description)
}

func TestParse_HyphenatedAuthorDoesNotMatch(t *testing.T) {
	// the author segment cannot contain a dash, so the dash must be followed by whitespace
	parsed := Parse(`1. "Gilead" by Marilynne Robinson-Smith - quiet grace.`)

	assert.Empty(t, parsed.Recommendations)
	assert.Equal(t, `1. "Gilead" by Marilynne Robinson-Smith - quiet grace.`, parsed.Preamble)
}

func TestParse_InteriorNonMatchingLinesStayInBlock(t *testing.T) {
	text := strings.Join([]string{
		"Preamble.",
		`1. "Dune" by Frank Herbert - sand and spice.`,
		"   Also, look out for the sequels - they are great.",
		`2. "Circe" by Madeline Miller - witchcraft.`,
		"Postamble.",
	}, "\n")

	parsed := Parse(text)

	assert.Equal(t, "Preamble.", parsed.Preamble)
	assert.Equal(t, "Postamble.", parsed.Postamble)
	require.Len(t, parsed.Recommendations, 2)
	assert.Equal(t, "sand and spice.", parsed.Recommendations[0].Description)
	assert.Equal(t, "Circe", parsed.Recommendations[1].Title)
}

func TestParse_MultiLinePreambleAndPostamble(t *testing.T) {
	text := "Line one\nLine two\n\n1. \"Dune\" by Frank Herbert - spice.\n\nBye\nSee you"

	parsed := Parse(text)

	assert.Equal(t, "Line one\nLine two", parsed.Preamble)
	assert.Equal(t, "Bye\nSee you", parsed.Postamble)
}

func TestParse_PreservesOrder(t *testing.T) {
	titles := []string{"A", "B", "C", "D", "E"}
	var lines []string
	for i, title := range titles {
		lines = append(lines, fmt.Sprintf(`%d. "%s" by Someone - reason.`, i+1, title))
	}

	parsed := Parse(strings.Join(lines, "\n"))

	require.Len(t, parsed.Recommendations, len(titles))
	for i, title := range titles {
		assert.Equal(t, title, parsed.Recommendations[i].Title)
	}
}

func TestParse_RejoinReproducesInput(t *testing.T) {
	parsed := Parse(sampleReply)

	lines := strings.Split(sampleReply, "\n")
	block := strings.Join(lines[1:3], "\n")
	rejoined := strings.TrimSpace(strings.Join([]string{parsed.Preamble, block, parsed.Postamble}, "\n"))

	assert.Equal(t, strings.TrimSpace(sampleReply), rejoined)
}

func TestDiagnose_PartialLines(t *testing.T) {
	text := strings.Join([]string{
		"Here you go:",
		`1. "Dune" by Frank Herbert - spice.`,
		`2. **Circe** by Madeline Miller - myth.`,
		`3. "Emma" by Jane Austen - matchmaking.`,
	}, "\n")

	diag := Diagnose(text, Parse(text))

	assert.Equal(t, 2, diag.MatchedLines)
	assert.Equal(t, 3, diag.NumberedLines)
	assert.True(t, diag.Partial())
	assert.False(t, diag.ZeroMatch)
	assert.Equal(t, []string{`2. **Circe** by Madeline Miller - myth.`}, diag.PartialLines)
}

func TestDiagnose_ZeroMatch(t *testing.T) {
	text := "No books today."

	diag := Diagnose(text, Parse(text))

	assert.True(t, diag.ZeroMatch)
	assert.Equal(t, 0, diag.NumberedLines)
	assert.False(t, diag.Partial())
}
