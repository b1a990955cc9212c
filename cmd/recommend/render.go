package main

import (
	"fmt"
	"io"
	"strconv"

	"whatshouldiread/internal/agent/prompt"
	"whatshouldiread/internal/model"
)

const divider = "---"

// render prints a result in reading order: preamble, one block per book, postamble
func render(w io.Writer, result *model.RecommendationResult) {
	if result.Preamble != "" {
		fmt.Fprintln(w, result.Preamble)
		fmt.Fprintln(w)
	}

	for i, rec := range result.Recommendations {
		if i > 0 {
			fmt.Fprintln(w, divider)
		}
		renderRecommendation(w, rec)
	}

	if result.Postamble != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, result.Postamble)
	}
}

func renderRecommendation(w io.Writer, rec model.Recommendation) {
	if rec.Metadata.HasCover() {
		fmt.Fprintln(w, "Cover art: found")
	} else {
		fmt.Fprintln(w, prompt.CoverNotFoundText)
	}

	fmt.Fprintln(w, rec.Record.Title)
	fmt.Fprintf(w, "by %s\n", rec.Record.Author)

	if rec.Metadata.HasRating() {
		fmt.Fprintf(w, "Average Rating: %s / 5\n", strconv.FormatFloat(*rec.Metadata.AverageRating, 'f', -1, 64))
	}
	fmt.Fprintln(w, rec.Record.Description)
}
