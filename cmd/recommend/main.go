package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"whatshouldiread/internal/agent"
	"whatshouldiread/internal/agent/prompt"
	"whatshouldiread/internal/books"
	"whatshouldiread/internal/config"
	"whatshouldiread/internal/logging"
	"whatshouldiread/internal/model"

	"github.com/briandowns/spinner"
)

func main() {
	tastes := flag.String("tastes", "", "describe your reading tastes")
	genres := flag.String("genres", "", "preferred genres, comma separated")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	// Keep the terminal readable; only problems reach stderr.
	logging.Init(logging.Config{Level: "warn", Format: "console"})

	req := model.RecommendationRequest{Tastes: *tastes, Genres: *genres}
	if req.Tastes == "" {
		req = promptRequest(bufio.NewReader(os.Stdin), os.Stdout, *genres)
	}

	if strings.TrimSpace(req.Tastes) == "" {
		fmt.Println(prompt.EmptyTastesWarning)
		os.Exit(1)
	}

	llm, err := agent.NewLLMClient(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize completion client: %v\n", err)
		os.Exit(1)
	}
	recommender := agent.NewRecommender(llm, books.NewClient(
		books.WithBaseURL(cfg.BooksBaseURL),
		books.WithAPIKey(cfg.BooksAPIKey),
	), agent.Options{
		EnrichConcurrency:   cfg.EnrichConcurrency,
		StrictParse:         cfg.StrictParse,
		RecommendationCount: cfg.RecommendationCount,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " Fetching recommendations..."
	s.Start()
	result, err := recommender.Recommend(ctx, req)
	s.Stop()

	if err != nil {
		if errors.Is(err, agent.ErrEmptyTastes) {
			fmt.Println(prompt.EmptyTastesWarning)
		} else {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		}
		os.Exit(1)
	}

	render(os.Stdout, result)
}

// promptRequest asks for tastes interactively, and for genres unless they were already given
func promptRequest(in *bufio.Reader, out io.Writer, genres string) model.RecommendationRequest {
	fmt.Fprintln(out, "Describe your reading tastes (e.g. favorite books, authors, or themes):")
	tastes := readLine(in)
	if strings.TrimSpace(genres) == "" {
		fmt.Fprintln(out, "Preferred genres, optional (e.g. Fantasy, Mystery):")
		genres = readLine(in)
	}
	return model.RecommendationRequest{Tastes: tastes, Genres: genres}
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
