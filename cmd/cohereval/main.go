// Command cohereval evaluates a piece of text for relational coherence,
// prints the rendered report, and writes the text, Markdown, and PDF
// exports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/coherence-eval/coherence/infrastructure/export"
	"github.com/coherence-eval/coherence/infrastructure/llm"
	"github.com/coherence-eval/coherence/infrastructure/profile"
	"github.com/coherence-eval/coherence/infrastructure/render"
	"github.com/coherence-eval/coherence/internal/application"
)

func main() {
	var (
		provider    = flag.String("provider", "openai", "Completion provider: openai, anthropic, google, or relay")
		model       = flag.String("model", "", "Model name (empty uses the provider default)")
		baseURL     = flag.String("base-url", "", "Provider endpoint override; required for the relay provider")
		inputPath   = flag.String("input", "-", "Input file, or - for stdin")
		profilePath = flag.String("profile", "", "Coherence profile YAML (empty uses the embedded default)")
		outDir      = flag.String("out", ".", "Directory for export files")
		radarPath   = flag.String("radar", "", "Write the radar chart SVG to this path")
		timeout     = flag.Duration("timeout", 90*time.Second, "Per-request timeout")
		rps         = flag.Float64("rps", 0, "Request rate limit (0 disables)")
	)
	flag.Parse()

	log := clog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := clog.WithLogger(context.Background(), log)

	// A .env beside the binary supplies API keys during local development.
	_ = godotenv.Load()

	if err := run(ctx, *provider, *model, *baseURL, *inputPath, *profilePath, *outDir, *radarPath, *timeout, *rps); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, provider, model, baseURL, inputPath, profilePath, outDir, radarPath string, timeout time.Duration, rps float64) error {
	input, err := readInput(inputPath)
	if err != nil {
		return err
	}

	middleware := []llm.Middleware{
		llm.TimeoutMiddleware(timeout),
		llm.RetryMiddleware(2, time.Second, 10*time.Second),
		llm.TracingMiddleware("cohereval"),
	}
	if rps > 0 {
		middleware = append(middleware, llm.RateLimitMiddleware(rate.Limit(rps), 1))
	}

	client, err := llm.NewClient(provider, llm.ClientConfig{
		APIKey:     apiKeyFor(provider),
		Model:      model,
		BaseURL:    baseURL,
		Timeout:    timeout,
		Middleware: middleware,
	})
	if err != nil {
		return err
	}

	session := application.NewSession(client, profile.NewLoader(profilePath), application.Config{})

	result, err := session.Evaluate(ctx, input)
	if err != nil {
		if errors.Is(err, application.ErrInputTooShort) {
			return errors.New("input is too short: provide at least a sentence or two of context")
		}
		return err
	}

	printReport(render.BuildReport(result))

	if radarPath != "" {
		chart := render.Layout(result.Scores, 120, render.Point{X: 150, Y: 150})
		if err := os.WriteFile(radarPath, render.SVG(chart), 0o644); err != nil {
			return fmt.Errorf("failed to write radar chart: %w", err)
		}
	}

	return writeExports(session, outDir)
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// apiKeyFor resolves the credential for a provider from the environment.
// The relay provider authenticates on the daemon side and needs none.
func apiKeyFor(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "google":
		return os.Getenv("GEMINI_API_KEY")
	case "relay":
		return ""
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func printReport(report render.Report) {
	fmt.Println(export.Title)
	fmt.Println(strings.Repeat("=", len(export.Title)))
	fmt.Println()

	for _, bar := range report.Bars {
		filled := int(bar.WidthPct / 5)
		gauge := strings.Repeat("#", filled) + strings.Repeat("-", 20-filled)
		fmt.Printf("%-16s [%s] %s (%s)\n", bar.Label, gauge, bar.Display, bar.Band)
	}
	fmt.Println()

	if report.Composite != nil {
		fmt.Printf("Composite: %s (%s)\n", report.Composite.Display, report.Composite.Band)
		fmt.Println(report.Composite.Interpretation)
		fmt.Println()
	}

	fmt.Println("Summary:", report.Summary)
	fmt.Println()

	for _, card := range report.Cards {
		fmt.Printf("%s\n  %s\n", card.Title, card.Body)
	}
	fmt.Println()

	fmt.Println("Recommendations:")
	for _, rec := range report.Recommendations {
		fmt.Println("-", rec)
	}

	if report.ShowQuestions {
		fmt.Println()
		fmt.Println("Clarifying questions:")
		for _, q := range report.Questions {
			fmt.Println("-", q)
		}
	}
}

// writeExports encodes and writes all three export formats concurrently.
func writeExports(session *application.Session, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now()
	var g errgroup.Group

	for _, format := range []export.Format{export.FormatText, export.FormatMarkdown, export.FormatPDF} {
		g.Go(func() error {
			doc, err := session.Export(format, now)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, doc.Filename)
			if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Println("wrote", path)
			return nil
		})
	}

	return g.Wait()
}
