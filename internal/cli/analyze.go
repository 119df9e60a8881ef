package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/pipeline"
	"github.com/credlens/credlens/internal/worker"
)

var (
	analyzeURL  string
	analyzeText string
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	insecureTLS bool
	noRobots    bool
	llmProvider string
	llmModel    string
	skipHistory bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [input]",
	Short: "Analyze text or a URL for misinformation signals",
	Long: `Analyze runs the full credibility pipeline on one input:
- Extract page content when given a URL
- Gather fact-check and web-search evidence
- Score lexical red flags and source authority
- Classify with an AI provider when configured
- Fuse everything into a 0-100 credibility score

The input is treated as a URL when it starts with http:// or https://,
and as raw text otherwise. --url and --text override this.

Example:
  credlens analyze https://example.com/article
  credlens analyze "Scientists SHOCKED by this one weird trick!!!"
  credlens analyze --url https://example.com --json report.json
  credlens analyze "some claim" --llm-provider groq`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL to analyze")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "text to analyze")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write the full report as JSON to this path")
	analyzeCmd.Flags().BoolVar(&skipHistory, "no-history", false, "do not record the report in local history")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt compliance checks")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "AI classifier provider (groq, openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "AI classifier model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req := model.AnalysisRequest{URL: analyzeURL, Text: analyzeText}
	if len(args) == 1 && req.URL == "" && req.Text == "" {
		req = worker.RequestFromInput(strings.TrimSpace(args[0]))
	}
	if req.URL == "" && req.Text == "" {
		return fmt.Errorf("provide an input argument, --url, or --text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.JSON = outJSON != ""
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if err := resolveLLMKey(cfg); err != nil {
		return err
	}

	if verbose {
		if req.URL != "" {
			fmt.Fprintf(os.Stderr, "Analyzing URL: %s\n", req.URL)
		} else {
			fmt.Fprintf(os.Stderr, "Analyzing text (%d chars)\n", len(req.Text))
		}
		if cfg.LLM.Provider != "" {
			fmt.Fprintf(os.Stderr, "AI classifier: %s\n", cfg.LLM.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	report, err := p.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderReport(os.Stdout, report)

	if outJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}

	if cfg.History.Enabled && !skipHistory {
		if err := appendHistory(cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
		}
	}

	return nil
}

// renderReport prints a human-readable summary of one report
func renderReport(w *os.File, report *model.AnalysisReport) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  Credibility Score: %d/100  (%s)\n", report.CredibilityScore, report.Label())
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", report.Reasoning)
	fmt.Fprintln(w)

	if report.SourceAuthority != nil {
		fmt.Fprintf(w, "Source authority: %d/100\n", *report.SourceAuthority)
	}
	if report.AiClassification != "" {
		fmt.Fprintf(w, "AI classification: %s", report.AiClassification)
		if report.AiConfidence != nil {
			fmt.Fprintf(w, " (confidence %d%%)", *report.AiConfidence)
		}
		fmt.Fprintln(w)
	}

	if len(report.Flags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Red flags:")
		for _, flag := range report.Flags {
			fmt.Fprintf(w, "  - %s\n", flag)
		}
	}

	if len(report.FactCheckResults) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Fact checks:")
		for _, fc := range report.FactCheckResults {
			fmt.Fprintf(w, "  - %s rated %q: %s\n", fc.Source, fc.Claim, fc.Rating)
		}
	}
	fmt.Fprintln(w)
}
