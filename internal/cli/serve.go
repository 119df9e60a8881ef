package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/internal/pipeline"
	"github.com/credlens/credlens/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve exposes the analysis pipeline over HTTP:

  POST   /api/analyze   {"text": "..."} or {"url": "..."}
  GET    /api/history   recent analyses, newest first
  DELETE /api/history   clear recorded analyses
  GET    /healthz       liveness probe

Example:
  credlens serve
  credlens serve --addr :9090 --llm-provider groq`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "AI classifier provider (groq, openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "AI classifier model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if err := resolveLLMKey(cfg); err != nil {
		return err
	}

	var store server.HistoryStore
	if cfg.History.Enabled {
		s, err := openHistory(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		} else {
			defer func() { _ = s.Close() }()
			store = s
		}
	}

	p := pipeline.NewPipeline(cfg)
	srv := server.New(p, store)

	fmt.Fprintf(os.Stderr, "CredLens API listening on %s\n", cfg.Server.Addr)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(os.Stderr, "AI classifier: %s\n", cfg.LLM.Provider)
	}

	return srv.Run(cfg.Server.Addr)
}
