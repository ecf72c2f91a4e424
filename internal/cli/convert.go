package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	pretty      bool
	timeout     time.Duration
	userAgent   string
	noCache     bool
	reconcileOn bool
	httpProxy   string
	httpsProxy  string
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <SOURCE> <ID>",
	Short: "Convert one authority record into candidate statements",
	Long: `Convert fetches a single authority record and proposes statements:
- Fetch the machine-readable record from the source's endpoint
- Extract the fields the source schema describes
- Map fields to properties, items and dates
- Optionally drop statements an existing knowledge-base entity already has

Example:
  authlink convert VIAF 113230702
  authlink convert GND 118540238 --json record.json --pretty
  authlink convert VIAF 113230702 --reconcile
  authlink convert VIAF 113230702 --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output flags
	convertCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")

	// HTTP flags
	convertCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall conversion timeout")
	convertCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	convertCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	convertCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	convertCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Reconciliation flags
	convertCmd.Flags().BoolVar(&reconcileOn, "reconcile", false, "check the knowledge base for an existing entity")

	// LLM flags
	convertCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM review note generation")
	convertCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	convertCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ref, err := model.ParseAuthorityReference(args[0] + ":" + args[1])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConvertConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Converting: %s\n", ref)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Convert(ctx, ref)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Proposed %d statement(s)\n", len(result.Statements))
		if result.ExistingEntityID != "" {
			fmt.Fprintf(os.Stderr, "✓ Matched existing entity %s\n", result.ExistingEntityID)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintf(os.Stderr, "! %d warning(s)\n", len(result.Warnings))
		}
		fmt.Fprintln(os.Stderr)
	}

	if outJSON != "" {
		return pipeline.WriteJSON(result, outJSON, pretty || cfg.Output.Pretty)
	}
	pipeline.Summary(os.Stdout, result)
	return nil
}

// buildConvertConfig layers the convert/batch flags over the loaded
// configuration.
func buildConvertConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if reconcileOn {
		cfg.Reconcile.Enabled = true
	}
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		switch llmProvider {
		case "openai":
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}
	return cfg, nil
}
