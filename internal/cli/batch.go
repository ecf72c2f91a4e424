package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/authlink/internal/pipeline"
	"github.com/ppiankov/authlink/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Convert multiple authority records from a file in parallel",
	Long: `Batch converts many authority references concurrently:
- Read SOURCE:ID references from the input file (one per line)
- Convert references in parallel with a configurable worker count
- Write one JSON result per reference into a per-run directory

Example:
  authlink batch refs.txt
  authlink batch refs.txt --concurrency 10 --output-dir ./results
  authlink batch refs.txt --reconcile --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./authlink-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared with convert
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	batchCmd.Flags().BoolVar(&reconcileOn, "reconcile", false, "check the knowledge base for existing entities")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM review note generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConvertConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	refs, err := worker.ReadRefsFile(file)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	runDir := filepath.Join(outputDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch run %s\n", runID)
	fmt.Fprintf(os.Stderr, "  Input file:  %s (%d references)\n", file, len(refs))
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:  %s\n", runDir)
	fmt.Fprintln(os.Stderr)

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)
	results := processor.Process(ctx, refs)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Ref, result.Error)
			continue
		}
		successCount++

		path := filepath.Join(runDir, refFilename(result.Ref.String()))
		if err := pipeline.WriteJSON(result.Result, path, pretty); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write result: %v\n", result.Ref, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d statement(s)\n", result.Ref, len(result.Result.Statements))
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Batch complete: %d total, %d succeeded, %d failed\n", len(results), successCount, failureCount)
	fmt.Fprintf(os.Stderr, "Results in %s\n", runDir)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d conversions failed", failureCount, len(results))
	}
	return nil
}

// refFilename turns "VIAF:113230702" into a safe result file name.
func refFilename(ref string) string {
	s := strings.ReplaceAll(ref, ":", "_")
	s = strings.ReplaceAll(s, "/", "_")
	return s + ".json"
}
