// Package llm generates an optional natural-language note for the human
// reviewing a conversion result. The note is clearly separated from the
// proposal: it never adds, removes or rewrites a candidate statement.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
)

// Provider is one text-generation backend.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider  string // "openai", "ollama"
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int
}

// NewProvider builds the configured provider.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg)
	case "ollama":
		return newOllamaProvider(cfg)
	case "":
		return nil, fmt.Errorf("no LLM provider configured")
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// buildPrompt renders the conversion result into a prompt that asks for a
// review note grounded strictly in the listed statements.
func buildPrompt(result *model.ConversionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are writing a short review note for a librarian checking a draft import into a knowledge base.

RULES:
1. Mention ONLY the statements listed below. Do not add facts.
2. Do not assert that any statement is true; describe what the source record proposes.
3. Point out anything a reviewer should double-check (partial dates, duplicate-looking names, warnings).
4. Three to five sentences, plain prose.

Source record: %s
`, result.Authority)

	if result.ExistingEntityID != "" {
		fmt.Fprintf(&b, "Matched existing entity: %s (duplicates already removed)\n", result.ExistingEntityID)
	}
	b.WriteString("\nProposed statements:\n")
	for _, s := range result.Statements {
		fmt.Fprintf(&b, "- %s = %s\n", s.PropertyID, s.Value)
	}
	if len(result.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
