package llm

import (
	"context"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
)

// Reviewer produces the optional review note for a conversion result.
type Reviewer struct {
	provider Provider
	model    string
}

// NewReviewer builds a reviewer from configuration.
func NewReviewer(cfg Config) (*Reviewer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Reviewer{provider: provider, model: cfg.Model}, nil
}

// Review generates a note for the result. The result itself is read-only
// input; the caller attaches the returned note.
func (r *Reviewer) Review(ctx context.Context, result *model.ConversionResult) (*model.ReviewNote, error) {
	text, err := r.provider.Generate(ctx, buildPrompt(result))
	if err != nil {
		return nil, err
	}

	return &model.ReviewNote{
		Provider: r.provider.Name(),
		Model:    r.model,
		Text:     strings.TrimSpace(text),
	}, nil
}
