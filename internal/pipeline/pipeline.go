// Package pipeline wires the conversion stages together: fetch the raw
// record, parse it into a graph, extract schema fields, map them to
// candidate statements, and optionally reconcile against an existing
// knowledge base.
package pipeline

import (
	"context"
	"fmt"

	"github.com/ppiankov/authlink/internal/cache"
	"github.com/ppiankov/authlink/internal/extract"
	"github.com/ppiankov/authlink/internal/llm"
	"github.com/ppiankov/authlink/internal/mapping"
	"github.com/ppiankov/authlink/internal/model"
	"github.com/ppiankov/authlink/internal/rdf"
	"github.com/ppiankov/authlink/internal/reconcile"
	"github.com/ppiankov/authlink/internal/schema"
)

// Pipeline converts authority references into candidate statements.
// Safe for concurrent use; batch conversion shares one instance.
type Pipeline struct {
	schemas    *schema.Registry
	fetcher    *Fetcher
	parsers    *rdf.Registry
	extractor  *extract.Extractor
	mapper     *mapping.Mapper
	reconciler *reconcile.Reconciler
	reviewer   *llm.Reviewer
}

// New assembles a pipeline from configuration.
func New(cfg *model.Config) (*Pipeline, error) {
	schemas, err := schema.BuiltinWithFile(cfg.Sources.SchemaFile)
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	fetcher, err := NewFetcher(cfg, store)
	if err != nil {
		return nil, fmt.Errorf("build fetcher: %w", err)
	}

	var client reconcile.Client
	if cfg.Reconcile.Enabled {
		client = reconcile.NewHTTPClient(cfg.Reconcile.Endpoint, cfg.Reconcile.Timeout, cfg.HTTP.UserAgent, store)
	}

	var reviewer *llm.Reviewer
	if cfg.LLM.Provider != "" {
		reviewer, err = llm.NewReviewer(llm.Config{
			Provider:  cfg.LLM.Provider,
			Model:     cfg.LLM.Model,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Timeout:   cfg.LLM.Timeout,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("build reviewer: %w", err)
		}
	}

	return &Pipeline{
		schemas:    schemas,
		fetcher:    fetcher,
		parsers:    rdf.NewRegistry(),
		extractor:  extract.New(),
		mapper:     mapping.New(),
		reconciler: reconcile.New(client),
		reviewer:   reviewer,
	}, nil
}

// Fetcher exposes the fetcher for endpoint inspection.
func (p *Pipeline) Fetcher() *Fetcher { return p.fetcher }

// Schemas exposes the schema registry for source listing.
func (p *Pipeline) Schemas() *schema.Registry { return p.schemas }

// Convert runs the full pipeline for one authority reference. Fetch,
// parse and unknown-source failures abort the conversion; extraction,
// mapping and reconciliation problems degrade to warnings on the result.
func (p *Pipeline) Convert(ctx context.Context, ref model.AuthorityReference) (*model.ConversionResult, error) {
	// Resolve the schema before spending a network round trip.
	sc, err := p.schemas.Lookup(ref.SourceType)
	if err != nil {
		return nil, err
	}

	fetched, err := p.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	graph, err := p.parsers.Parse(fetched.Format, fetched.Data)
	if err != nil {
		return nil, model.WrapErr(model.KindParse, fmt.Sprintf("parse %s record", ref.SourceType), err)
	}

	extracted := p.extractor.Extract(graph, sc, ref.ExternalID)

	statements, mapWarnings := p.mapper.Map(extracted, ref, fetched.RetrievedAt)

	entityID, kept, recWarnings := p.reconciler.Reconcile(ctx, ref, statements)

	result := &model.ConversionResult{
		Authority:        ref,
		Statements:       kept,
		ExistingEntityID: entityID,
	}
	result.Warnings = append(result.Warnings, extracted.Warnings...)
	result.Warnings = append(result.Warnings, mapWarnings...)
	result.Warnings = append(result.Warnings, recWarnings...)

	if p.reviewer != nil {
		note, err := p.reviewer.Review(ctx, result)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("review note failed: %v", err))
		} else {
			result.Review = note
		}
	}
	return result, nil
}
