package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/authlink/internal/model"
)

// Converter is the conversion capability a batch run drives. Satisfied by
// pipeline.Pipeline; tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, ref model.AuthorityReference) (*model.ConversionResult, error)
}

// ConvertJob converts one authority reference.
type ConvertJob struct {
	Ref       model.AuthorityReference
	Converter Converter
}

// Execute runs the conversion.
func (j *ConvertJob) Execute(ctx context.Context) Result {
	result, err := j.Converter.Convert(ctx, j.Ref)
	return &ConvertResult{Ref: j.Ref, Result: result, Error: err}
}

// ConvertResult is the outcome of one batch entry.
type ConvertResult struct {
	Ref    model.AuthorityReference
	Result *model.ConversionResult
	Error  error
}

// Err returns the conversion error, if any.
func (r *ConvertResult) Err() error { return r.Error }

// BatchProcessor converts many references concurrently. Each reference
// runs independently; there is no deduplication of repeated references,
// which is safe because conversion only proposes, never writes.
type BatchProcessor struct {
	converter   Converter
	concurrency int
}

// NewBatchProcessor creates a processor with the given parallelism.
func NewBatchProcessor(converter Converter, concurrency int) *BatchProcessor {
	return &BatchProcessor{converter: converter, concurrency: concurrency}
}

// Process converts all references and returns results in completion
// order.
func (b *BatchProcessor) Process(ctx context.Context, refs []model.AuthorityReference) []*ConvertResult {
	if len(refs) == 0 {
		return nil
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, ref := range refs {
			select {
			case <-ctx.Done():
				return
			default:
				pool.Submit(&ConvertJob{Ref: ref, Converter: b.converter})
			}
		}
	}()
	<-done

	results := pool.Wait()
	out := make([]*ConvertResult, 0, len(results))
	for _, r := range results {
		if cr, ok := r.(*ConvertResult); ok {
			out = append(out, cr)
		}
	}
	return out
}

// ReadRefsFile reads authority references from a file, one SOURCE:id per
// line. Blank lines and #-comments are skipped.
func ReadRefsFile(path string) ([]model.AuthorityReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var refs []model.AuthorityReference
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ref, err := model.ParseAuthorityReference(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		refs = append(refs, ref)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}
