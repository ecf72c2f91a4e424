// Package reconcile matches a converted record against the knowledge
// base so re-running a conversion never proposes statements the entity
// already carries. Reconciliation is a best-effort optimization: lookup
// failures degrade to warnings and pass every statement through.
package reconcile

import (
	"context"
	"fmt"

	"github.com/ppiankov/authlink/internal/model"
)

// Reconciler filters candidate statements against an existing entity.
type Reconciler struct {
	client Client
}

// New creates a Reconciler. A nil client yields a no-op reconciler, which
// keeps the pipeline usable offline.
func New(client Client) *Reconciler {
	return &Reconciler{client: client}
}

// Reconcile looks up the entity carrying the request's external
// identifier and removes candidate statements whose (property, value)
// pair already exists on it. All other statements pass through in order.
func (r *Reconciler) Reconcile(ctx context.Context, ref model.AuthorityReference, statements []model.CandidateStatement) (entityID string, kept []model.CandidateStatement, warnings []string) {
	if r.client == nil {
		return "", statements, nil
	}

	entity, err := r.client.FindEntity(ctx, ref)
	if err != nil {
		warnings = append(warnings,
			fmt.Sprintf("reconciliation failed for %s: %v; keeping all statements", ref, err))
		return "", statements, warnings
	}
	if entity == nil {
		return "", statements, nil
	}

	kept = make([]model.CandidateStatement, 0, len(statements))
	for _, s := range statements {
		if entity.Has(s.PropertyID, s.Value) {
			continue
		}
		kept = append(kept, s)
	}
	return entity.ID, kept, warnings
}
