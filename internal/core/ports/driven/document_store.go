package driven

import (
	"context"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// DocumentStore is the schema-less document store the adapter persists
// into. Implementations guarantee single-document read/write atomicity
// only; there is no multi-document transaction.
//
// All lookup misses are reported as domain.ErrNotFound.
type DocumentStore interface {
	// Create persists a new document. The store assigns the ID and
	// returns the stored document.
	Create(ctx context.Context, doc domain.Document) (domain.Document, error)

	// Get is a point read by document ID.
	Get(ctx context.Context, id string) (domain.Document, error)

	// FetchOne returns the first document matching the query.
	FetchOne(ctx context.Context, q domain.Query) (domain.Document, error)

	// Patch merges the given fields into the document and returns the
	// committed result.
	Patch(ctx context.Context, id string, fields map[string]any) (domain.Document, error)

	// Delete removes a document by ID. Deleting an absent document is
	// not an error.
	Delete(ctx context.Context, id string) error
}
