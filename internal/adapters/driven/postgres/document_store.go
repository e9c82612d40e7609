package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using a single JSONB
// table in PostgreSQL. Equality queries use the containment operator
// over the GIN-indexed fields column.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Create inserts a new document under a store-assigned ID
func (s *DocumentStore) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	doc.ID = fmt.Sprintf("%s.%s", doc.Type, uuid.NewString())

	fields, err := json.Marshal(doc.Fields)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to marshal fields: %w", err)
	}

	query := `INSERT INTO documents (id, doc_type, fields) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, doc.ID, doc.Type, fields); err != nil {
		return domain.Document{}, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (domain.Document, error) {
	query := `SELECT id, doc_type, fields FROM documents WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// FetchOne returns the first document of the queried type containing
// every constraint field
func (s *DocumentStore) FetchOne(ctx context.Context, q domain.Query) (domain.Document, error) {
	where := q.Where
	if where == nil {
		where = map[string]any{}
	}
	constraint, err := json.Marshal(where)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to marshal query: %w", err)
	}

	query := `
		SELECT id, doc_type, fields
		FROM documents
		WHERE doc_type = $1 AND fields @> $2
		LIMIT 1
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, q.Type, constraint))
}

// Patch merges fields into an existing document and returns the
// committed result
func (s *DocumentStore) Patch(ctx context.Context, id string, fields map[string]any) (domain.Document, error) {
	patch, err := json.Marshal(fields)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to marshal patch: %w", err)
	}

	query := `
		UPDATE documents
		SET fields = fields || $2, updated_at = now()
		WHERE id = $1
		RETURNING id, doc_type, fields
	`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id, patch))
}

// Delete removes a document by ID. Deleting an absent document is not
// an error.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *DocumentStore) scanOne(row *sql.Row) (domain.Document, error) {
	var doc domain.Document
	var fields []byte

	err := row.Scan(&doc.ID, &doc.Type, &fields)
	if err == sql.ErrNoRows {
		return domain.Document{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Document{}, err
	}

	if err := json.Unmarshal(fields, &doc.Fields); err != nil {
		return domain.Document{}, fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	return doc, nil
}
