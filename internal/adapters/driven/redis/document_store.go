package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

const (
	// Key prefixes for Redis
	docPrefix  = "doc:"
	typePrefix = "docs:"
)

// DocumentStore implements driven.DocumentStore using Redis.
// Documents are stored as JSON blobs keyed by ID, with a per-type set
// of IDs so equality queries can scan one record kind.
type DocumentStore struct {
	client *redis.Client
}

// NewDocumentStore creates a new Redis-backed DocumentStore
func NewDocumentStore(client *redis.Client) *DocumentStore {
	return &DocumentStore{client: client}
}

// Create stores a new document under a store-assigned ID
func (s *DocumentStore) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	doc.ID = fmt.Sprintf("%s.%s", doc.Type, uuid.NewString())

	data, err := json.Marshal(doc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, docPrefix+doc.ID, data, 0)
	pipe.SAdd(ctx, typePrefix+doc.Type, doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return doc, nil
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (domain.Document, error) {
	data, err := s.client.Get(ctx, docPrefix+id).Bytes()
	if err == redis.Nil {
		return domain.Document{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return doc, nil
}

// FetchOne returns the first document of the queried type matching
// every equality constraint
func (s *DocumentStore) FetchOne(ctx context.Context, q domain.Query) (domain.Document, error) {
	ids, err := s.client.SMembers(ctx, typePrefix+q.Type).Result()
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to list documents: %w", err)
	}

	for _, id := range ids {
		doc, err := s.Get(ctx, id)
		if err == domain.ErrNotFound {
			// ID set can lag behind deletes; clean up lazily.
			s.client.SRem(ctx, typePrefix+q.Type, id)
			continue
		}
		if err != nil {
			return domain.Document{}, err
		}
		if doc.Matches(q) {
			return doc, nil
		}
	}
	return domain.Document{}, domain.ErrNotFound
}

// Patch merges fields into an existing document and commits the result
func (s *DocumentStore) Patch(ctx context.Context, id string, fields map[string]any) (domain.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	for k, v := range fields {
		doc.Fields[k] = v
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := s.client.Set(ctx, docPrefix+id, data, 0).Err(); err != nil {
		return domain.Document{}, fmt.Errorf("failed to patch document: %w", err)
	}
	return doc, nil
}

// Ping verifies the Redis connection
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Delete removes a document and its type-set entry
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err == domain.ErrNotFound {
		return nil // Already deleted
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, docPrefix+id)
	pipe.SRem(ctx, typePrefix+doc.Type, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
