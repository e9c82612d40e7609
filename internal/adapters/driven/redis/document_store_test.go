package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// setupTestDocumentStore creates a test Redis client and DocumentStore
func setupTestDocumentStore(t *testing.T) (*DocumentStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewDocumentStore(client)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func userDoc(email string) domain.Document {
	return domain.Document{
		Type: domain.TypeUser,
		Fields: map[string]any{
			"name":  "Test User",
			"email": email,
		},
	}
}

func TestDocumentStore_Create_AssignsID(t *testing.T) {
	store, mr, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("test@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected store-assigned ID")
	}

	if !mr.Exists(docPrefix + created.ID) {
		t.Error("expected document key to exist")
	}
	if !mr.Exists(typePrefix + domain.TypeUser) {
		t.Error("expected type index to exist")
	}
}

func TestDocumentStore_Create_DistinctIDs(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	a, err := store.Create(ctx, userDoc("a@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Create(ctx, userDoc("b@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both got %s", a.ID)
	}
}

func TestDocumentStore_Get_Success(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("test@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, got.ID)
	}
	if got.Fields["email"] != "test@example.com" {
		t.Errorf("expected email field, got %v", got.Fields["email"])
	}
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.Get(ctx, "user.nonexistent")
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentStore_Get_InvalidJSON(t *testing.T) {
	store, mr, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	_ = mr.Set(docPrefix+"user.bad", "invalid json data")

	_, err := store.Get(ctx, "user.bad")
	if err == nil {
		t.Error("expected error unmarshaling invalid JSON")
	}
}

func TestDocumentStore_FetchOne_Match(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Create(ctx, userDoc("bob@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeUser,
		Where: map[string]any{"email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected %s, got %s", created.ID, got.ID)
	}
}

func TestDocumentStore_FetchOne_TypeScoped(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.Create(ctx, domain.Document{
		Type:   domain.TypeSession,
		Fields: map[string]any{"email": "ada@example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeUser,
		Where: map[string]any{"email": "ada@example.com"},
	})
	if err != domain.ErrNotFound {
		t.Errorf("queries must be scoped to the record type, got %v", err)
	}
}

func TestDocumentStore_FetchOne_NoMatch(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := store.Create(ctx, userDoc("ada@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeUser,
		Where: map[string]any{"email": "nobody@example.com"},
	})
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentStore_FetchOne_CleansStaleIndex(t *testing.T) {
	store, mr, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate a document key dropped without index cleanup.
	mr.Del(docPrefix + created.ID)

	_, err = store.FetchOne(ctx, domain.Query{
		Type:  domain.TypeUser,
		Where: map[string]any{"email": "ada@example.com"},
	})
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	members, err := mr.Members(typePrefix + domain.TypeUser)
	if err == nil {
		for _, member := range members {
			if member == created.ID {
				t.Error("expected stale ID to be removed from type index")
			}
		}
	}
}

func TestDocumentStore_Patch_MergesFields(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patched, err := store.Patch(ctx, created.ID, map[string]any{
		"name":  "Ada Lovelace",
		"image": "https://example.com/ada.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched.Fields["name"] != "Ada Lovelace" {
		t.Errorf("expected patched name, got %v", patched.Fields["name"])
	}
	if patched.Fields["email"] != "ada@example.com" {
		t.Errorf("untouched fields must survive a patch, got %v", patched.Fields["email"])
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Fields["image"] != "https://example.com/ada.png" {
		t.Errorf("expected committed patch, got %v", got.Fields["image"])
	}
}

func TestDocumentStore_Patch_NotFound(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.Patch(ctx, "user.nonexistent", map[string]any{"name": "x"})
	if err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentStore_Delete_Success(t *testing.T) {
	store, mr, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.Create(ctx, userDoc("ada@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(ctx, created.ID); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	members, err := mr.Members(typePrefix + domain.TypeUser)
	if err == nil {
		for _, member := range members {
			if member == created.ID {
				t.Error("expected ID removed from type index")
			}
		}
	}
}

func TestDocumentStore_Delete_NotFound(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx := context.Background()

	// Deleting a non-existent document should not error
	if err := store.Delete(ctx, "user.nonexistent"); err != nil {
		t.Errorf("unexpected error deleting non-existent document: %v", err)
	}
}

func TestDocumentStore_RedisError(t *testing.T) {
	store, mr, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	// Close miniredis to simulate a connection error
	mr.Close()

	ctx := context.Background()

	if _, err := store.Get(ctx, "user.1"); err == nil || err == domain.ErrNotFound {
		t.Errorf("expected Redis error, got %v", err)
	}
	if _, err := store.Create(ctx, userDoc("x@example.com")); err == nil {
		t.Error("expected error when Redis is unavailable")
	}
	if _, err := store.FetchOne(ctx, domain.Query{Type: domain.TypeUser}); err == nil || err == domain.ErrNotFound {
		t.Errorf("expected Redis error, got %v", err)
	}
}

func TestDocumentStore_ContextCancellation(t *testing.T) {
	store, _, cleanup := setupTestDocumentStore(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Create(ctx, userDoc("x@example.com")); err == nil {
		t.Error("expected error with cancelled context")
	}
}
