package domain

import (
	"testing"
	"time"
)

func TestDocument_StringField(t *testing.T) {
	doc := Document{
		Type: TypeUser,
		Fields: map[string]any{
			"email": "test@example.com",
			"count": 3,
		},
	}

	if got := doc.StringField("email"); got != "test@example.com" {
		t.Errorf("expected email, got %q", got)
	}
	if got := doc.StringField("missing"); got != "" {
		t.Errorf("expected empty string for missing field, got %q", got)
	}
	if got := doc.StringField("count"); got != "" {
		t.Errorf("expected empty string for non-string field, got %q", got)
	}
}

func TestDocument_TimeField(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	tests := []struct {
		name  string
		value any
		want  *time.Time
	}{
		{"time value", now, &now},
		{"rfc3339 string", now.Format(time.RFC3339Nano), &now},
		{"garbage string", "not-a-time", nil},
		{"wrong type", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Fields: map[string]any{"expires": tt.value}}
			got := doc.TimeField("expires")
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected time, got nil")
			}
			if !got.Equal(*tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDocument_TimeField_Missing(t *testing.T) {
	doc := Document{Fields: map[string]any{}}
	if got := doc.TimeField("expires"); got != nil {
		t.Errorf("expected nil for missing field, got %v", got)
	}
}

func TestDocument_Matches(t *testing.T) {
	doc := Document{
		ID:   "account.1",
		Type: TypeAccount,
		Fields: map[string]any{
			"providerId":        "google",
			"providerAccountId": "12345",
		},
	}

	tests := []struct {
		name  string
		query Query
		want  bool
	}{
		{
			name:  "full match",
			query: Query{Type: TypeAccount, Where: map[string]any{"providerId": "google", "providerAccountId": "12345"}},
			want:  true,
		},
		{
			name:  "type mismatch",
			query: Query{Type: TypeSession, Where: map[string]any{"providerId": "google"}},
			want:  false,
		},
		{
			name:  "value mismatch",
			query: Query{Type: TypeAccount, Where: map[string]any{"providerId": "github"}},
			want:  false,
		},
		{
			name:  "missing field",
			query: Query{Type: TypeAccount, Where: map[string]any{"nope": "x"}},
			want:  false,
		},
		{
			name:  "empty where matches any of type",
			query: Query{Type: TypeAccount},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.Matches(tt.query); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
