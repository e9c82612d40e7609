package domain

import "time"

// Record type tags used by the document store. Every persisted record
// carries exactly one of these.
const (
	TypeUser                = "user"
	TypeAccount             = "account"
	TypeSession             = "session"
	TypeVerificationRequest = "verificationrequest"
)

// Document is the generic schema-less record shape the store works with.
// The store owns the ID; callers leave it empty on create.
type Document struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Fields map[string]any `json:"fields"`
}

// Query selects at most one document of a given type by field equality.
type Query struct {
	Type  string
	Where map[string]any
}

// StringField returns the named field as a string, or "" if absent
// or not a string.
func (d Document) StringField(name string) string {
	s, _ := d.Fields[name].(string)
	return s
}

// TimeField returns the named field as a timestamp. Timestamps are
// persisted as RFC 3339 strings; a missing or unparseable field
// returns nil.
func (d Document) TimeField(name string) *time.Time {
	switch v := d.Fields[name].(type) {
	case time.Time:
		return &v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil
		}
		return &t
	default:
		return nil
	}
}

// Matches reports whether the document satisfies every equality
// constraint in the query.
func (d Document) Matches(q Query) bool {
	if d.Type != q.Type {
		return false
	}
	for k, want := range q.Where {
		got, ok := d.Fields[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}
