package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

func TestWebhookSender_Send_Success(t *testing.T) {
	var received driven.VerificationDelivery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewWebhookSender(srv.URL)
	err := sender.Send(context.Background(), driven.VerificationDelivery{
		Identifier: "ada@example.com",
		URL:        "https://app.example.com/verify?token=raw",
		Token:      "raw",
		BaseURL:    "https://app.example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Identifier != "ada@example.com" || received.Token != "raw" {
		t.Errorf("unexpected payload: %+v", received)
	}
}

func TestWebhookSender_Send_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := NewWebhookSender(srv.URL)
	err := sender.Send(context.Background(), driven.VerificationDelivery{Identifier: "ada@example.com"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestWebhookSender_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sender := NewWebhookSender(srv.URL)
	err := sender.Send(context.Background(), driven.VerificationDelivery{Identifier: "ada@example.com"})
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
}

func TestLogSender_Send(t *testing.T) {
	sender := NewLogSender(nil)
	if err := sender.Send(context.Background(), driven.VerificationDelivery{Identifier: "ada@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
