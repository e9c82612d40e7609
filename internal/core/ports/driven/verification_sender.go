package driven

import "context"

// VerificationDelivery is the payload handed to the delivery
// collaborator when a verification request is issued. Token is the
// plaintext token; only its digest is persisted.
type VerificationDelivery struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
	Token      string `json:"token"`
	BaseURL    string `json:"base_url,omitempty"`
}

// VerificationSender delivers a verification message (email, SMS, ...).
// Transport and retry policy belong to the implementation; a failure
// surfaces directly from the issuing operation.
type VerificationSender interface {
	Send(ctx context.Context, d VerificationDelivery) error
}
