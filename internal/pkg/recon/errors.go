package recon

import "errors"

// Error taxonomy for webhook processing. Authentication, replay and schema
// failures map to 4xx responses and are never retried internally; the
// provider's own redelivery policy governs retries, which the idempotency
// key makes safe. Persistence failures map to 5xx so the provider retries.
var (
	// ErrUnknownProvider rejects webhooks for providers we have no decoder for.
	ErrUnknownProvider = errors.New("unknown payment provider")

	// ErrNoSecret means no shared secret is configured for the provider.
	// Configuration must fail loudly instead of accepting unsigned payloads.
	ErrNoSecret = errors.New("no webhook secret configured")

	// ErrMissingSignature rejects deliveries without a signature header.
	ErrMissingSignature = errors.New("missing webhook signature")

	// ErrInvalidSignature rejects deliveries whose HMAC does not match.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrReplay rejects deliveries whose timestamp is outside the allowed
	// tolerance around now, or cannot be parsed at all.
	ErrReplay = errors.New("webhook timestamp outside tolerance")

	// ErrSchema rejects payloads that fail the provider's required-field schema.
	ErrSchema = errors.New("invalid webhook payload")

	// ErrPersistence wraps transient storage failures.
	ErrPersistence = errors.New("persistence failure")
)
