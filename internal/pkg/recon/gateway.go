package recon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/CollectraHQ/Collectra/internal/pkg/env"
)

// Headers carries the authentication headers of an inbound delivery.
type Headers struct {
	Signature string
	Timestamp string
}

// SecretSource resolves the per-provider shared webhook secret.
type SecretSource interface {
	Secret(provider string) (string, error)
}

// EnvSecrets reads secrets from WEBHOOK_SECRET_<PROVIDER>. An unset secret
// is a hard error so a misconfigured provider never accepts unsigned
// payloads silently.
type EnvSecrets struct{}

func (EnvSecrets) Secret(provider string) (string, error) {
	key := "WEBHOOK_SECRET_" + strings.ToUpper(provider)
	secret := strings.TrimSpace(env.GetEnv(key, ""))
	if secret == "" {
		return "", fmt.Errorf("%w: %s", ErrNoSecret, key)
	}
	return secret, nil
}

// Gateway authenticates and normalizes inbound provider payloads. It is
// stateless; all persistence happens through the ledger it delegates to.
type Gateway struct {
	secrets   SecretSource
	ledger    *Ledger
	tolerance time.Duration
	now       func() time.Time
}

// NewGateway builds a gateway. Zero tolerance falls back to
// DefaultReplayTolerance, nil clock to time.Now.
func NewGateway(secrets SecretSource, ledger *Ledger, tolerance time.Duration, now func() time.Time) *Gateway {
	if secrets == nil {
		secrets = EnvSecrets{}
	}
	if tolerance <= 0 {
		tolerance = DefaultReplayTolerance
	}
	if now == nil {
		now = time.Now
	}
	return &Gateway{secrets: secrets, ledger: ledger, tolerance: tolerance, now: now}
}

// Accept runs the full inbound pipeline: signature, replay window, schema,
// then idempotent recording and matching via the ledger.
func (g *Gateway) Accept(ctx context.Context, provider string, body []byte, h Headers) (*Result, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if !KnownProvider(provider) {
		return nil, ErrUnknownProvider
	}

	secret, err := g.secrets.Secret(provider)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(h.Signature) == "" {
		return nil, ErrMissingSignature
	}
	if !VerifySignature(secret, h.Signature, h.Timestamp, body) {
		return nil, ErrInvalidSignature
	}
	if strings.TrimSpace(h.Timestamp) != "" {
		if err := CheckTimestamp(h.Timestamp, g.now(), g.tolerance); err != nil {
			return nil, err
		}
	}

	ev, err := DecodeEvent(provider, body, g.now())
	if err != nil {
		// Schema failures are audited when the external id is still
		// extractable; otherwise there is nothing trustworthy to key on.
		if txnID := ExtractExternalTxnID(provider, body); txnID != "" {
			if recErr := g.ledger.RecordSchemaRejection(ctx, provider, txnID); recErr != nil {
				return nil, recErr
			}
		}
		return nil, err
	}

	return g.ledger.Record(ctx, ev)
}
