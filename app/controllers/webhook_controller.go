package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/alerting"
	"github.com/CollectraHQ/Collectra/internal/pkg/notify"
	"github.com/CollectraHQ/Collectra/internal/pkg/recon"
)

// HandleProviderWebhook accepts POST /webhook/:provider deliveries. Both
// first deliveries and idempotent replays answer 200 with the stored
// outcome, so provider retries converge.
func HandleProviderWebhook(c *fiber.Ctx) error {
	provider := c.Params("provider")
	rawBody := append([]byte(nil), c.BodyRaw()...)
	headers := recon.Headers{
		Signature: firstHeaderValue(c, "X-Webhook-Signature", "X-Signature"),
		Timestamp: firstHeaderValue(c, "X-Webhook-Timestamp", "X-Timestamp"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := newReconGateway().Accept(ctx, provider, rawBody, headers)
	if err != nil {
		status, code := statusForAcceptError(err)
		return errorJSON(c, status, code, err.Error())
	}

	resp := fiber.Map{"success": true, "matched": result.Matched}
	if result.CollectionUUID != "" {
		resp["collectionId"] = result.CollectionUUID
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func newReconGateway() *recon.Gateway {
	repos := repository.GetGlobalRepositories()
	alerts := alerting.NewService(repos.Alert, redisCache{})
	notifier := notify.NewService(repos.Notification, nil)
	ledger := recon.NewLedger(repos.ReconStore, recon.NewMatcher(0, nil), alerts, notifier, nil)
	return recon.NewGateway(recon.EnvSecrets{}, ledger, 0, nil)
}

// statusForAcceptError maps the recon error taxonomy onto HTTP statuses.
// 4xx failures are final for this delivery; 5xx asks the provider to retry.
func statusForAcceptError(err error) (int, string) {
	switch {
	case errors.Is(err, recon.ErrUnknownProvider):
		return fiber.StatusNotFound, "unknown_provider"
	case errors.Is(err, recon.ErrMissingSignature), errors.Is(err, recon.ErrInvalidSignature):
		return fiber.StatusUnauthorized, "invalid_signature"
	case errors.Is(err, recon.ErrReplay):
		return fiber.StatusUnauthorized, "replay_detected"
	case errors.Is(err, recon.ErrSchema):
		return fiber.StatusBadRequest, "invalid_payload"
	case errors.Is(err, recon.ErrNoSecret):
		return fiber.StatusInternalServerError, "provider_misconfigured"
	default:
		return fiber.StatusInternalServerError, "webhook_persist_failed"
	}
}
