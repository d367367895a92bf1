package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CollectraHQ/Collectra/app/models"
	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/usercontext"
)

type createCollectionRequest struct {
	AccountUUID   string    `json:"account_uuid"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	CollectedAt   time.Time `json:"collected_at"`
	ExternalTxnID string    `json:"external_txn_id"`
	Notes         string    `json:"notes"`
}

// HandleCreateCollection submits a pending collection for later confirmation
// by webhook (wallet types) or manual review (deposit types).
func HandleCreateCollection(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid JSON body")
	}

	factory := repository.GetGlobalFactory()
	account, err := factory.GetAccountRepository().GetByUUID(req.AccountUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load account")
	}
	if account.BankID != userCtx.BankID {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
	}
	if !account.IsWorkable() {
		return errorJSON(c, fiber.StatusUnprocessableEntity, "account_not_workable", "Account cannot receive collections in its current status")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "amount must be a decimal string")
	}

	pc := &models.PendingCollection{
		BankID:        userCtx.BankID,
		AccountID:     account.ID,
		AgentID:       userCtx.UserID,
		Type:          req.Type,
		Amount:        amount,
		Currency:      req.Currency,
		CollectedAt:   req.CollectedAt,
		ExternalTxnID: req.ExternalTxnID,
		Status:        models.COLLECTION_PENDING,
		Notes:         req.Notes,
	}
	if pc.Currency == "" {
		pc.Currency = "BDT"
	}
	if pc.CollectedAt.IsZero() {
		pc.CollectedAt = time.Now()
	}
	if err := pc.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	if err := factory.GetCollectionRepository().Create(pc); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create collection")
	}

	return c.Status(fiber.StatusCreated).JSON(pc)
}

// HandleListCollections returns the caller's collections, optionally
// filtered by status.
func HandleListCollections(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	repo := repository.GetGlobalFactory().GetCollectionRepository()
	collections, err := repo.List(userCtx.BankID, c.Query("status"), offset, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list collections")
	}

	return c.JSON(fiber.Map{"collections": collections, "offset": offset, "limit": limit})
}

type decideCollectionRequest struct {
	ExternalTxnID string `json:"external_txn_id"`
}

// HandleApproveCollection manually confirms a pending collection. It runs
// the same conditional claim the webhook matcher uses, so a concurrent
// webhook match wins or loses atomically, never both.
func HandleApproveCollection(c *fiber.Ctx) error {
	return decideCollection(c, true)
}

// HandleRejectCollection manually rejects a pending collection.
func HandleRejectCollection(c *fiber.Ctx) error {
	return decideCollection(c, false)
}

func decideCollection(c *fiber.Ctx, approve bool) error {
	userCtx := usercontext.GetUserContext(c)
	if userCtx.Role != models.ROLE_MANAGER && userCtx.Role != models.ROLE_ADMIN {
		return errorJSON(c, fiber.StatusForbidden, "forbidden", "Manager role required")
	}

	var req decideCollectionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid JSON body")
		}
	}

	factory := repository.GetGlobalFactory()
	pc, err := factory.GetCollectionRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Collection not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load collection")
	}
	if pc.BankID != userCtx.BankID {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Collection not found")
	}

	rec, claimed, err := factory.GetReconciliationRepository().DecideManually(pc.ID, approve, req.ExternalTxnID, time.Now())
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to decide collection")
	}
	if !claimed {
		return errorJSON(c, fiber.StatusConflict, "already_decided", "Collection is no longer pending")
	}

	resp := fiber.Map{"success": true, "collectionId": pc.UUID}
	if rec != nil {
		resp["reconciliationId"] = rec.ID
	}
	return c.JSON(resp)
}
