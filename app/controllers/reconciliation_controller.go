package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/usercontext"
)

// HandleListReconciliations returns the caller's reconciliation ledger,
// newest first.
func HandleListReconciliations(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	repo := repository.GetGlobalFactory().GetReconciliationRepository()
	records, err := repo.List(userCtx.BankID, offset, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list reconciliations")
	}

	return c.JSON(fiber.Map{"reconciliations": records, "offset": offset, "limit": limit})
}
