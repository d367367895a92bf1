package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/CollectraHQ/Collectra/app/models"
	"github.com/CollectraHQ/Collectra/app/repository"
	"github.com/CollectraHQ/Collectra/internal/pkg/usercontext"
)

// HandleListAlerts returns the caller's alerts, optionally filtered by
// status.
func HandleListAlerts(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	repo := repository.GetGlobalFactory().GetAlertRepository()
	alerts, err := repo.List(userCtx.BankID, c.Query("status"), offset, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list alerts")
	}

	return c.JSON(fiber.Map{"alerts": alerts, "offset": offset, "limit": limit})
}

// HandleAcknowledgeAlert marks an open alert as acknowledged. Alerts of
// other banks read as not found.
func HandleAcknowledgeAlert(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid alert id")
	}

	repo := repository.GetGlobalFactory().GetAlertRepository()
	alert, err := repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Alert not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to acknowledge alert")
	}
	if !alertVisibleTo(alert, userCtx.BankID) {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Alert not found")
	}

	if err := repo.Acknowledge(uint(id)); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to acknowledge alert")
	}

	return c.JSON(fiber.Map{"success": true})
}

// alertVisibleTo reports whether the bank may see the alert: its own rows
// plus system alerts carrying no bank (unattributed variance candidates).
func alertVisibleTo(alert *models.Alert, bankID uint) bool {
	return alert.BankID == bankID || alert.BankID == 0
}
