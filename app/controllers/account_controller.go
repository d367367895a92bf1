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

type createAccountRequest struct {
	AccountNumber   string `json:"account_number"`
	BorrowerName    string `json:"borrower_name"`
	BorrowerMobile  string `json:"borrower_mobile"`
	BorrowerAddress string `json:"borrower_address"`
	Outstanding     string `json:"outstanding"`
	AssignedAgentID *uint  `json:"assigned_agent_id"`
}

// HandleCreateAccount registers a delinquent loan account for the caller's
// bank.
func HandleCreateAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid JSON body")
	}

	outstanding, err := decimal.NewFromString(req.Outstanding)
	if err != nil || outstanding.IsNegative() {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "outstanding must be a non-negative decimal")
	}

	account := &models.LoanAccount{
		BankID:          userCtx.BankID,
		AccountNumber:   req.AccountNumber,
		BorrowerName:    req.BorrowerName,
		BorrowerMobile:  req.BorrowerMobile,
		BorrowerAddress: req.BorrowerAddress,
		Outstanding:     outstanding,
		AssignedAgentID: req.AssignedAgentID,
		Status:          models.ACCOUNT_STATUS_ACTIVE,
	}
	if err := account.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	repo := repository.GetGlobalFactory().GetAccountRepository()
	if err := repo.Create(account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errorJSON(c, fiber.StatusConflict, "duplicate_account", "Account number already exists for this bank")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create account")
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// HandleListAccounts returns the caller's accounts, paginated.
func HandleListAccounts(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	repo := repository.GetGlobalFactory().GetAccountRepository()
	accounts, err := repo.List(userCtx.BankID, offset, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list accounts")
	}
	total, err := repo.Count(userCtx.BankID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to count accounts")
	}

	return c.JSON(fiber.Map{"accounts": accounts, "total": total, "offset": offset, "limit": limit})
}

// HandleGetAccount returns a single account by public id.
func HandleGetAccount(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetAccountRepository()
	account, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load account")
	}
	if account.BankID != userCtx.BankID {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
	}

	return c.JSON(account)
}

type createActivityRequest struct {
	Type       string     `json:"type"`
	Notes      string     `json:"notes"`
	PTPAmount  *string    `json:"ptp_amount"`
	PTPDate    *time.Time `json:"ptp_date"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// HandleCreateActivity logs a contact activity against an account. The
// newest activity per account resets the no-update SLA clock.
func HandleCreateActivity(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	factory := repository.GetGlobalFactory()
	account, err := factory.GetAccountRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load account")
	}
	if account.BankID != userCtx.BankID {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
	}

	var req createActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid JSON body")
	}

	activity := &models.ContactActivity{
		BankID:     userCtx.BankID,
		AccountID:  account.ID,
		AgentID:    userCtx.UserID,
		Type:       req.Type,
		Notes:      req.Notes,
		PTPDate:    req.PTPDate,
		OccurredAt: req.OccurredAt,
	}
	if activity.OccurredAt.IsZero() {
		activity.OccurredAt = time.Now()
	}
	if req.PTPAmount != nil {
		amount, err := decimal.NewFromString(*req.PTPAmount)
		if err != nil || !amount.IsPositive() {
			return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "ptp_amount must be a positive decimal")
		}
		activity.PTPAmount = &amount
	}
	if err := activity.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	}

	if err := factory.GetActivityRepository().Create(activity); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record activity")
	}

	return c.Status(fiber.StatusCreated).JSON(activity)
}

// HandleListActivities returns the contact history of an account.
func HandleListActivities(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	offset, limit := pagination(c)

	factory := repository.GetGlobalFactory()
	account, err := factory.GetAccountRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load account")
	}
	if account.BankID != userCtx.BankID {
		return errorJSON(c, fiber.StatusNotFound, "not_found", "Account not found")
	}

	activities, err := factory.GetActivityRepository().ListByAccount(account.ID, offset, limit)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to list activities")
	}

	return c.JSON(fiber.Map{"activities": activities, "offset": offset, "limit": limit})
}
