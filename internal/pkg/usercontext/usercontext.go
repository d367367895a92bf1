package usercontext

import "github.com/gofiber/fiber/v2"

const contextKey = "USER_CONTEXT"

// UserContext represents the authenticated API caller for a request.
type UserContext struct {
	UserID     uint   `json:"user_id"`
	BankID     uint   `json:"bank_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// Set stores the user context on the fiber context.
func Set(c *fiber.Ctx, ctx UserContext) {
	c.Locals(contextKey, ctx)
}

// GetUserContext retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(contextKey); ctx != nil {
		if uc, ok := ctx.(UserContext); ok {
			return uc
		}
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current caller is authenticated.
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// BankID returns the tenant id of the current caller, or 0.
func BankID(c *fiber.Ctx) uint {
	return GetUserContext(c).BankID
}
