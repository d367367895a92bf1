package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CollectraHQ/Collectra/app/controllers"
)

type HttpRouter struct {
}

// InstallRouter registers the unauthenticated surface: the provider webhook
// endpoint (authenticated by HMAC signature, not API key) and the health
// probe.
func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/webhook/:provider", controllers.HandleProviderWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
