package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/CollectraHQ/Collectra/app/controllers"
	"github.com/CollectraHQ/Collectra/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	v1 := api.Group("/v1", middleware.APIKeyAuthMiddleware())

	v1.Post("/accounts", controllers.HandleCreateAccount)
	v1.Get("/accounts", controllers.HandleListAccounts)
	v1.Get("/accounts/:uuid", controllers.HandleGetAccount)
	v1.Post("/accounts/:uuid/activities", controllers.HandleCreateActivity)
	v1.Get("/accounts/:uuid/activities", controllers.HandleListActivities)

	v1.Post("/collections", controllers.HandleCreateCollection)
	v1.Get("/collections", controllers.HandleListCollections)
	v1.Post("/collections/:uuid/approve", controllers.HandleApproveCollection)
	v1.Post("/collections/:uuid/reject", controllers.HandleRejectCollection)

	v1.Get("/alerts", controllers.HandleListAlerts)
	v1.Post("/alerts/:id/acknowledge", controllers.HandleAcknowledgeAlert)

	v1.Get("/reconciliations", controllers.HandleListReconciliations)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
