package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPurchaseRoutes(app *fiber.App, db *gorm.DB, reg *registry.Registry) {
	purchaseController := controllers.NewPurchaseController(db, reg)

	api := app.Group(config.MAIN_ROUTES+"/purchases", middleware.AuthMiddleware)
	api.Get("/", purchaseController.GetPurchases)
	api.Post("/", purchaseController.CreatePurchase)
	api.Get("/:id", purchaseController.GetPurchase)
	api.Put("/items/:id/warranty", purchaseController.UpdateWarranty)
}
