package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSaleRoutes(app *fiber.App, db *gorm.DB, reg *registry.Registry) {
	saleController := controllers.NewSaleController(db, reg)

	api := app.Group(config.MAIN_ROUTES+"/sales", middleware.AuthMiddleware)
	api.Get("/", saleController.GetSales)
	api.Post("/", saleController.CreateSale)
	api.Post("/return", saleController.ReturnSale)
	api.Get("/:id", saleController.GetSale)
}
