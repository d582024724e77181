package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)

	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware)
	api.Get("/serial-stock", reportController.GetSerialStock)
	api.Get("/serial-stock/export", reportController.ExportSerialStock)
}
