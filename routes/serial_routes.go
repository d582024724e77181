package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSerialRoutes(app *fiber.App, db *gorm.DB, reg *registry.Registry) {
	serialController := controllers.NewSerialController(db, reg)
	timelineController := controllers.NewTimelineController(db)
	warrantyController := controllers.NewWarrantyController(db)

	api := app.Group(config.MAIN_ROUTES+"/serials", middleware.AuthMiddleware)
	api.Get("/", serialController.GetSerials)
	api.Post("/allocate", serialController.Allocate)
	api.Get("/:serial_no", serialController.GetSerial)
	api.Get("/:serial_no/timeline", timelineController.GetTimeline)
	api.Get("/:serial_no/warranty", warrantyController.GetSerialWarranty)

	categories := app.Group(config.MAIN_ROUTES+"/categories", middleware.AuthMiddleware)
	categories.Get("/", serialController.GetCategories)

	warranty := app.Group(config.MAIN_ROUTES+"/warranty", middleware.AuthMiddleware)
	warranty.Get("/status", warrantyController.GetStatus)
}
