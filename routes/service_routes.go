package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupServiceRoutes(app *fiber.App, db *gorm.DB, reg *registry.Registry) {
	serviceController := controllers.NewServiceController(db, reg)

	api := app.Group(config.MAIN_ROUTES+"/challans", middleware.AuthMiddleware)
	api.Get("/", serviceController.GetChallans)
	api.Post("/", serviceController.CreateChallan)
	api.Get("/urgent", serviceController.GetUrgentPending)
	api.Get("/:id", serviceController.GetChallan)
	api.Post("/:id/movements", serviceController.RecordMovement)

	items := app.Group(config.MAIN_ROUTES+"/service-items", middleware.AuthMiddleware)
	items.Put("/:id/repair", serviceController.CompleteRepair)
}
