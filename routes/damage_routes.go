package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupDamageRoutes(app *fiber.App, db *gorm.DB, reg *registry.Registry) {
	damageController := controllers.NewDamageController(db, reg)

	api := app.Group(config.MAIN_ROUTES+"/damages", middleware.AuthMiddleware)
	api.Get("/", damageController.GetDamages)
	api.Post("/", damageController.MarkDamaged)
	api.Put("/:id/status", damageController.UpdateStatus)
}
