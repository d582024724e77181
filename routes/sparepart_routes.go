package routes

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers"
	"github.com/Mohanraj-TZ/vci-ui-sub000/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSparePartRoutes(app *fiber.App, db *gorm.DB) {
	sparePartController := controllers.NewSparePartController(db)

	api := app.Group(config.MAIN_ROUTES+"/spare-parts", middleware.AuthMiddleware)
	api.Get("/", sparePartController.GetSpareParts)
	api.Post("/", sparePartController.CreateSparePart)
	api.Post("/adjust", sparePartController.AdjustStock)
}
