package main

import (
	"fmt"
	"log"

	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/controllers/idgen"
	"github.com/Mohanraj-TZ/vci-ui-sub000/database"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"
	"github.com/Mohanraj-TZ/vci-ui-sub000/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// The registry is the single source of truth for lifecycle stages;
	// it hydrates from the serials table once and owns it from there.
	reg, err := registry.Open(repositories.NewSerialRepository(db))
	if err != nil {
		log.Fatalf("Failed to load serial registry: %v", err)
	}

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupSerialRoutes(app, db, reg)
	routes.SetupPurchaseRoutes(app, db, reg)
	routes.SetupSaleRoutes(app, db, reg)
	routes.SetupDamageRoutes(app, db, reg)
	routes.SetupServiceRoutes(app, db, reg)
	routes.SetupSparePartRoutes(app, db)
	routes.SetupReportRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
