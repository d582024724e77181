package database

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the tracker uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Serial{},
		&models.PurchaseInvoice{},
		&models.PurchaseItem{},
		&models.SaleInvoice{},
		&models.SaleItem{},
		&models.DamageRecord{},
		&models.Challan{},
		&models.ChallanMovement{},
		&models.ServiceItem{},
		&models.RepairHistory{},
		&models.SparePart{},
		&models.SparePartUsage{},
		&models.TransactionHistory{},
	)
}
