package database

import (
	"errors"
	"log"

	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders inserts the baseline rows a fresh install needs: the serial
// categories and an admin login. Existing rows are left alone.
func RunSeeders(db *gorm.DB) {
	seedCategories(db)
	seedAdminUser(db)
}

func seedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Code: "VCI", Name: "VCI Device"},
		{Code: "PCB", Name: "PCB Board"},
		{Code: "SPARE", Name: "Spare Part"},
	}

	for _, c := range categories {
		var existing models.Category
		err := db.Where("code = ?", c.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				log.Printf("seed category %s: %v", c.Code, err)
			}
		}
	}
}

func seedAdminUser(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin user: %v", err)
		return
	}

	user := models.User{
		Username: "admin",
		Name:     "Administrator",
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("seed admin user: %v", err)
	}
}
