package controllers

import (
	"time"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/warranty"
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WarrantyController struct {
	DB *gorm.DB
}

func NewWarrantyController(DB *gorm.DB) *WarrantyController {
	return &WarrantyController{DB: DB}
}

// GetStatus classifies an arbitrary warranty window; used by the purchase
// and sale forms to preview status before saving.
func (c *WarrantyController) GetStatus(ctx *fiber.Ctx) error {
	start, err := warranty.ParseDate(ctx.Query("start"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start date"})
	}
	end, err := warranty.ParseDate(ctx.Query("end"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end date"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"status": warranty.Compute(start, end, time.Now()),
		},
	})
}

// GetSerialWarranty reports the effective warranty of a serial. The sale
// warranty wins over the purchase warranty when both exist; status is
// recomputed from the dates on every call.
func (c *WarrantyController) GetSerialWarranty(ctx *fiber.Ctx) error {
	serialNo := ctx.Params("serial_no")

	var start, end *time.Time
	source := ""

	var purchaseItem models.PurchaseItem
	if err := c.DB.Where("serial_no = ?", serialNo).First(&purchaseItem).Error; err == nil {
		start, end = purchaseItem.WarrantyStart, purchaseItem.WarrantyEnd
		source = "purchase"
	}

	var saleItem models.SaleItem
	if err := c.DB.Where("serial_no = ? AND status = ?", serialNo, "sold").
		Order("created_at desc").First(&saleItem).Error; err == nil {
		if saleItem.WarrantyStart != nil && saleItem.WarrantyEnd != nil {
			start, end = saleItem.WarrantyStart, saleItem.WarrantyEnd
			source = "sale"
		}
	}

	if source == "" {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "serial not found"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"serial_no":      serialNo,
			"source":         source,
			"warranty_start": start,
			"warranty_end":   end,
			"status":         warranty.Compute(start, end, time.Now()),
		},
	})
}
