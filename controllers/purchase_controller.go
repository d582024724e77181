package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/warranty"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"
	"github.com/shopspring/decimal"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PurchaseController struct {
	DB       *gorm.DB
	Registry *registry.Registry
}

func NewPurchaseController(DB *gorm.DB, reg *registry.Registry) *PurchaseController {
	return &PurchaseController{DB: DB, Registry: reg}
}

func (c *PurchaseController) CreatePurchase(ctx *fiber.Ctx) error {
	var input struct {
		VendorName    string `json:"vendor_name" validate:"required"`
		InvoiceDate   string `json:"invoice_date"`
		CategoryCode  string `json:"category_code" validate:"required"`
		SerialNo      string `json:"serial_no"`
		FromSerial    string `json:"from_serial"`
		ToSerial      string `json:"to_serial"`
		ReceivedDate  string `json:"received_date"`
		WarrantyStart string `json:"warranty_start"`
		WarrantyEnd   string `json:"warranty_end"`
		UnitCost      string `json:"unit_cost"`
		Remarks       string `json:"remarks"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	serialRepo := repositories.NewSerialRepository(c.DB)
	category, err := serialRepo.GetCategoryByCode(input.CategoryCode)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category not found"})
	}

	req := repositories.PurchaseRequest{
		VendorName:   input.VendorName,
		CategoryID:   category.ID,
		SerialNo:     input.SerialNo,
		FromSerial:   input.FromSerial,
		ToSerial:     input.ToSerial,
		Remarks:      input.Remarks,
		Actor:        actorID(ctx),
	}

	if req.InvoiceDate, err = warranty.ParseDate(input.InvoiceDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid invoice_date"})
	}
	if req.ReceivedDate, err = warranty.ParseDate(input.ReceivedDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid received_date"})
	}
	if req.WarrantyStart, err = warranty.ParseDate(input.WarrantyStart); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_start"})
	}
	if req.WarrantyEnd, err = warranty.ParseDate(input.WarrantyEnd); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_end"})
	}

	if input.UnitCost != "" {
		cost, err := decimal.NewFromString(input.UnitCost)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid unit_cost"})
		}
		req.UnitCost = cost
	}

	purchaseRepo := repositories.NewPurchaseRepository(c.DB, c.Registry)
	invoice, err := purchaseRepo.CreatePurchase(req)
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"purchase": invoice}})
}

func (c *PurchaseController) GetPurchases(ctx *fiber.Ctx) error {
	purchaseRepo := repositories.NewPurchaseRepository(c.DB, c.Registry)
	invoices, err := purchaseRepo.GetAllPurchases()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"purchases": invoices}})
}

func (c *PurchaseController) GetPurchase(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	purchaseRepo := repositories.NewPurchaseRepository(c.DB, c.Registry)
	invoice, err := purchaseRepo.GetPurchase(int64(id))
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"purchase": invoice}})
}

// UpdateWarranty corrects the warranty window on one received unit.
func (c *PurchaseController) UpdateWarranty(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var input struct {
		WarrantyStart string `json:"warranty_start"`
		WarrantyEnd   string `json:"warranty_end"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	start, err := warranty.ParseDate(input.WarrantyStart)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_start"})
	}
	end, err := warranty.ParseDate(input.WarrantyEnd)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_end"})
	}

	purchaseRepo := repositories.NewPurchaseRepository(c.DB, c.Registry)
	if err := purchaseRepo.UpdateWarranty(int64(id), start, end, actorID(ctx)); err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
