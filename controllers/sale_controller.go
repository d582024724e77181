package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/warranty"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SaleController struct {
	DB       *gorm.DB
	Registry *registry.Registry
}

func NewSaleController(DB *gorm.DB, reg *registry.Registry) *SaleController {
	return &SaleController{DB: DB, Registry: reg}
}

// CreateSale sells an explicit list of serials. The declared quantity
// must match the list exactly; a mismatch comes back as 422 so the
// client can fix the form instead of guessing which side was right.
func (c *SaleController) CreateSale(ctx *fiber.Ctx) error {
	var input struct {
		CustomerName  string   `json:"customer_name" validate:"required"`
		InvoiceDate   string   `json:"invoice_date"`
		Quantity      int      `json:"quantity" validate:"required,min=1"`
		Serials       []string `json:"serials" validate:"required,min=1"`
		ShipmentDate  string   `json:"shipment_date"`
		DeliveryDate  string   `json:"delivery_date"`
		WarrantyStart string   `json:"warranty_start"`
		WarrantyEnd   string   `json:"warranty_end"`
		Remarks       string   `json:"remarks"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := repositories.SaleRequest{
		CustomerName: input.CustomerName,
		Quantity:     input.Quantity,
		Serials:      input.Serials,
		Remarks:      input.Remarks,
		Actor:        actorID(ctx),
	}

	var err error
	if req.InvoiceDate, err = warranty.ParseDate(input.InvoiceDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid invoice_date"})
	}
	if req.ShipmentDate, err = warranty.ParseDate(input.ShipmentDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid shipment_date"})
	}
	if req.DeliveryDate, err = warranty.ParseDate(input.DeliveryDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid delivery_date"})
	}
	if req.WarrantyStart, err = warranty.ParseDate(input.WarrantyStart); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_start"})
	}
	if req.WarrantyEnd, err = warranty.ParseDate(input.WarrantyEnd); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid warranty_end"})
	}

	saleRepo := repositories.NewSaleRepository(c.DB, c.Registry)
	invoice, err := saleRepo.CreateSale(req)
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"sale": invoice}})
}

func (c *SaleController) ReturnSale(ctx *fiber.Ctx) error {
	var input struct {
		SerialNo  string `json:"serial_no" validate:"required"`
		InvoiceNo string `json:"invoice_no"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	saleRepo := repositories.NewSaleRepository(c.DB, c.Registry)
	if err := saleRepo.ReturnSale(input.SerialNo, input.InvoiceNo, actorID(ctx)); err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *SaleController) GetSales(ctx *fiber.Ctx) error {
	saleRepo := repositories.NewSaleRepository(c.DB, c.Registry)
	invoices, err := saleRepo.GetAllSales()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"sales": invoices}})
}

func (c *SaleController) GetSale(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	saleRepo := repositories.NewSaleRepository(c.DB, c.Registry)
	invoice, err := saleRepo.GetSale(int64(id))
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"sale": invoice}})
}
