package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/allocation"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SerialController struct {
	DB       *gorm.DB
	Registry *registry.Registry
}

func NewSerialController(DB *gorm.DB, reg *registry.Registry) *SerialController {
	return &SerialController{DB: DB, Registry: reg}
}

// Allocate resolves a category/quantity/range request into concrete
// serial numbers. A shortfall comes back as partial=true with the
// missing count, so the form can offer "only N available".
func (c *SerialController) Allocate(ctx *fiber.Ctx) error {
	var input struct {
		CategoryCode string `json:"category_code" validate:"required"`
		SerialNo     string `json:"serial_no"`
		FromSerial   string `json:"from_serial"`
		ToSerial     string `json:"to_serial"`
		Quantity     int    `json:"quantity"`
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

	saleRepo := repositories.NewSaleRepository(c.DB, c.Registry)
	result, err := saleRepo.AllocateForSale(allocation.Request{
		CategoryID: category.ID,
		SerialNo:   input.SerialNo,
		FromSerial: input.FromSerial,
		ToSerial:   input.ToSerial,
		Quantity:   input.Quantity,
	})
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"serials":   result.Serials,
			"partial":   result.Partial,
			"shortfall": result.Shortfall,
		},
	})
}

func (c *SerialController) GetSerial(ctx *fiber.Ctx) error {
	serialNo := ctx.Params("serial_no")

	serial, err := c.Registry.Lookup(serialNo)
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"serial_no":   serial.SerialNo,
			"category_id": serial.CategoryID,
			"stage":       serial.Stage,
			"stage_ref":   serial.StageRef,
			"created_at":  serial.CreatedAt,
		},
	})
}

func (c *SerialController) GetSerials(ctx *fiber.Ctx) error {
	serialRepo := repositories.NewSerialRepository(c.DB)
	serials, err := serialRepo.ListSerials(ctx.Query("stage"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"serials": serials}})
}

func (c *SerialController) GetCategories(ctx *fiber.Ctx) error {
	serialRepo := repositories.NewSerialRepository(c.DB)
	categories, err := serialRepo.GetAllCategories()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"categories": categories}})
}
