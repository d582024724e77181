package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/models"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"
	"github.com/shopspring/decimal"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SparePartController struct {
	DB *gorm.DB
}

func NewSparePartController(DB *gorm.DB) *SparePartController {
	return &SparePartController{DB: DB}
}

func (c *SparePartController) GetSpareParts(ctx *fiber.Ctx) error {
	repo := repositories.NewSparePartRepository(c.DB)
	parts, err := repo.GetAllSpareParts()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"spare_parts": parts}})
}

func (c *SparePartController) CreateSparePart(ctx *fiber.Ctx) error {
	var input struct {
		PartCode  string `json:"part_code" validate:"required"`
		Name      string `json:"name" validate:"required"`
		Balance   int    `json:"balance" validate:"min=0"`
		UnitPrice string `json:"unit_price"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	part := models.SparePart{
		PartCode:  input.PartCode,
		Name:      input.Name,
		Balance:   input.Balance,
		CreatedBy: actorID(ctx),
	}
	if input.UnitPrice != "" {
		price, err := decimal.NewFromString(input.UnitPrice)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid unit_price"})
		}
		part.UnitPrice = price
	}

	repo := repositories.NewSparePartRepository(c.DB)
	if err := repo.CreateSparePart(&part); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"spare_part": part}})
}

// AdjustStock receives or writes off spare part stock outside of repairs.
func (c *SparePartController) AdjustStock(ctx *fiber.Ctx) error {
	var input struct {
		PartCode string `json:"part_code" validate:"required"`
		Delta    int    `json:"delta" validate:"required"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewSparePartRepository(c.DB)
	part, err := repo.AdjustStock(input.PartCode, input.Delta, actorID(ctx))
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"spare_part": part}})
}
