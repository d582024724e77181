package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DamageController struct {
	DB       *gorm.DB
	Registry *registry.Registry
}

func NewDamageController(DB *gorm.DB, reg *registry.Registry) *DamageController {
	return &DamageController{DB: DB, Registry: reg}
}

func (c *DamageController) MarkDamaged(ctx *fiber.Ctx) error {
	var input struct {
		SerialNo       string `json:"serial_no"`
		PurchaseItemID int64  `json:"purchase_item_id"`
		Transportation string `json:"transportation"`
		Remarks        string `json:"remarks"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// PCB damage comes in keyed by the purchase item instead of a serial.
	if input.SerialNo == "" && input.PurchaseItemID == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "serial_no or purchase_item_id is required"})
	}

	damageRepo := repositories.NewDamageRepository(c.DB, c.Registry)
	record, err := damageRepo.MarkDamaged(repositories.DamageRequest{
		SerialNo:       input.SerialNo,
		PurchaseItemID: input.PurchaseItemID,
		Transportation: input.Transportation,
		Remarks:        input.Remarks,
		Actor:          actorID(ctx),
	})
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"damage": record}})
}

func (c *DamageController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var input struct {
		Status  string `json:"status" validate:"required"`
		Remarks string `json:"remarks"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	damageRepo := repositories.NewDamageRepository(c.DB, c.Registry)
	record, err := damageRepo.UpdateStatus(int64(id), input.Status, input.Remarks, actorID(ctx))
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"damage": record}})
}

func (c *DamageController) GetDamages(ctx *fiber.Ctx) error {
	damageRepo := repositories.NewDamageRepository(c.DB, c.Registry)

	if serialNo := ctx.Query("serial_no"); serialNo != "" {
		records, err := damageRepo.GetDamagesBySerial(serialNo)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"damages": records}})
	}

	records, err := damageRepo.GetAllDamages()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"damages": records}})
}
