package controllers

import (
	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/warranty"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"
	"github.com/Mohanraj-TZ/vci-ui-sub000/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ServiceController struct {
	DB       *gorm.DB
	Registry *registry.Registry
}

func NewServiceController(DB *gorm.DB, reg *registry.Registry) *ServiceController {
	return &ServiceController{DB: DB, Registry: reg}
}

func (c *ServiceController) CreateChallan(ctx *fiber.Ctx) error {
	var input struct {
		ChallanDate string `json:"challan_date"`
		Transporter string `json:"transporter" validate:"required"`
		Remarks     string `json:"remarks"`
		Items       []struct {
			VciSerialNo   string `json:"vci_serial_no" validate:"required"`
			TestingStatus string `json:"testing_status"`
			IssueFound    string `json:"issue_found"`
			IsUrgent      bool   `json:"is_urgent"`
		} `json:"items" validate:"required,min=1,dive"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := repositories.ChallanRequest{
		Transporter: input.Transporter,
		Remarks:     input.Remarks,
		Actor:       actorID(ctx),
	}

	var err error
	if req.ChallanDate, err = warranty.ParseDate(input.ChallanDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid challan_date"})
	}

	var urgent []string
	for _, it := range input.Items {
		req.Items = append(req.Items, repositories.ChallanItemRequest{
			VciSerialNo:   it.VciSerialNo,
			TestingStatus: it.TestingStatus,
			IssueFound:    it.IssueFound,
			IsUrgent:      it.IsUrgent,
		})
		if it.IsUrgent {
			urgent = append(urgent, it.VciSerialNo)
		}
	}

	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	challan, err := serviceRepo.CreateChallan(req)
	if err != nil {
		return engineError(ctx, err)
	}

	if len(urgent) > 0 {
		go func(challanNo string, serials []string) {
			if err := utils.SendUrgentServiceAlert(challanNo, serials); err != nil {
				config.LogError(config.GetLogger(), "service", "CreateChallan",
					"urgent alert mail failed", fiber.Map{"challan_no": challanNo}, err)
			}
		}(challan.ChallanNo, urgent)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": fiber.Map{"challan": challan}})
}

func (c *ServiceController) RecordMovement(ctx *fiber.Ctx) error {
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

	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	if err := serviceRepo.RecordMovement(int64(id), input.Status, input.Remarks, actorID(ctx)); err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *ServiceController) CompleteRepair(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	var input struct {
		TestingStatus string `json:"testing_status"`
		IssueFound    string `json:"issue_found"`
		ActionTaken   string `json:"action_taken" validate:"required"`
		PcbSerialNo   string `json:"pcb_serial_no"`
		Usages        []struct {
			PartCode string `json:"part_code" validate:"required"`
			Quantity int    `json:"quantity" validate:"required,min=1"`
		} `json:"usages" validate:"dive"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req := repositories.RepairRequest{
		ServiceItemID: int64(id),
		TestingStatus: input.TestingStatus,
		IssueFound:    input.IssueFound,
		ActionTaken:   input.ActionTaken,
		PcbSerialNo:   input.PcbSerialNo,
		Actor:         actorID(ctx),
	}
	for _, u := range input.Usages {
		req.Usages = append(req.Usages, repositories.SpareUsageRequest{
			PartCode: u.PartCode,
			Quantity: u.Quantity,
		})
	}

	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	item, err := serviceRepo.CompleteRepair(req)
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"service_item": item}})
}

func (c *ServiceController) GetChallans(ctx *fiber.Ctx) error {
	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	challans, err := serviceRepo.GetAllChallans()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"challans": challans}})
}

func (c *ServiceController) GetChallan(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	challan, err := serviceRepo.GetChallan(int64(id))
	if err != nil {
		return engineError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"challan": challan}})
}

func (c *ServiceController) GetUrgentPending(ctx *fiber.Ctx) error {
	serviceRepo := repositories.NewServiceRepository(c.DB, c.Registry)
	items, err := serviceRepo.GetUrgentPending()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": items}})
}
