package controllers

import (
	"errors"

	"github.com/Mohanraj-TZ/vci-ui-sub000/config"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/timeline"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TimelineController struct {
	DB         *gorm.DB
	Aggregator *timeline.Aggregator
}

func NewTimelineController(DB *gorm.DB) *TimelineController {
	return &TimelineController{
		DB:         DB,
		Aggregator: timeline.New(config.TimelineTimeout, repositories.NewTimelineSources(DB)...),
	}
}

// GetTimeline returns the merged lifecycle history of one serial. A
// subsystem that fails or times out shows up in "gaps"; the response is
// still 200 because the events that did arrive are valid history.
func (c *TimelineController) GetTimeline(ctx *fiber.Ctx) error {
	serialNo := ctx.Params("serial_no")

	result, err := c.Aggregator.Timeline(ctx.UserContext(), serialNo)
	if err != nil {
		if errors.Is(err, timeline.ErrNoHistory) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": result})
}
