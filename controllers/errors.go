package controllers

import (
	"errors"

	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/reconcile"
	"github.com/Mohanraj-TZ/vci-ui-sub000/lifecycle/registry"
	"github.com/Mohanraj-TZ/vci-ui-sub000/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// engineError maps lifecycle engine failures to responses without
// downgrading them: the caller always sees which invariant failed.
func engineError(ctx *fiber.Ctx, err error) error {
	var (
		dup *registry.DuplicateSerialError
		inv *registry.InvalidTransitionError
		na  *registry.NotAvailableError
		qm  *reconcile.QuantityMismatchError
	)

	switch {
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &dup), errors.As(err, &inv), errors.As(err, &na),
		errors.Is(err, repositories.ErrInsufficientStock):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &qm):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    err.Error(),
			"declared": qm.Declared,
			"resolved": qm.Resolved,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// actorID pulls the authenticated user id set by the auth middleware.
func actorID(ctx *fiber.Ctx) int {
	if id, ok := ctx.Locals("userID").(float64); ok {
		return int(id)
	}
	return 0
}
