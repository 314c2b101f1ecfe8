// FILE: internal/controller/usage_controller.go
package controller

import (
	"errors"

	"photopro-be/internal/dto"
	"photopro-be/internal/pkg/serverutils"
	"photopro-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUsageController interface {
	RegisterRoutes(r fiber.Router)
	Record(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
}

type usageController struct {
	service service.IUsageService
}

func NewUsageController(service service.IUsageService) IUsageController {
	return &usageController{service: service}
}

func (c *usageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai-usage")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.Record)
	h.Get("/", c.Summary)
}

func (c *usageController) Record(ctx *fiber.Ctx) error {
	var req dto.RecordUsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	res, err := c.service.RecordUsage(ctx.Context(), userId, &req)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		if errors.As(err, &quotaErr) {
			// 403 with the numbers so the frontend can render an upgrade prompt
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponseWithData(403, quotaErr.Error(), dto.QuotaExceededResponse{
				CurrentUsage: quotaErr.CurrentUsage,
				Limit:        quotaErr.Limit,
			}))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Usage recorded", res))
}

func (c *usageController) Summary(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token subject"))
	}

	res, err := c.service.GetUsage(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage summary", res))
}
