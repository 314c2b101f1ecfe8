// FILE: internal/controller/payment_controller.go
package controller

import (
	"errors"

	"photopro-be/internal/dto"
	"photopro-be/internal/pkg/serverutils"
	"photopro-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	CreatePaymentIntent(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	PaymentSuccess(ctx *fiber.Ctx) error
	CancelSubscription(ctx *fiber.Ctx) error
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	// Provider-facing routes stay public; the webhook is authenticated by
	// its signature instead of a session token.
	r.Post("/payment-webhook", c.Webhook)
	r.Get("/payment-success", c.PaymentSuccess)

	// Protected Routes
	r.Post("/create-payment-intent", serverutils.JwtMiddleware, c.CreatePaymentIntent)
	r.Post("/subscription/cancel", serverutils.JwtMiddleware, c.CancelSubscription)
}

func (c *paymentController) CreatePaymentIntent(ctx *fiber.Ctx) error {
	var req dto.CreatePaymentIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.CreateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		case errors.Is(err, service.ErrFreePlan):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	body := ctx.Body()
	timestamp := ctx.Get("x-timestamp")
	signature := ctx.Get("x-signature")

	err := c.service.HandleWebhook(ctx.Context(), body, timestamp, signature)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
		}
		// Non-2xx makes the provider redeliver later
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Webhook processed", nil))
}

func (c *paymentController) PaymentSuccess(ctx *fiber.Ctx) error {
	intentId := ctx.Query("intent_id")
	if intentId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "intent_id is required"))
	}

	res, err := c.service.PaymentSuccess(ctx.Context(), intentId)
	if err != nil {
		if err.Error() == "transaction not found" {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment status", res))
}

func (c *paymentController) CancelSubscription(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.CancelSubscription(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrNoSubscription) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		if err.Error() == "subscription already cancelled" {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription cancelled", res))
}
