package controller

import (
	"writinghub-be/internal/dto"
	"writinghub-be/internal/pkg/serverutils"
	"writinghub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICallbackController interface {
	RegisterRoutes(r fiber.Router)
}

type callbackController struct {
	service service.ICallbackService
}

func NewCallbackController(callbackService service.ICallbackService) ICallbackController {
	return &callbackController{service: callbackService}
}

func (c *callbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/callbacks")
	h.Post("", c.Create)
	h.Get("", serverutils.JwtMiddleware, c.GetAll)
	h.Patch(":id", serverutils.JwtMiddleware, c.Update)
}

func (c *callbackController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Callback requested", res))
}

func (c *callbackController) GetAll(ctx *fiber.Ctx) error {
	callbacks, err := c.service.GetAll(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"callbacks": []*dto.CallbackDTO{},
			"error":     "Failed to load callbacks",
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Callbacks", callbacks))
}

func (c *callbackController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid callback id")
	}

	var req dto.UpdateCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), id, req.Status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Callback updated", res))
}
