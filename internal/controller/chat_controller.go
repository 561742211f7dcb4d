package controller

import (
	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"
	"writinghub-be/internal/pkg/serverutils"
	"writinghub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Poll(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	UpdateSession(ctx *fiber.Ctx) error
	GetTyping(ctx *fiber.Ctx) error
	SetTyping(ctx *fiber.Ctx) error
}

type chatController struct {
	service  service.IChatService
	presence service.IPresenceService
}

func NewChatController(chatService service.IChatService, presence service.IPresenceService) IChatController {
	return &chatController{
		service:  chatService,
		presence: presence,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")

	// The typing routes must precede ":sessionId" so "typing" is never
	// captured as a session id.
	h.Get("/typing", c.GetTyping)
	h.Post("/typing", c.SetTyping)

	h.Post("", c.Send)
	h.Get("", serverutils.JwtMiddleware, c.ListSessions)
	h.Get(":sessionId", c.Poll)
	h.Patch(":sessionId", serverutils.JwtMiddleware, c.UpdateSession)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) Poll(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.PollMessages(ctx.UserContext(), sessionId,
		ctx.Query("after"), ctx.Query("afterTimestamp"))
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return fiberErr
		}
		// Degrade to an empty list plus an error field so polling clients
		// render "no data" instead of crashing.
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"sessionId": sessionId,
			"messages":  []*dto.ChatMessageDTO{},
			"error":     "Failed to load messages",
		})
	}

	return ctx.JSON(res)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	sessions, err := c.service.ListSessions(ctx.UserContext(), ctx.Query("status"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"sessions": []*dto.SessionWithMessages{},
			"error":    "Failed to load sessions",
		})
	}

	return ctx.JSON(fiber.Map{"sessions": sessions})
}

func (c *chatController) UpdateSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.UpdateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := c.service.UpdateSession(ctx.UserContext(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session updated", session))
}

// GetTyping never errors toward the widget: malformed input degrades to a
// neutral "not typing" so the chat UI is never blocked on this endpoint.
func (c *chatController) GetTyping(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("sessionId")
	checkFor := ctx.Query("checkFor")
	if sessionId == "" || (checkFor != entity.SenderAdmin && checkFor != entity.SenderVisitor) {
		return ctx.JSON(dto.TypingStatusResponse{IsTyping: false})
	}

	isTyping, err := c.presence.IsTyping(ctx.UserContext(), sessionId, checkFor)
	if err != nil || !isTyping {
		return ctx.JSON(dto.TypingStatusResponse{IsTyping: false})
	}

	return ctx.JSON(dto.TypingStatusResponse{IsTyping: true, Typer: checkFor})
}

func (c *chatController) SetTyping(ctx *fiber.Ctx) error {
	var req dto.SetTypingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.JSON(fiber.Map{"success": false})
	}
	if req.SessionId == "" || (req.Sender != entity.SenderAdmin && req.Sender != entity.SenderVisitor) {
		return ctx.JSON(fiber.Map{"success": false})
	}

	if err := c.presence.SetTyping(ctx.UserContext(), req.SessionId, req.Sender, req.IsTyping); err != nil {
		return ctx.JSON(fiber.Map{"success": false})
	}

	return ctx.JSON(fiber.Map{"success": true})
}
