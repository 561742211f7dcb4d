package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"
	"writinghub-be/internal/pkg/logger"
	"writinghub-be/internal/pkg/sanitize"
	"writinghub-be/internal/repository/specification"
	"writinghub-be/internal/repository/unitofwork"
	"writinghub-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sessionPreviewLimit caps how many recent messages each session carries in
// the admin list.
const sessionPreviewLimit = 100

type IChatService interface {
	SendMessage(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	PollMessages(ctx context.Context, sessionId uuid.UUID, afterId, afterTimestamp string) (*dto.PollMessagesResponse, error)
	ListSessions(ctx context.Context, status string) ([]*dto.SessionWithMessages, error)
	UpdateSession(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.ChatSessionDTO, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *chatService) SendMessage(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	body := sanitize.Text(req.Message)
	if body == "" && req.FileUrl == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Message text or file is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	var session *entity.ChatSession
	isNewSession := false

	if req.SessionId != "" {
		sessionId, err := uuid.Parse(req.SessionId)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
		}
		// Existence is checked up front so a missing session surfaces as
		// not-found instead of a foreign key violation on the insert.
		session, err = sessions.FindOne(ctx, specification.ByID{ID: sessionId})
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "Chat session not found")
		}
	} else {
		visitorId := req.VisitorId
		if visitorId == "" {
			visitorId = fmt.Sprintf("visitor_%d", time.Now().UnixMilli())
		}
		session = &entity.ChatSession{
			Id:           uuid.New(),
			VisitorId:    visitorId,
			VisitorName:  sanitize.Text(req.VisitorName),
			VisitorEmail: sanitize.Text(req.VisitorEmail),
			VisitorPhone: sanitize.Text(req.VisitorPhone),
			Status:       entity.SessionStatusActive,
			CreatedAt:    time.Now(),
		}
		if err := sessions.Create(ctx, session); err != nil {
			return nil, err
		}
		isNewSession = true
	}

	message := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Sender:        req.Sender,
		Body:          body,
		Kind:          messageKind(req.FileUrl, req.FileDuration),
		FileUrl:       req.FileUrl,
		FileName:      sanitize.Text(req.FileName),
		FileDuration:  req.FileDuration,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}

	// Keep recency-based admin sorting truthful.
	if err := sessions.Touch(ctx, session.Id, message.CreatedAt); err != nil {
		s.logger.Warn("ChatService", "Failed to touch session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	if req.Sender == entity.SenderVisitor {
		s.publishVisitorActivity(ctx, session, body, isNewSession)
	}

	return &dto.SendChatResponse{
		Success: true,
		Session: sessionToDTO(session),
		Message: messageToDTO(message),
		TempId:  req.TempId,
	}, nil
}

// publishVisitorActivity emits notification events. Failures are logged and
// swallowed: losing an admin alert is recoverable, losing a message is not.
func (s *chatService) publishVisitorActivity(ctx context.Context, session *entity.ChatSession, body string, isNewSession bool) {
	if isNewSession {
		if err := s.publisherService.Publish(ctx, events.NewChatSessionStarted(session.Id.String(), session.VisitorId)); err != nil {
			s.logger.Warn("ChatService", "Failed to publish session-started event", map[string]interface{}{
				"session_id": session.Id.String(),
				"error":      err.Error(),
			})
		}
	}
	if err := s.publisherService.Publish(ctx, events.NewChatMessageReceived(session.Id.String(), session.VisitorId, preview(body))); err != nil {
		s.logger.Warn("ChatService", "Failed to publish message event", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (s *chatService) PollMessages(ctx context.Context, sessionId uuid.UUID, afterId, afterTimestamp string) (*dto.PollMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	}

	bound, err := s.resolveCursor(ctx, uow, sessionId, afterId, afterTimestamp)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
	}
	if !bound.IsZero() {
		specs = append(specs, specification.CreatedAfter{After: bound})
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	dtos := make([]*dto.ChatMessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = messageToDTO(m)
	}

	// The server clock is returned as the next cursor so clients advance
	// even on empty polls.
	return &dto.PollMessagesResponse{
		SessionId: sessionId,
		Messages:  dtos,
		Timestamp: time.Now(),
	}, nil
}

// resolveCursor turns either a message id or an explicit timestamp into the
// lower bound for the poll. An unknown message id degrades to a full replay
// rather than an error, matching how clients recover after losing state.
func (s *chatService) resolveCursor(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, afterId, afterTimestamp string) (time.Time, error) {
	if afterId != "" {
		messageId, err := uuid.Parse(afterId)
		if err != nil {
			return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid message id cursor")
		}
		anchor, err := uow.ChatMessageRepository().FindOne(ctx,
			specification.ByID{ID: messageId},
			specification.ByChatSessionID{ChatSessionID: sessionId},
		)
		if err != nil {
			return time.Time{}, err
		}
		if anchor == nil {
			return time.Time{}, nil
		}
		return anchor.CreatedAt, nil
	}

	if afterTimestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, afterTimestamp)
		if err != nil {
			return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid timestamp cursor")
		}
		return ts, nil
	}

	return time.Time{}, nil
}

func (s *chatService) ListSessions(ctx context.Context, status string) ([]*dto.SessionWithMessages, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if status != "all" {
		if status == "" {
			status = entity.SessionStatusActive
		}
		specs = append(specs, specification.ByStatus{Status: status})
	}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionWithMessages, 0, len(sessions))
	for _, session := range sessions {
		// Most recent first from the store, reversed so each preview reads
		// in creation order.
		recent, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionID: session.Id},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: sessionPreviewLimit},
		)
		if err != nil {
			return nil, err
		}

		messages := make([]*dto.ChatMessageDTO, len(recent))
		for i, m := range recent {
			messages[len(recent)-1-i] = messageToDTO(m)
		}

		result = append(result, &dto.SessionWithMessages{
			ChatSessionDTO: *sessionToDTO(session),
			Messages:       messages,
		})
	}

	return result, nil
}

func (s *chatService) UpdateSession(ctx context.Context, id uuid.UUID, req *dto.UpdateSessionRequest) (*dto.ChatSessionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	session, err := sessions.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	}

	fields := map[string]interface{}{}
	if req.VisitorName != nil {
		fields["visitor_name"] = sanitize.Text(*req.VisitorName)
	}
	if req.VisitorEmail != nil {
		fields["visitor_email"] = sanitize.Text(*req.VisitorEmail)
	}
	if req.VisitorPhone != nil {
		fields["visitor_phone"] = sanitize.Text(*req.VisitorPhone)
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No fields to update")
	}

	if err := sessions.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := sessions.FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return sessionToDTO(updated), nil
}

func messageKind(fileUrl string, fileDuration float64) string {
	if fileUrl == "" {
		return entity.MessageKindText
	}
	if fileDuration > 0 {
		return entity.MessageKindVoice
	}
	lower := strings.ToLower(fileUrl)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return entity.MessageKindImage
		}
	}
	return entity.MessageKindFile
}

func preview(body string) string {
	const max = 80
	if len(body) <= max {
		return body
	}
	return body[:max] + "…"
}

func sessionToDTO(s *entity.ChatSession) *dto.ChatSessionDTO {
	if s == nil {
		return nil
	}
	return &dto.ChatSessionDTO{
		Id:           s.Id,
		VisitorId:    s.VisitorId,
		VisitorName:  s.VisitorName,
		VisitorEmail: s.VisitorEmail,
		VisitorPhone: s.VisitorPhone,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func messageToDTO(m *entity.ChatMessage) *dto.ChatMessageDTO {
	if m == nil {
		return nil
	}
	return &dto.ChatMessageDTO{
		Id:           m.Id,
		SessionId:    m.ChatSessionId,
		Sender:       m.Sender,
		Message:      m.Body,
		Kind:         m.Kind,
		FileUrl:      m.FileUrl,
		FileName:     m.FileName,
		FileDuration: m.FileDuration,
		CreatedAt:    m.CreatedAt,
	}
}
