package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"
	"writinghub-be/internal/pkg/logger"
	"writinghub-be/internal/pkg/mailer"
	"writinghub-be/internal/repository/specification"
	"writinghub-be/internal/repository/unitofwork"
	"writinghub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// NotificationDelivery pushes fresh notifications to connected admin
// dashboards. Implemented by the websocket hub.
type NotificationDelivery interface {
	Broadcast(notification *dto.NotificationDTO)
}

type INotificationService interface {
	Start(ctx context.Context) error
	GetNotifications(ctx context.Context, limit, offset int) ([]*dto.NotificationDTO, error)
	GetUnreadCount(ctx context.Context) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) error
}

type notificationService struct {
	pubSub       *gochannel.GoChannel
	uowFactory   unitofwork.RepositoryFactory
	delivery     NotificationDelivery
	emailService mailer.IEmailService
	adminBaseURL string
	logger       logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	adminBaseURL string,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:       pubSub,
		uowFactory:   uowFactory,
		delivery:     delivery,
		emailService: emailService,
		adminBaseURL: adminBaseURL,
		logger:       log,
	}
}

// Start subscribes to the event bus. Every failure on this path is logged
// and swallowed: notifications are a best-effort side channel and must never
// surface into the producing request.
func (s *notificationService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, EventsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	// Always Ack: an event that cannot become a notification is dropped,
	// never retried into an infinite loop.
	defer msg.Ack()

	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Error("NotificationService", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	notification := s.buildNotification(&envelope)
	if notification == nil {
		s.logger.Debug("NotificationService", "No notification mapping for event", map[string]interface{}{"type": envelope.Type})
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		s.logger.Error("NotificationService", "Failed to persist notification", map[string]interface{}{
			"type":  envelope.Type,
			"error": err.Error(),
		})
		return
	}

	notificationDTO := notificationToDTO(notification)
	if s.delivery != nil {
		s.delivery.Broadcast(notificationDTO)
	}

	if s.emailService != nil && envelope.Type != events.ChatMessageReceived {
		// Per-message emails would flood the inbox; session starts and
		// callbacks are the actionable ones.
		if err := s.emailService.SendAdminAlert(notification.Title, notification.Title, notification.Message, notification.Link); err != nil {
			s.logger.Warn("NotificationService", "Failed to send admin alert email", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *notificationService) buildNotification(envelope *eventEnvelope) *entity.Notification {
	stringField := func(key string) string {
		v, _ := envelope.Payload[key].(string)
		return v
	}

	base := entity.Notification{
		Id:        uuid.New(),
		Category:  envelope.Type,
		Metadata:  envelope.Payload,
		CreatedAt: time.Now(),
	}

	switch envelope.Type {
	case events.ChatSessionStarted:
		base.Title = "New chat session"
		base.Message = fmt.Sprintf("Visitor %s started a conversation", stringField("visitor_id"))
		base.Link = s.adminBaseURL + "/admin/chat/" + stringField("session_id")
	case events.ChatMessageReceived:
		base.Title = "New chat message"
		base.Message = stringField("preview")
		base.Link = s.adminBaseURL + "/admin/chat/" + stringField("session_id")
	case events.CallbackRequested:
		base.Title = "Callback requested"
		base.Message = fmt.Sprintf("%s asked to be called back at %s", stringField("name"), stringField("phone"))
		base.Link = s.adminBaseURL + "/admin/callbacks"
	default:
		return nil
	}

	return &base
}

func (s *notificationService) GetNotifications(ctx context.Context, limit, offset int) ([]*dto.NotificationDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationDTO, len(notifications))
	for i, n := range notifications {
		result[i] = notificationToDTO(n)
	}
	return result, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx)
}

func notificationToDTO(n *entity.Notification) *dto.NotificationDTO {
	if n == nil {
		return nil
	}
	return &dto.NotificationDTO{
		Id:        n.Id,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
