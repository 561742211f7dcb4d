package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"
	"writinghub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	mu        sync.Mutex
	delivered []*dto.NotificationDTO
}

func (d *recordingDelivery) Broadcast(notification *dto.NotificationDTO) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, notification)
}

func (d *recordingDelivery) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}

func newNotificationPipelineForTest(t *testing.T) (IPublisherService, *fakeUnitOfWork, *recordingDelivery) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	uow := newFakeUnitOfWork()
	delivery := &recordingDelivery{}

	notificationService := NewNotificationService(
		pubSub,
		&fakeFactory{uow: uow},
		delivery,
		nil, // no SMTP in tests
		"https://admin.example.com",
		nopLogger{},
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, notificationService.Start(ctx))

	return NewPublisherService(pubSub), uow, delivery
}

func TestSessionStartedEventBecomesNotification(t *testing.T) {
	publisher, uow, delivery := newNotificationPipelineForTest(t)

	err := publisher.Publish(context.Background(), events.NewChatSessionStarted("sess-1", "visitor_42"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return delivery.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, uow.notifications.notifications, 1)
	stored := uow.notifications.notifications[0]
	assert.Equal(t, events.ChatSessionStarted, stored.Category)
	assert.Equal(t, "New chat session", stored.Title)
	assert.Contains(t, stored.Message, "visitor_42")
	assert.Equal(t, "https://admin.example.com/admin/chat/sess-1", stored.Link)
	assert.False(t, stored.IsRead)
}

func TestMessageEventCarriesPreview(t *testing.T) {
	publisher, uow, delivery := newNotificationPipelineForTest(t)

	err := publisher.Publish(context.Background(), events.NewChatMessageReceived("sess-1", "visitor_42", "Can you check my essay?"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return delivery.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, uow.notifications.notifications, 1)
	assert.Equal(t, "Can you check my essay?", uow.notifications.notifications[0].Message)
}

func TestConsumerSurvivesPersistFailure(t *testing.T) {
	publisher, uow, delivery := newNotificationPipelineForTest(t)
	uow.notifications.setCreateErr(errPublishFailed)

	err := publisher.Publish(context.Background(), events.NewChatSessionStarted("sess-1", "visitor_42"))
	require.NoError(t, err)

	// A failed persist is dropped without broadcasting; the consumer keeps
	// processing later events. Wait for the first persist attempt before
	// clearing the error so the consumer actually observes the failure.
	require.Eventually(t, func() bool {
		return uow.notifications.createAttempts() == 1
	}, 2*time.Second, 10*time.Millisecond)
	uow.notifications.setCreateErr(nil)
	err = publisher.Publish(context.Background(), events.NewCallbackRequested("cb-1", "Jordan", "+1555000"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return delivery.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, uow.notifications.notifications, 1)
	assert.Equal(t, events.CallbackRequested, uow.notifications.notifications[0].Category)
}

func TestNotificationReadTracking(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	uow := newFakeUnitOfWork()
	svc := NewNotificationService(pubSub, &fakeFactory{uow: uow}, nil, nil, "", nopLogger{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, uow.notifications.Create(ctx, buildStoredNotification()))
	}

	count, err := svc.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, svc.MarkAsRead(ctx, uow.notifications.notifications[0].Id))
	count, err = svc.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, svc.MarkAllAsRead(ctx))
	count, err = svc.GetUnreadCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	list, err := svc.GetNotifications(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, n := range list {
		assert.True(t, n.IsRead)
		assert.NotNil(t, n.ReadAt)
	}
}

func buildStoredNotification() *entity.Notification {
	return &entity.Notification{
		Id:        uuid.New(),
		Category:  events.ChatMessageReceived,
		Title:     "New chat message",
		Message:   "hello",
		CreatedAt: time.Now(),
	}
}
