package service

import (
	"context"
	"testing"
	"time"

	"writinghub-be/internal/dto"
	"writinghub-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServiceForTest() (IChatService, *fakeUnitOfWork, *recordingPublisher) {
	uow := newFakeUnitOfWork()
	publisher := &recordingPublisher{}
	svc := NewChatService(&fakeFactory{uow: uow}, publisher, nopLogger{})
	return svc, uow, publisher
}

func seedSession(uow *fakeUnitOfWork, status string) *entity.ChatSession {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		VisitorId: "visitor_1",
		Status:    status,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	_ = uow.sessions.Create(context.Background(), session)
	return session
}

func seedMessage(uow *fakeUnitOfWork, sessionId uuid.UUID, body string, at time.Time) *entity.ChatMessage {
	message := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Sender:        entity.SenderVisitor,
		Body:          body,
		Kind:          entity.MessageKindText,
		CreatedAt:     at,
	}
	_ = uow.messages.Create(context.Background(), message)
	return message
}

func TestSendMessageCreatesSessionAndEchoesTempId(t *testing.T) {
	svc, uow, publisher := newChatServiceForTest()

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		Message: "Hi, I need help with my thesis",
		Sender:  entity.SenderVisitor,
		TempId:  "temp-123",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Success)
	assert.Equal(t, "temp-123", res.TempId)
	require.NotNil(t, res.Session)
	assert.NotEqual(t, uuid.Nil, res.Session.Id)
	assert.Equal(t, entity.SessionStatusActive, res.Session.Status)
	assert.NotEmpty(t, res.Session.VisitorId)
	require.NotNil(t, res.Message)
	assert.Equal(t, res.Session.Id, res.Message.SessionId)
	assert.Equal(t, "Hi, I need help with my thesis", res.Message.Message)
	assert.Equal(t, entity.MessageKindText, res.Message.Kind)

	// Both rows persisted, session bumped for recency sorting.
	assert.Len(t, uow.sessions.sessions, 1)
	assert.Len(t, uow.messages.messages, 1)
	stored := uow.sessions.sessions[res.Session.Id]
	require.NotNil(t, stored.UpdatedAt)
	assert.Equal(t, res.Message.CreatedAt, *stored.UpdatedAt)

	// A visitor starting a conversation emits session-started and
	// message-received events.
	require.Len(t, publisher.published, 2)
}

func TestSendMessageAppendsToExistingSession(t *testing.T) {
	svc, uow, publisher := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		SessionId: session.Id.String(),
		Message:   "Still there?",
		Sender:    entity.SenderVisitor,
	})
	require.NoError(t, err)

	assert.Equal(t, session.Id, res.Session.Id)
	assert.Len(t, uow.sessions.sessions, 1)
	assert.Len(t, uow.messages.messages, 1)

	// Existing session: only the message event, no session-started.
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "CHAT_MESSAGE_RECEIVED", publisher.published[0].EventType())
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()

	for _, message := range []string{"", "   ", "<script>alert(1)</script>"} {
		res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
			Message: message,
			Sender:  entity.SenderVisitor,
		})
		require.Error(t, err)
		assert.Nil(t, res)

		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	}

	// Nothing may be persisted for rejected sends.
	assert.Empty(t, uow.sessions.sessions)
	assert.Empty(t, uow.messages.messages)
}

func TestSendMessageAllowsFileOnly(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		Sender:   entity.SenderVisitor,
		FileUrl:  "https://cdn.example.com/uploads/draft.pdf",
		FileName: "draft.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageKindFile, res.Message.Kind)
	assert.Equal(t, "draft.pdf", res.Message.FileName)
}

func TestSendMessageUnknownSessionNotFound(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		SessionId: uuid.NewString(),
		Message:   "hello?",
		Sender:    entity.SenderVisitor,
	})
	require.Error(t, err)
	assert.Nil(t, res)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
	assert.Empty(t, uow.messages.messages)
}

func TestSendMessageStripsMarkup(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		Message:     "<b>Hello</b> there",
		Sender:      entity.SenderVisitor,
		VisitorName: "<i>Alex</i>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", res.Message.Message)
	assert.Equal(t, "Alex", res.Session.VisitorName)
}

func TestSendMessageSucceedsWhenPublishFails(t *testing.T) {
	svc, uow, publisher := newChatServiceForTest()
	publisher.err = errPublishFailed

	res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		Message: "Hi",
		Sender:  entity.SenderVisitor,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, uow.messages.messages, 1)
}

func TestSendMessageAdminDoesNotPublish(t *testing.T) {
	svc, uow, publisher := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	_, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
		SessionId: session.Id.String(),
		Message:   "How can I help?",
		Sender:    entity.SenderAdmin,
	})
	require.NoError(t, err)
	assert.Empty(t, publisher.published)
}

func TestSendMessageDerivesAttachmentKind(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	cases := []struct {
		fileUrl  string
		duration float64
		want     string
	}{
		{"https://cdn.example.com/a.PNG", 0, entity.MessageKindImage},
		{"https://cdn.example.com/a.webp", 0, entity.MessageKindImage},
		{"https://cdn.example.com/a.webm", 4.2, entity.MessageKindVoice},
		{"https://cdn.example.com/a.docx", 0, entity.MessageKindFile},
	}
	for _, tc := range cases {
		res, err := svc.SendMessage(context.Background(), &dto.SendChatRequest{
			SessionId:    session.Id.String(),
			Sender:       entity.SenderVisitor,
			FileUrl:      tc.fileUrl,
			FileDuration: tc.duration,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, res.Message.Kind, tc.fileUrl)
	}
}

func TestPollMessagesFullReplayWithoutCursor(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	base := time.Now().Add(-time.Minute)
	first := seedMessage(uow, session.Id, "first", base)
	second := seedMessage(uow, session.Id, "second", base.Add(time.Second))

	res, err := svc.PollMessages(context.Background(), session.Id, "", "")
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, first.Id, res.Messages[0].Id)
	assert.Equal(t, second.Id, res.Messages[1].Id)
	assert.False(t, res.Timestamp.IsZero())
}

func TestPollMessagesCursorIsStrictAndAdvances(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	base := time.Now().Add(-time.Minute)
	seedMessage(uow, session.Id, "first", base)
	seedMessage(uow, session.Id, "second", base.Add(time.Second))

	res, err := svc.PollMessages(context.Background(), session.Id, "", "")
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	cursor := res.Timestamp

	// Empty poll: no rows, but a fresh cursor is still handed back.
	empty, err := svc.PollMessages(context.Background(), session.Id, "", cursor.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.Empty(t, empty.Messages)
	assert.False(t, empty.Timestamp.Before(cursor))

	// Only rows strictly newer than the cursor come back, never a repeat.
	third := seedMessage(uow, session.Id, "third", cursor.Add(time.Millisecond))
	next, err := svc.PollMessages(context.Background(), session.Id, "", cursor.Format(time.RFC3339Nano))
	require.NoError(t, err)
	require.Len(t, next.Messages, 1)
	assert.Equal(t, third.Id, next.Messages[0].Id)
}

func TestPollMessagesAfterMessageId(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	base := time.Now().Add(-time.Minute)
	first := seedMessage(uow, session.Id, "first", base)
	second := seedMessage(uow, session.Id, "second", base.Add(time.Second))
	third := seedMessage(uow, session.Id, "third", base.Add(2*time.Second))

	res, err := svc.PollMessages(context.Background(), session.Id, first.Id.String(), "")
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, second.Id, res.Messages[0].Id)
	assert.Equal(t, third.Id, res.Messages[1].Id)
}

func TestPollMessagesUnknownAnchorReplaysAll(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)
	seedMessage(uow, session.Id, "first", time.Now().Add(-time.Minute))

	// A valid uuid that matches no stored message: the client lost state,
	// so it gets the full history back instead of an error.
	res, err := svc.PollMessages(context.Background(), session.Id, uuid.NewString(), "")
	require.NoError(t, err)
	assert.Len(t, res.Messages, 1)
}

func TestPollMessagesRejectsMalformedCursor(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	for _, tc := range []struct{ afterId, afterTimestamp string }{
		{"not-a-uuid", ""},
		{"", "yesterday"},
	} {
		_, err := svc.PollMessages(context.Background(), session.Id, tc.afterId, tc.afterTimestamp)
		require.Error(t, err)
		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	}
}

func TestPollMessagesUnknownSession(t *testing.T) {
	svc, _, _ := newChatServiceForTest()

	_, err := svc.PollMessages(context.Background(), uuid.New(), "", "")
	require.Error(t, err)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestListSessionsOrdersByRecency(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()

	older := seedSession(uow, entity.SessionStatusActive)
	newer := seedSession(uow, entity.SessionStatusActive)
	_ = uow.sessions.Touch(context.Background(), older.Id, time.Now().Add(-time.Hour))
	_ = uow.sessions.Touch(context.Background(), newer.Id, time.Now())

	base := time.Now().Add(-time.Minute)
	seedMessage(uow, newer.Id, "first", base)
	seedMessage(uow, newer.Id, "second", base.Add(time.Second))

	result, err := svc.ListSessions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, newer.Id, result[0].Id)
	assert.Equal(t, older.Id, result[1].Id)

	// Previews read oldest to newest.
	require.Len(t, result[0].Messages, 2)
	assert.Equal(t, "first", result[0].Messages[0].Message)
	assert.Equal(t, "second", result[0].Messages[1].Message)
}

func TestListSessionsStatusFilter(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	active := seedSession(uow, entity.SessionStatusActive)
	closed := seedSession(uow, entity.SessionStatusClosed)

	defaulted, err := svc.ListSessions(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, defaulted, 1)
	assert.Equal(t, active.Id, defaulted[0].Id)

	closedOnly, err := svc.ListSessions(context.Background(), entity.SessionStatusClosed)
	require.NoError(t, err)
	require.Len(t, closedOnly, 1)
	assert.Equal(t, closed.Id, closedOnly[0].Id)

	all, err := svc.ListSessions(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateSessionPartialFields(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	name := "Jordan"
	status := entity.SessionStatusClosed
	updated, err := svc.UpdateSession(context.Background(), session.Id, &dto.UpdateSessionRequest{
		VisitorName: &name,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jordan", updated.VisitorName)
	assert.Equal(t, entity.SessionStatusClosed, updated.Status)
	// Untouched fields survive.
	assert.Equal(t, session.VisitorId, updated.VisitorId)
}

func TestUpdateSessionErrors(t *testing.T) {
	svc, uow, _ := newChatServiceForTest()
	session := seedSession(uow, entity.SessionStatusActive)

	_, err := svc.UpdateSession(context.Background(), uuid.New(), &dto.UpdateSessionRequest{})
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)

	_, err = svc.UpdateSession(context.Background(), session.Id, &dto.UpdateSessionRequest{})
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}
