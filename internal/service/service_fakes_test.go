package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"writinghub-be/internal/entity"
	"writinghub-be/internal/repository/contract"
	"writinghub-be/internal/repository/specification"
	"writinghub-be/internal/repository/unitofwork"
	"writinghub-be/pkg/events"

	"github.com/google/uuid"
)

// In-memory repository fakes that interpret the same specifications the
// GORM implementations translate to SQL.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeChatSessionRepo struct {
	sessions map[uuid.UUID]*entity.ChatSession
}

func newFakeChatSessionRepo() *fakeChatSessionRepo {
	return &fakeChatSessionRepo{sessions: make(map[uuid.UUID]*entity.ChatSession)}
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeChatSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeChatSessionRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	session, ok := r.sessions[id]
	if !ok {
		return nil
	}
	for field, value := range fields {
		switch field {
		case "visitor_name":
			session.VisitorName = value.(string)
		case "visitor_email":
			session.VisitorEmail = value.(string)
		case "visitor_phone":
			session.VisitorPhone = value.(string)
		case "status":
			session.Status = value.(string)
		}
	}
	return nil
}

func (r *fakeChatSessionRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	if session, ok := r.sessions[id]; ok {
		session.UpdatedAt = &at
	}
	return nil
}

func (r *fakeChatSessionRepo) matches(session *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if session.Id != s.ID {
				return false
			}
		case specification.ByStatus:
			if session.Status != s.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var result []*entity.ChatSession
	for _, session := range r.sessions {
		if r.matches(session, specs) {
			copied := *session
			result = append(result, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "updated_at" && order.Desc {
			sort.Slice(result, func(i, j int) bool {
				ti, tj := result[i].CreatedAt, result[j].CreatedAt
				if result[i].UpdatedAt != nil {
					ti = *result[i].UpdatedAt
				}
				if result[j].UpdatedAt != nil {
					tj = *result[j].UpdatedAt
				}
				return ti.After(tj)
			})
		}
	}
	return result, nil
}

func (r *fakeChatSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeChatMessageRepo struct {
	messages   []*entity.ChatMessage
	createErr  error
	createSeen int
}

func newFakeChatMessageRepo() *fakeChatMessageRepo {
	return &fakeChatMessageRepo{}
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.createSeen++
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeChatMessageRepo) filter(specs []specification.Specification) []*entity.ChatMessage {
	var result []*entity.ChatMessage
	for _, message := range r.messages {
		keep := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				if message.Id != s.ID {
					keep = false
				}
			case specification.ByChatSessionID:
				if message.ChatSessionId != s.ChatSessionID {
					keep = false
				}
			case specification.CreatedAfter:
				if !message.CreatedAt.After(s.After) {
					keep = false
				}
			}
		}
		if keep {
			copied := *message
			result = append(result, &copied)
		}
	}

	desc := false
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			if s.Field == "created_at" && s.Desc {
				desc = true
			}
		case specification.Pagination:
			limit = s.Limit
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Id.String() < result[j].Id.String()
		}
		if desc {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (r *fakeChatMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	result := r.filter(specs)
	if len(result) == 0 {
		return nil, nil
	}
	return result[0], nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.filter(specs), nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
	createErr     error
	createCalls   int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) setCreateErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
}

func (r *fakeNotificationRepo) createAttempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *fakeNotificationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	result := make([]*entity.Notification, len(r.notifications))
	copy(result, r.notifications)
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, n := range r.notifications {
		if n.Id == id {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context) error {
	now := time.Now()
	for _, n := range r.notifications {
		n.IsRead = true
		n.ReadAt = &now
	}
	return nil
}

type fakeCallbackRepo struct {
	callbacks map[uuid.UUID]*entity.Callback
}

func newFakeCallbackRepo() *fakeCallbackRepo {
	return &fakeCallbackRepo{callbacks: make(map[uuid.UUID]*entity.Callback)}
}

func (r *fakeCallbackRepo) Create(ctx context.Context, callback *entity.Callback) error {
	copied := *callback
	r.callbacks[callback.Id] = &copied
	return nil
}

func (r *fakeCallbackRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if callback, ok := r.callbacks[id]; ok {
		if status, ok := fields["status"].(string); ok {
			callback.Status = status
		}
	}
	return nil
}

func (r *fakeCallbackRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Callback, error) {
	for _, callback := range r.callbacks {
		for _, spec := range specs {
			if s, ok := spec.(specification.ByID); ok && callback.Id == s.ID {
				copied := *callback
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeCallbackRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Callback, error) {
	var result []*entity.Callback
	for _, callback := range r.callbacks {
		copied := *callback
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type fakeUnitOfWork struct {
	sessions      *fakeChatSessionRepo
	messages      *fakeChatMessageRepo
	notifications *fakeNotificationRepo
	callbacks     *fakeCallbackRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		sessions:      newFakeChatSessionRepo(),
		messages:      newFakeChatMessageRepo(),
		notifications: newFakeNotificationRepo(),
		callbacks:     newFakeCallbackRepo(),
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return u.messages
}

func (u *fakeUnitOfWork) NotificationRepository() contract.NotificationRepository {
	return u.notifications
}

func (u *fakeUnitOfWork) CallbackRepository() contract.CallbackRepository {
	return u.callbacks
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	published []events.Event
	err       error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

var errPublishFailed = errors.New("publish failed")
