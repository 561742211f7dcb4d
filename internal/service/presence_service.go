package service

import (
	"context"
	"time"

	"writinghub-be/internal/pkg/logger"
	"writinghub-be/internal/repository/memory"
)

const (
	// TypingFreshWindow is how long a signal counts as "actively typing".
	TypingFreshWindow = 3 * time.Second
	// PresenceEntryTTL is the eviction threshold; stale entries beyond it
	// are only occupying memory, the freshness check already ignores them.
	PresenceEntryTTL = 5 * time.Second
	// PresenceSweepInterval is the background eviction cadence.
	PresenceSweepInterval = 30 * time.Second
)

type IPresenceService interface {
	SetTyping(ctx context.Context, sessionId, role string, isTyping bool) error
	IsTyping(ctx context.Context, sessionId, role string) (bool, error)
}

type presenceService struct {
	store  memory.PresenceStore
	logger logger.ILogger
}

func NewPresenceService(store memory.PresenceStore, log logger.ILogger) IPresenceService {
	return &presenceService{
		store:  store,
		logger: log,
	}
}

func (s *presenceService) SetTyping(ctx context.Context, sessionId, role string, isTyping bool) error {
	if isTyping {
		return s.store.Set(ctx, sessionId, role, time.Now())
	}
	return s.store.Clear(ctx, sessionId, role)
}

func (s *presenceService) IsTyping(ctx context.Context, sessionId, role string) (bool, error) {
	at, found, err := s.store.Get(ctx, sessionId, role)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return time.Since(at) < TypingFreshWindow, nil
}
