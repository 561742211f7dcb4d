package events

import "time"

const (
	ChatSessionStarted  = "CHAT_SESSION_STARTED"
	ChatMessageReceived = "CHAT_MESSAGE_RECEIVED"
	CallbackRequested   = "CALLBACK_REQUESTED"
)

func NewChatSessionStarted(sessionId, visitorId string) Event {
	return BaseEvent{
		Type: ChatSessionStarted,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"visitor_id": visitorId,
		},
		OccurredAt: time.Now(),
	}
}

func NewChatMessageReceived(sessionId, visitorId, preview string) Event {
	return BaseEvent{
		Type: ChatMessageReceived,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"visitor_id": visitorId,
			"preview":    preview,
		},
		OccurredAt: time.Now(),
	}
}

func NewCallbackRequested(callbackId, name, phone string) Event {
	return BaseEvent{
		Type: CallbackRequested,
		Data: map[string]interface{}{
			"callback_id": callbackId,
			"name":        name,
			"phone":       phone,
		},
		OccurredAt: time.Now(),
	}
}
