package domain

import (
	"fmt"
	"time"
)

// Stream message types the console recognizes. Anything else still produces
// a feed entry, just without a success/failure classification.
const (
	MessageTypeTaskDone = "task_done"
	MessageTypeTaskFail = "task_fail"
)

type Classification string

const (
	ClassSuccess      Classification = "success"
	ClassFailure      Classification = "failure"
	ClassUnclassified Classification = ""
)

// StreamMessage is the wire shape of one event-stream frame.
type StreamMessage struct {
	Type     string `json:"type"`
	AppID    int64  `json:"app_id"`
	GameName string `json:"game_name,omitempty"`
	PostID   int64  `json:"post_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Classify maps the message type to a display classification.
func (m StreamMessage) Classify() Classification {
	switch m.Type {
	case MessageTypeTaskDone:
		return ClassSuccess
	case MessageTypeTaskFail:
		return ClassFailure
	default:
		return ClassUnclassified
	}
}

// Event is one task outcome as it lives in the notification feed. Events are
// immutable once created; the feed assigns the ID when the event enters it.
type Event struct {
	ID         int64
	Kind       string
	Class      Classification
	AppID      int64
	Label      string
	PostID     int64
	Error      string
	ReceivedAt time.Time
}

// NewEvent builds a feed event from a classified stream message. The label
// falls back to "App <app_id>" when the server omitted the game name.
func NewEvent(m StreamMessage, receivedAt time.Time) Event {
	label := m.GameName
	if label == "" {
		label = fmt.Sprintf("App %d", m.AppID)
	}

	return Event{
		Kind:       m.Type,
		Class:      m.Classify(),
		AppID:      m.AppID,
		Label:      label,
		PostID:     m.PostID,
		Error:      m.Error,
		ReceivedAt: receivedAt,
	}
}
