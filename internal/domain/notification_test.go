package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreamMessageClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		kind string
		want Classification
	}{
		{name: "task done", kind: MessageTypeTaskDone, want: ClassSuccess},
		{name: "task fail", kind: MessageTypeTaskFail, want: ClassFailure},
		{name: "unknown type", kind: "queue_drained", want: ClassUnclassified},
		{name: "empty type", kind: "", want: ClassUnclassified},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			msg := StreamMessage{Type: tc.kind, AppID: 730}
			assert.Equal(t, tc.want, msg.Classify())
		})
	}
}

func TestNewEventCopiesMessageFields(t *testing.T) {
	t.Parallel()

	receivedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	event := NewEvent(StreamMessage{
		Type:     MessageTypeTaskDone,
		AppID:    730,
		GameName: "Counter-Strike 2",
		PostID:   42,
	}, receivedAt)

	assert.Equal(t, ClassSuccess, event.Class)
	assert.Equal(t, int64(730), event.AppID)
	assert.Equal(t, "Counter-Strike 2", event.Label)
	assert.Equal(t, int64(42), event.PostID)
	assert.True(t, event.ReceivedAt.Equal(receivedAt))
}

func TestNewEventLabelFallsBackToAppID(t *testing.T) {
	t.Parallel()

	event := NewEvent(StreamMessage{Type: MessageTypeTaskFail, AppID: 440, Error: "timeout"}, time.Now())

	assert.Equal(t, "App 440", event.Label)
	assert.Equal(t, ClassFailure, event.Class)
	assert.Equal(t, "timeout", event.Error)
}
