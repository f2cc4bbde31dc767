package application

import (
	"sync"

	"github.com/bnema/sc-console-cli/internal/domain"
)

// DefaultFeedCapacity bounds the notification feed; the oldest entries fall
// off once it is reached.
const DefaultFeedCapacity = 50

// FeedSnapshot is an immutable view of the feed handed to subscribers.
// Events are ordered newest first.
type FeedSnapshot struct {
	Events []domain.Event
	Unread int
}

// NotifyCenter is the single owner of the notification feed. Events enter
// through Push only, which assigns their identity; readers get copies and can
// never mutate the feed. Classified events additionally trigger the transient
// alert callback, unclassified ones land in the feed silently.
type NotifyCenter struct {
	mu          sync.Mutex
	capacity    int
	events      []domain.Event
	unread      int
	nextID      int64
	subscribers map[int]func(FeedSnapshot)
	nextSubID   int
	alert       func(domain.Event)
}

func NewNotifyCenter(capacity int, alert func(domain.Event)) *NotifyCenter {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}

	return &NotifyCenter{
		capacity:    capacity,
		subscribers: map[int]func(FeedSnapshot){},
		alert:       alert,
	}
}

// Push prepends the event to the feed, bumps the unread counter and returns
// the stored event with its assigned ID. Every push is recorded; repeated
// events for the same app are deliberately not collapsed.
func (c *NotifyCenter) Push(event domain.Event) domain.Event {
	c.mu.Lock()

	c.nextID++
	event.ID = c.nextID

	c.events = append([]domain.Event{event}, c.events...)
	if len(c.events) > c.capacity {
		c.events = c.events[:c.capacity]
	}
	c.unread++

	snapshot := c.snapshotLocked()
	subscribers := c.subscribersLocked()
	alert := c.alert
	c.mu.Unlock()

	if alert != nil && event.Class != domain.ClassUnclassified {
		alert(event)
	}
	for _, notify := range subscribers {
		notify(snapshot)
	}

	return event
}

// MarkViewed resets the unread counter without touching the feed, the way
// opening the bell dropdown does.
func (c *NotifyCenter) MarkViewed() {
	c.mu.Lock()
	c.unread = 0
	snapshot := c.snapshotLocked()
	subscribers := c.subscribersLocked()
	c.mu.Unlock()

	for _, notify := range subscribers {
		notify(snapshot)
	}
}

// ClearAll empties the feed and resets the counter in one step; subscribers
// never observe a cleared feed with a leftover count.
func (c *NotifyCenter) ClearAll() {
	c.mu.Lock()
	c.events = nil
	c.unread = 0
	snapshot := c.snapshotLocked()
	subscribers := c.subscribersLocked()
	c.mu.Unlock()

	for _, notify := range subscribers {
		notify(snapshot)
	}
}

// Snapshot returns the current feed state.
func (c *NotifyCenter) Snapshot() FeedSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Subscribe registers a feed-change callback and returns its unsubscribe
// function. Callbacks run outside the feed lock.
func (c *NotifyCenter) Subscribe(notify func(FeedSnapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = notify

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		delete(c.subscribers, id)
	}
}

func (c *NotifyCenter) snapshotLocked() FeedSnapshot {
	events := make([]domain.Event, len(c.events))
	copy(events, c.events)

	return FeedSnapshot{Events: events, Unread: c.unread}
}

func (c *NotifyCenter) subscribersLocked() []func(FeedSnapshot) {
	subscribers := make([]func(FeedSnapshot), 0, len(c.subscribers))
	for _, notify := range c.subscribers {
		subscribers = append(subscribers, notify)
	}

	return subscribers
}
