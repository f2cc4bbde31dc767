package ports

import "github.com/bnema/sc-console-cli/internal/domain"

type EventHandler func(domain.Event)

// EventStream is the long-lived server-to-client push channel carrying task
// lifecycle events. At most one connection is open per client; Connect
// replaces any existing connection and Disconnect must be called on every
// teardown path. Reconnection after a dropped connection is the transport's
// concern, not the caller's.
type EventStream interface {
	Connect(token string, handler EventHandler) error
	Disconnect()
}
