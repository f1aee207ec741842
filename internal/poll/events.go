// Package poll implements the store-observation engine: watermark-based
// pollers driven by a fixed-tick scheduler. There is no push channel; every
// component detects change by comparing a store query against its own
// last-observed state and raises an event when the state moved forward.
package poll

import (
	"context"

	"github.com/XZCh722aris/localchat/internal/models"
)

// Events is the sink for state-change events raised by the pollers. The
// presentation layer implements it; the engine never blocks on it, so
// implementations must return promptly.
type Events interface {
	// MessagesUpdated carries the full refreshed history of the
	// conversation, ascending by (timestamp, id).
	MessagesUpdated(conv models.Conversation, history []models.Message)

	// RosterChanged signals that the visible user or group list is stale.
	RosterChanged()

	// UserJoined signals that a new user registered after the baseline.
	UserJoined()

	// GroupJoined signals that the viewer was added to a new group.
	GroupJoined()
}

// Poller is one scheduled unit of observation work. Tick is always invoked
// from the scheduler goroutine; a returned error is logged and counted but
// never stops future ticks.
type Poller interface {
	Name() string
	Tick(ctx context.Context) error
}
