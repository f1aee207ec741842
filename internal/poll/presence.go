package poll

import (
	"context"

	"github.com/XZCh722aris/localchat/internal/store"
)

// PresenceSync watches the global user count. Every observed increase
// invalidates the roster; the user-joined alert is additionally suppressed on
// the very first increase from the initial baseline of zero, so the users
// already present at startup never fire a "new user" notification.
type PresenceSync struct {
	store  store.Store
	events Events

	lastUserCount int
}

func NewPresenceSync(st store.Store, events Events) *PresenceSync {
	return &PresenceSync{store: st, events: events}
}

func (p *PresenceSync) Name() string { return "presence" }

func (p *PresenceSync) Tick(ctx context.Context) error {
	count, err := p.store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count <= p.lastUserCount {
		return nil
	}

	p.events.RosterChanged()
	if p.lastUserCount > 0 {
		p.events.UserJoined()
	}
	p.lastUserCount = count
	return nil
}
