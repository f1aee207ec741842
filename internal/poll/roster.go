package poll

import (
	"context"

	"github.com/XZCh722aris/localchat/internal/store"
)

// RosterSync watches the viewer's group-membership count. The first tick only
// records the baseline; after that every increase raises both the roster
// refresh and the group-joined alert. Note the deliberate difference from
// PresenceSync: there is no nonzero-baseline guard here, so even a viewer
// whose baseline was zero is alerted on their first post-login group.
type RosterSync struct {
	store  store.Store
	events Events
	viewer int

	lastGroupsCount int
	baselined       bool
}

func NewRosterSync(st store.Store, events Events, viewerID int) *RosterSync {
	return &RosterSync{store: st, events: events, viewer: viewerID}
}

func (r *RosterSync) Name() string { return "roster" }

func (r *RosterSync) Tick(ctx context.Context) error {
	count, err := r.store.CountGroupsForUser(ctx, r.viewer)
	if err != nil {
		return err
	}

	if !r.baselined {
		r.lastGroupsCount = count
		r.baselined = true
		return nil
	}
	if count <= r.lastGroupsCount {
		return nil
	}

	r.events.RosterChanged()
	r.events.GroupJoined()
	r.lastGroupsCount = count
	return nil
}
