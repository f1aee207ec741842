package poll

import (
	"context"
	"testing"
)

func TestRosterSyncLazyBaselineThenAlerts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := register(t, st, "alice")
	bob := register(t, st, "bob")

	// Viewer already belongs to two groups before logging in.
	st.CreateGroupWithMembers(ctx, "team one", bob, []int{alice})
	st.CreateGroupWithMembers(ctx, "team two", bob, []int{alice})

	events := &recordingEvents{}
	rs := NewRosterSync(st, events, alice)

	// First tick only records the baseline.
	if err := rs.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 0 || events.groupJoined != 0 {
		t.Fatalf("Expected silent baseline tick, got %+v", events)
	}

	// Added to a third group: both events fire, with no nonzero-baseline
	// suppression (unlike PresenceSync).
	st.CreateGroupWithMembers(ctx, "team three", bob, []int{alice})
	if err := rs.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 1 || events.groupJoined != 1 {
		t.Errorf("Expected roster-changed and group-joined, got %+v", events)
	}

	// Stable count: quiet tick.
	if err := rs.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 1 || events.groupJoined != 1 {
		t.Errorf("Expected no events without change, got %+v", events)
	}
}

func TestRosterSyncAlertsFromZeroBaseline(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := register(t, st, "alice")
	bob := register(t, st, "bob")

	events := &recordingEvents{}
	rs := NewRosterSync(st, events, alice)

	// Baseline of zero groups.
	if err := rs.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	// The very first group still alerts; RosterSync has no startup
	// suppression beyond the baseline tick.
	st.CreateGroupWithMembers(ctx, "first group", bob, []int{alice})
	if err := rs.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 1 || events.groupJoined != 1 {
		t.Errorf("Expected alert on first post-baseline group, got %+v", events)
	}
}
