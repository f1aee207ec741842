package poll

import (
	"context"
	"testing"
)

func TestPresenceSyncSuppressesFirstAlert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	events := &recordingEvents{}
	ps := NewPresenceSync(st, events)

	// No users yet: nothing happens.
	if err := ps.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 0 || events.userJoined != 0 {
		t.Fatalf("Expected no events with empty store, got %+v", events)
	}

	// First observed increase from the zero baseline reloads the roster
	// but must not alert.
	register(t, st, "alice")
	if err := ps.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 1 {
		t.Errorf("Expected roster-changed, got %d", events.rosterChanged)
	}
	if events.userJoined != 0 {
		t.Errorf("Expected suppressed alert on first increase, got %d", events.userJoined)
	}

	// Second increase raises both.
	register(t, st, "bob")
	if err := ps.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 2 || events.userJoined != 1 {
		t.Errorf("Expected both events on second increase, got %+v", events)
	}

	// Stable count: quiet tick.
	if err := ps.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 2 || events.userJoined != 1 {
		t.Errorf("Expected no events without change, got %+v", events)
	}
}

func TestPresenceSyncSeveralUsersInFirstIncrease(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Users that exist before the first tick all land in the baseline
	// increase, so none of them alert.
	register(t, st, "alice")
	register(t, st, "bob")
	register(t, st, "carol")

	events := &recordingEvents{}
	ps := NewPresenceSync(st, events)

	if err := ps.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if events.rosterChanged != 1 || events.userJoined != 0 {
		t.Errorf("Expected suppressed alert for pre-existing users, got %+v", events)
	}
}
