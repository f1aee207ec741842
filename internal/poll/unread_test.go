package poll

import (
	"context"
	"testing"

	"github.com/XZCh722aris/localchat/internal/models"
)

func TestUnreadTrackerCounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := register(t, st, "alice")
	bob := register(t, st, "bob")
	carol := register(t, st, "carol")
	groupID, _ := st.CreateGroupWithMembers(ctx, "team", bob, []int{alice, carol})

	// bob: alice replied once, then bob sent three more.
	st.InsertMessage(ctx, alice, models.DirectConversation(bob), "reply", nil)
	st.InsertMessage(ctx, bob, models.DirectConversation(alice), "one", nil)
	st.InsertMessage(ctx, bob, models.DirectConversation(alice), "two", nil)
	st.InsertMessage(ctx, bob, models.DirectConversation(alice), "three", nil)

	// carol: alice never replied, so both messages count.
	st.InsertMessage(ctx, carol, models.DirectConversation(alice), "hi", nil)
	st.InsertMessage(ctx, carol, models.DirectConversation(alice), "there", nil)

	// group: one message from another member.
	st.InsertMessage(ctx, bob, models.GroupConversation(groupID), "standup", nil)

	tracker := NewUnreadTracker(st, alice)
	counts, err := tracker.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}

	if got := counts[models.DirectConversation(bob)]; got != 3 {
		t.Errorf("Expected 3 unread from bob, got %d", got)
	}
	if got := counts[models.DirectConversation(carol)]; got != 2 {
		t.Errorf("Expected 2 unread from carol, got %d", got)
	}
	if got := counts[models.GroupConversation(groupID)]; got != 1 {
		t.Errorf("Expected 1 unread in group, got %d", got)
	}
}

func TestUnreadTrackerTickApplies(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := register(t, st, "alice")
	bob := register(t, st, "bob")
	st.InsertMessage(ctx, bob, models.DirectConversation(alice), "unseen", nil)

	tracker := NewUnreadTracker(st, alice)

	var applied map[models.Conversation]int
	tracker.Apply = func(counts map[models.Conversation]int) { applied = counts }

	if err := tracker.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if applied == nil {
		t.Fatal("Expected Apply to receive counts")
	}
	if got := applied[models.DirectConversation(bob)]; got != 1 {
		t.Errorf("Expected 1 unread, got %d", got)
	}
}
