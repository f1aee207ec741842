package poll

import (
	"context"

	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/store"
)

// UnreadTracker recomputes the unread approximation for the viewer's whole
// roster. "Read" is inferred from the viewer's own last-sent message id in
// each conversation, not from an explicit read pointer, so a conversation the
// viewer never replied in counts the other party's entire history as unread.
type UnreadTracker struct {
	store  store.Store
	viewer int

	// Apply receives the fresh counts after each successful tick. Nil is
	// allowed; Counts can still be called on demand.
	Apply func(counts map[models.Conversation]int)
}

func NewUnreadTracker(st store.Store, viewerID int) *UnreadTracker {
	return &UnreadTracker{store: st, viewer: viewerID}
}

func (u *UnreadTracker) Name() string { return "unread" }

func (u *UnreadTracker) Tick(ctx context.Context) error {
	counts, err := u.Counts(ctx)
	if err != nil {
		return err
	}
	if u.Apply != nil {
		u.Apply(counts)
	}
	return nil
}

// Counts returns the unread approximation per roster entry. One store query
// per conversation, each bounded by conversation size.
func (u *UnreadTracker) Counts(ctx context.Context) (map[models.Conversation]int, error) {
	convs, err := u.store.ListConversations(ctx, u.viewer)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Conversation]int, len(convs))
	for _, conv := range convs {
		n, err := u.store.UnreadCount(ctx, u.viewer, conv)
		if err != nil {
			return nil, err
		}
		counts[conv] = n
	}
	return counts, nil
}
