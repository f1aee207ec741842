package poll

import (
	"context"
	"sync/atomic"

	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/store"
)

// ConversationSync watches one open conversation. It keeps the highest
// message id it has already reported; when the store's max id moves past it,
// the full ordered history is re-fetched and emitted. Re-fetching the whole
// history instead of the delta keeps the materialized view trivially
// consistent; conversations are expected small, so the cost is bounded.
// Known scaling limit for very long histories.
type ConversationSync struct {
	store  store.Store
	events Events
	viewer int
	conv   models.Conversation

	lastMessageID int64
	stopped       atomic.Bool
}

func NewConversationSync(st store.Store, events Events, viewerID int, conv models.Conversation) *ConversationSync {
	return &ConversationSync{
		store:  st,
		events: events,
		viewer: viewerID,
		conv:   conv,
	}
}

func (c *ConversationSync) Name() string {
	return "conversation:" + c.conv.String()
}

// Stop disposes the poller. A stopped poller never emits again, even if the
// scheduler still holds a reference to it mid-pass.
func (c *ConversationSync) Stop() {
	c.stopped.Store(true)
}

func (c *ConversationSync) Conversation() models.Conversation {
	return c.conv
}

func (c *ConversationSync) Tick(ctx context.Context) error {
	if c.stopped.Load() {
		return nil
	}

	max, err := c.store.MaxMessageID(ctx, c.viewer, c.conv)
	if err != nil {
		return err
	}
	if max <= c.lastMessageID {
		return nil
	}

	history, err := c.store.FetchMessages(ctx, c.viewer, c.conv, 0)
	if err != nil {
		return err
	}

	c.lastMessageID = max
	if c.stopped.Load() {
		return nil
	}
	c.events.MessagesUpdated(c.conv, history)
	return nil
}
