package poll

import (
	"context"

	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/store"
)

// Engine ties the pollers for one logged-in viewer to a scheduler. It owns
// the global presence watcher, the viewer's roster watcher and unread
// tracker, and the per-open-conversation pollers.
type Engine struct {
	store  store.Store
	sched  *Scheduler
	events Events
	viewer int

	unread *UnreadTracker
	open   map[models.Conversation]*ConversationSync
}

func NewEngine(st store.Store, sched *Scheduler, events Events, viewerID int) *Engine {
	e := &Engine{
		store:  st,
		sched:  sched,
		events: events,
		viewer: viewerID,
		unread: NewUnreadTracker(st, viewerID),
		open:   make(map[models.Conversation]*ConversationSync),
	}
	sched.Add(NewPresenceSync(st, events))
	sched.Add(NewRosterSync(st, events, viewerID))
	sched.Add(e.unread)
	return e
}

// OnUnread registers the callback receiving fresh unread counts each tick.
func (e *Engine) OnUnread(apply func(map[models.Conversation]int)) {
	e.unread.Apply = apply
}

// OpenConversation starts a poller for the conversation. Opening an already
// open conversation is a no-op returning the existing poller. The engine is
// driven from the scheduler goroutine and the presentation layer; the open
// map is only touched by the latter, one call at a time.
func (e *Engine) OpenConversation(conv models.Conversation) *ConversationSync {
	if cs, ok := e.open[conv]; ok {
		return cs
	}
	cs := NewConversationSync(e.store, e.events, e.viewer, conv)
	e.open[conv] = cs
	e.sched.Add(cs)
	return cs
}

// CloseConversation stops and removes the conversation's poller. After it
// returns, the poller never emits again.
func (e *Engine) CloseConversation(conv models.Conversation) {
	cs, ok := e.open[conv]
	if !ok {
		return
	}
	cs.Stop()
	e.sched.Remove(cs)
	delete(e.open, conv)
}

// CloseAll stops every open conversation poller.
func (e *Engine) CloseAll() {
	for conv := range e.open {
		e.CloseConversation(conv)
	}
}

// Unread reports the current unread approximation on demand.
func (e *Engine) Unread(ctx context.Context) (map[models.Conversation]int, error) {
	return e.unread.Counts(ctx)
}
