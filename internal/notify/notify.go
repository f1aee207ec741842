// Package notify provides the default poll.Events sink: alerts become log
// lines. The GUI concerns of the original application (sounds, popups) stay
// outside; a presentation layer overrides what it wants to render itself.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/XZCh722aris/localchat/internal/models"
)

type Emitter struct {
	log zerolog.Logger

	// OnMessages, when set, receives refreshed conversation histories
	// instead of the default log line.
	OnMessages func(conv models.Conversation, history []models.Message)

	// OnRosterChanged, when set, runs after the roster-changed log line so
	// the presentation can reload its lists.
	OnRosterChanged func()
}

func NewEmitter(log zerolog.Logger) *Emitter {
	return &Emitter{log: log}
}

func (e *Emitter) MessagesUpdated(conv models.Conversation, history []models.Message) {
	if e.OnMessages != nil {
		e.OnMessages(conv, history)
		return
	}
	e.log.Debug().Stringer("conversation", conv).Int("messages", len(history)).Msg("conversation updated")
}

func (e *Emitter) RosterChanged() {
	e.log.Debug().Msg("roster changed")
	if e.OnRosterChanged != nil {
		e.OnRosterChanged()
	}
}

func (e *Emitter) UserJoined() {
	e.log.Info().Msg("a new user has joined the chat")
}

func (e *Emitter) GroupJoined() {
	e.log.Info().Msg("you have been added to a new group")
}
