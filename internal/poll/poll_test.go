package poll

import (
	"context"
	"testing"

	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/store/sqlstore"
)

// recordingEvents captures every raised event for assertions.
type recordingEvents struct {
	updated       []models.Conversation
	histories     [][]models.Message
	rosterChanged int
	userJoined    int
	groupJoined   int
}

func (r *recordingEvents) MessagesUpdated(conv models.Conversation, history []models.Message) {
	r.updated = append(r.updated, conv)
	r.histories = append(r.histories, history)
}

func (r *recordingEvents) RosterChanged() { r.rosterChanged++ }
func (r *recordingEvents) UserJoined()    { r.userJoined++ }
func (r *recordingEvents) GroupJoined()   { r.groupJoined++ }

func newTestStore(t *testing.T) *sqlstore.SQLStore {
	t.Helper()
	st, err := sqlstore.New("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func register(t *testing.T, st *sqlstore.SQLStore, username string) int {
	t.Helper()
	id, err := st.Register(context.Background(), username, "password123", "555-0100")
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	return id
}
