package store

import (
	"context"
	"errors"

	"github.com/XZCh722aris/localchat/internal/models"
)

// Errors the caller is expected to branch on. Anything else returned by a
// Store method is a backing-medium failure and is surfaced as-is.
var (
	// ErrUnregistered means the username does not exist; callers route it
	// to the registration path rather than treating it as a failure.
	ErrUnregistered = errors.New("unregistered username")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken = errors.New("username taken")
)

type Store interface {
	// User operations
	Authenticate(ctx context.Context, username, secret string) (int, error)
	Register(ctx context.Context, username, secret, telephone string) (int, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, excludeID int) ([]models.User, error)
	SetProfilePicture(ctx context.Context, userID int, path string) error
	CountUsers(ctx context.Context) (int, error)

	// Message operations. InsertMessage assigns id and timestamp at call
	// time; ids are strictly increasing store-wide. FetchMessages returns
	// the conversation history ascending by (timestamp, id); sinceID 0
	// means full history. MaxMessageID reports 0 for an empty conversation.
	InsertMessage(ctx context.Context, senderID int, conv models.Conversation, content string, media *models.Media) (int64, error)
	FetchMessages(ctx context.Context, viewerID int, conv models.Conversation, sinceID int64) ([]models.Message, error)
	MaxMessageID(ctx context.Context, viewerID int, conv models.Conversation) (int64, error)

	// UnreadCount approximates unread as the number of messages from the
	// other party with id greater than the viewer's own last-sent id in the
	// same conversation. A viewer who has never sent anything therefore
	// counts the other party's full total; there is no true read pointer.
	UnreadCount(ctx context.Context, viewerID int, conv models.Conversation) (int, error)

	// Group operations. CreateGroupWithMembers inserts the group row plus
	// membership rows for the creator and every invitee as one atomic unit.
	CreateGroupWithMembers(ctx context.Context, name string, creatorID int, invitees []int) (int, error)
	GetGroup(ctx context.Context, id int) (*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID int) ([]models.Group, error)
	CountGroupsForUser(ctx context.Context, userID int) (int, error)

	// ListConversations returns the viewer's roster: every other registered
	// user as a direct conversation plus every group the viewer belongs to.
	ListConversations(ctx context.Context, userID int) ([]models.Conversation, error)

	// Status posts
	CreatePost(ctx context.Context, userID int, content string, media *models.Media) (int64, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
}
