package models

import (
	"fmt"
	"time"
)

type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	Telephone  string `json:"telephone,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaFile  MediaKind = "file"
)

// Media is a reference to a file already copied into local media storage.
type Media struct {
	Path string    `json:"path"`
	Kind MediaKind `json:"kind"`
}

// Message is immutable once stored. Exactly one of ReceiverID and GroupID is
// set (zero means unset): a message is either direct or group-addressed.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int       `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	ReceiverID int       `json:"receiver_id,omitempty"`
	GroupID    int       `json:"group_id,omitempty"`
	Content    string    `json:"content,omitempty"`
	Media      *Media    `json:"media,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Group struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CreatedBy int    `json:"created_by"`
}

type Post struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content,omitempty"`
	Media     *Media    `json:"media,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation identifies either a direct chat with a peer user or a group
// chat. Exactly one of the two ids is nonzero.
type Conversation struct {
	PeerID  int `json:"peer_id,omitempty"`
	GroupID int `json:"group_id,omitempty"`
}

func DirectConversation(peerID int) Conversation {
	return Conversation{PeerID: peerID}
}

func GroupConversation(groupID int) Conversation {
	return Conversation{GroupID: groupID}
}

func (c Conversation) IsGroup() bool { return c.GroupID != 0 }

func (c Conversation) IsZero() bool { return c.PeerID == 0 && c.GroupID == 0 }

func (c Conversation) String() string {
	if c.IsGroup() {
		return fmt.Sprintf("group:%d", c.GroupID)
	}
	return fmt.Sprintf("user:%d", c.PeerID)
}
