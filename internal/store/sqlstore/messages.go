package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XZCh722aris/localchat/internal/models"
)

func (s *SQLStore) InsertMessage(ctx context.Context, senderID int, conv models.Conversation, content string, media *models.Media) (int64, error) {
	if conv.IsZero() {
		return 0, fmt.Errorf("message target is required")
	}
	if content == "" && media == nil {
		return 0, fmt.Errorf("message needs content or media")
	}

	var (
		mediaPath sql.NullString
		mediaKind sql.NullString
	)
	if media != nil {
		mediaPath = sql.NullString{String: media.Path, Valid: true}
		mediaKind = sql.NullString{String: string(media.Kind), Valid: true}
	}

	var (
		id    int64
		query string
		err   error
	)
	createdAt := time.Now().UTC()
	if conv.IsGroup() {
		query = s.rebind("INSERT INTO messages (sender_id, group_id, content, media_path, media_kind, created_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id")
		err = s.db.QueryRowContext(ctx, query, senderID, conv.GroupID, content, mediaPath, mediaKind, createdAt).Scan(&id)
	} else {
		query = s.rebind("INSERT INTO messages (sender_id, receiver_id, content, media_path, media_kind, created_at) VALUES (?, ?, ?, ?, ?, ?) RETURNING id")
		err = s.db.QueryRowContext(ctx, query, senderID, conv.PeerID, content, mediaPath, mediaKind, createdAt).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLStore) FetchMessages(ctx context.Context, viewerID int, conv models.Conversation, sinceID int64) ([]models.Message, error) {
	var (
		query string
		args  []any
	)
	if conv.IsGroup() {
		query = `
			SELECT m.id, m.sender_id, u.username, COALESCE(m.receiver_id, 0), COALESCE(m.group_id, 0),
			       COALESCE(m.content, ''), m.media_path, m.media_kind, m.created_at
			FROM messages m
			JOIN users u ON m.sender_id = u.id
			WHERE m.group_id = ? AND m.id > ?
			ORDER BY m.created_at ASC, m.id ASC
		`
		args = []any{conv.GroupID, sinceID}
	} else {
		query = `
			SELECT m.id, m.sender_id, u.username, COALESCE(m.receiver_id, 0), COALESCE(m.group_id, 0),
			       COALESCE(m.content, ''), m.media_path, m.media_kind, m.created_at
			FROM messages m
			JOIN users u ON m.sender_id = u.id
			WHERE ((m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?))
			  AND m.id > ?
			ORDER BY m.created_at ASC, m.id ASC
		`
		args = []any{viewerID, conv.PeerID, conv.PeerID, viewerID, sinceID}
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			m         models.Message
			mediaPath sql.NullString
			mediaKind sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.ReceiverID, &m.GroupID,
			&m.Content, &mediaPath, &mediaKind, &m.CreatedAt); err != nil {
			return nil, err
		}
		if mediaPath.Valid {
			m.Media = &models.Media{Path: mediaPath.String, Kind: models.MediaKind(mediaKind.String)}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLStore) MaxMessageID(ctx context.Context, viewerID int, conv models.Conversation) (int64, error) {
	var (
		query string
		args  []any
	)
	if conv.IsGroup() {
		query = "SELECT COALESCE(MAX(id), 0) FROM messages WHERE group_id = ?"
		args = []any{conv.GroupID}
	} else {
		query = `
			SELECT COALESCE(MAX(id), 0) FROM messages
			WHERE (sender_id = ? AND receiver_id = ?)
			   OR (sender_id = ? AND receiver_id = ?)
		`
		args = []any{viewerID, conv.PeerID, conv.PeerID, viewerID}
	}

	var max int64
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

func (s *SQLStore) UnreadCount(ctx context.Context, viewerID int, conv models.Conversation) (int, error) {
	var (
		query string
		args  []any
	)
	if conv.IsGroup() {
		query = `
			SELECT COUNT(*) FROM messages
			WHERE group_id = ? AND sender_id != ?
			  AND id > COALESCE((
				SELECT MAX(id) FROM messages
				WHERE group_id = ? AND sender_id = ?
			  ), 0)
		`
		args = []any{conv.GroupID, viewerID, conv.GroupID, viewerID}
	} else {
		query = `
			SELECT COUNT(*) FROM messages
			WHERE sender_id = ? AND receiver_id = ?
			  AND id > COALESCE((
				SELECT MAX(id) FROM messages
				WHERE sender_id = ? AND receiver_id = ?
			  ), 0)
		`
		args = []any{conv.PeerID, viewerID, viewerID, conv.PeerID}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
