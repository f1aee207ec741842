package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XZCh722aris/localchat/internal/models"
)

func (s *SQLStore) CreatePost(ctx context.Context, userID int, content string, media *models.Media) (int64, error) {
	if content == "" && media == nil {
		return 0, fmt.Errorf("post needs content or media")
	}

	var (
		mediaPath sql.NullString
		mediaKind sql.NullString
	)
	if media != nil {
		mediaPath = sql.NullString{String: media.Path, Valid: true}
		mediaKind = sql.NullString{String: string(media.Kind), Valid: true}
	}

	var id int64
	query := s.rebind("INSERT INTO status_posts (user_id, content, media_path, media_kind, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id")
	err := s.db.QueryRowContext(ctx, query, userID, content, mediaPath, mediaKind, time.Now().UTC()).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := s.rebind(`
		SELECT p.id, p.user_id, u.username, COALESCE(p.content, ''), p.media_path, p.media_kind, p.created_at
		FROM status_posts p
		JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var (
			p         models.Post
			mediaPath sql.NullString
			mediaKind sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Content, &mediaPath, &mediaKind, &p.CreatedAt); err != nil {
			return nil, err
		}
		if mediaPath.Valid {
			p.Media = &models.Media{Path: mediaPath.String, Kind: models.MediaKind(mediaKind.String)}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
