package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/XZCh722aris/localchat/internal/auth"
	"github.com/XZCh722aris/localchat/internal/models"
	"github.com/XZCh722aris/localchat/internal/store"
)

func (s *SQLStore) Authenticate(ctx context.Context, username, secret string) (int, error) {
	var (
		id       int
		password string
	)
	query := s.rebind("SELECT id, password FROM users WHERE username = ?")
	err := s.db.QueryRowContext(ctx, query, username).Scan(&id, &password)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, store.ErrUnregistered
	}
	if err != nil {
		return 0, err
	}
	if !auth.VerifyPassword(password, secret) {
		return 0, store.ErrInvalidCredentials
	}
	return id, nil
}

func (s *SQLStore) Register(ctx context.Context, username, secret, telephone string) (int, error) {
	var count int
	query := s.rebind("SELECT COUNT(*) FROM users WHERE username = ?")
	if err := s.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, store.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(secret)
	if err != nil {
		return 0, err
	}

	var id int
	query = s.rebind("INSERT INTO users (username, password, telephone) VALUES (?, ?, ?) RETURNING id")
	if err := s.db.QueryRowContext(ctx, query, username, hash, telephone).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *SQLStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	query := s.rebind("SELECT id, username, COALESCE(telephone, ''), COALESCE(profile_pic, '') FROM users WHERE id = ?")
	err := s.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.Telephone, &user.ProfilePic)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := s.rebind("SELECT id, username, COALESCE(telephone, ''), COALESCE(profile_pic, '') FROM users WHERE username = ?")
	err := s.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.Telephone, &user.ProfilePic)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUnregistered
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLStore) ListUsers(ctx context.Context, excludeID int) ([]models.User, error) {
	query := s.rebind("SELECT id, username, COALESCE(profile_pic, '') FROM users WHERE id != ? ORDER BY id")
	rows, err := s.db.QueryContext(ctx, query, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.ProfilePic); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetProfilePicture updates the picture reference for the owning user only;
// everything else on a user row is immutable after registration.
func (s *SQLStore) SetProfilePicture(ctx context.Context, userID int, path string) error {
	query := s.rebind("UPDATE users SET profile_pic = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, query, path, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}
