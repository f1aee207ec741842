package sqlstore

import (
	"context"
	"fmt"

	"github.com/XZCh722aris/localchat/internal/models"
)

// CreateGroupWithMembers inserts the group row and one membership row per
// member (creator first, then invitees) inside a single transaction. Any
// failure rolls the whole unit back: there is never a group without its
// memberships.
func (s *SQLStore) CreateGroupWithMembers(ctx context.Context, name string, creatorID int, invitees []int) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("group name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var groupID int
	query := s.rebind("INSERT INTO chat_groups (name, created_by) VALUES (?, ?) RETURNING id")
	if err := tx.QueryRowContext(ctx, query, name, creatorID).Scan(&groupID); err != nil {
		return 0, err
	}

	query = s.rebind("INSERT INTO group_members (group_id, user_id) VALUES (?, ?)")
	if _, err := tx.ExecContext(ctx, query, groupID, creatorID); err != nil {
		return 0, err
	}
	for _, memberID := range invitees {
		if _, err := tx.ExecContext(ctx, query, groupID, memberID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return groupID, nil
}

func (s *SQLStore) GetGroup(ctx context.Context, id int) (*models.Group, error) {
	var group models.Group
	query := s.rebind("SELECT id, name, created_by FROM chat_groups WHERE id = ?")
	err := s.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name, &group.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *SQLStore) ListGroupsForUser(ctx context.Context, userID int) ([]models.Group, error) {
	query := s.rebind(`
		SELECT g.id, g.name, g.created_by
		FROM chat_groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = ?
		ORDER BY g.id
	`)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *SQLStore) CountGroupsForUser(ctx context.Context, userID int) (int, error) {
	var count int
	query := s.rebind(`
		SELECT COUNT(*) FROM chat_groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = ?
	`)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (s *SQLStore) ListConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	users, err := s.ListUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	convs := make([]models.Conversation, 0, len(users)+len(groups))
	for _, u := range users {
		convs = append(convs, models.DirectConversation(u.ID))
	}
	for _, g := range groups {
		convs = append(convs, models.GroupConversation(g.ID))
	}
	return convs, nil
}
