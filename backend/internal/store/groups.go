package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CreateGroup adds a group to the user's ledger.
func (r *Repository) CreateGroup(ctx context.Context, userID, name, description, color string) (*Group, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	groupID := uuid.NewString()

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})
		CREATE (u)-[:OWNS]->(g:Group {
			id: $groupID,
			name: $name,
			description: $description,
			color: $color,
			createdAt: datetime()
		})
		RETURN g.id as id, g.name as name, g.description as description, g.color as color
	`, map[string]interface{}{
		"userID":      userID,
		"groupID":     groupID,
		"name":        name,
		"description": description,
		"color":       color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, ErrUserNotFound{UserID: userID}
	}

	r.logger.Info("Group created",
		zap.String("user_id", userID),
		zap.String("group_id", groupID),
	)

	return groupFromRecord(record), nil
}

// ListGroups fetches every live group in the user's ledger.
func (r *Repository) ListGroups(ctx context.Context, userID string) ([]Group, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(g:Group)
		WHERE g.deletedAt IS NULL
		RETURN g.id as id, g.name as name, g.description as description, g.color as color
		ORDER BY name
	`, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []Group
	for result.Next(ctx) {
		groups = append(groups, *groupFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return groups, nil
}

// UpdateGroup rewrites a group's fields.
func (r *Repository) UpdateGroup(ctx context.Context, userID, groupID, name, description, color string) (*Group, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(g:Group {id: $groupID})
		WHERE g.deletedAt IS NULL
		SET g.name = $name, g.description = $description, g.color = $color
		RETURN g.id as id, g.name as name, g.description as description, g.color as color
	`, map[string]interface{}{
		"userID":      userID,
		"groupID":     groupID,
		"name":        name,
		"description": description,
		"color":       color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, ErrGroupNotFound{GroupID: groupID}
	}
	return groupFromRecord(record), nil
}

// DeleteGroup soft-deletes a group. Memberships stay in place but the group
// stops appearing in queries and graph builds.
func (r *Repository) DeleteGroup(ctx context.Context, userID, groupID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(g:Group {id: $groupID})
		WHERE g.deletedAt IS NULL
		SET g.deletedAt = datetime()
		RETURN g.id as id
	`, map[string]interface{}{"userID": userID, "groupID": groupID})
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrGroupNotFound{GroupID: groupID}
	}

	r.logger.Info("Group soft-deleted",
		zap.String("user_id", userID),
		zap.String("group_id", groupID),
	)
	return nil
}

func groupFromRecord(record *neo4j.Record) *Group {
	return &Group{
		ID:          getStringFromRecord(record, "id"),
		Name:        getStringFromRecord(record, "name"),
		Description: getStringFromRecord(record, "description"),
		Color:       getStringFromRecord(record, "color"),
	}
}
