package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/reltype"
	pkgerrors "github.com/daddyparodz/nametag/backend/pkg/errors"
)

// CreateUser creates a user account together with its own copy of the
// pre-loaded relationship type catalogue, in one transaction. The two-pass
// inverse wiring mirrors the catalogue's shape: symmetric types point at
// themselves, asymmetric ones at their counterpart.
func (r *Repository) CreateUser(ctx context.Context, email, name, passwordHash, locale string) (*User, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	userID := uuid.NewString()

	typeIDs := make(map[string]string, len(reltype.Preloaded))
	types := make([]map[string]interface{}, 0, len(reltype.Preloaded))
	for _, pt := range reltype.Preloaded {
		id := uuid.NewString()
		typeIDs[pt.Name] = id
		types = append(types, map[string]interface{}{
			"id":    id,
			"name":  pt.Name,
			"label": pt.Label,
			"color": pt.Color,
		})
	}
	pairs := make([]map[string]interface{}, 0, len(reltype.Preloaded))
	for _, pt := range reltype.Preloaded {
		inverseName := pt.InverseName
		if pt.Symmetric {
			inverseName = pt.Name
		}
		pairs = append(pairs, map[string]interface{}{
			"typeId":    typeIDs[pt.Name],
			"inverseId": typeIDs[inverseName],
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (existing:User {email: $email})
			RETURN existing.id as id
		`, map[string]interface{}{"email": email})
		if err != nil {
			return nil, err
		}
		if result.Next(ctx) {
			return nil, pkgerrors.NewEmailTaken(email)
		}

		_, err = tx.Run(ctx, `
			CREATE (u:User {
				id: $userID,
				email: $email,
				name: $name,
				passwordHash: $passwordHash,
				locale: $locale,
				createdAt: datetime()
			})
			WITH u
			UNWIND $types AS t
			CREATE (u)-[:OWNS]->(:RelationshipType {
				id: t.id,
				name: t.name,
				label: t.label,
				color: t.color,
				createdAt: datetime()
			})
		`, map[string]interface{}{
			"userID":       userID,
			"email":        email,
			"name":         name,
			"passwordHash": passwordHash,
			"locale":       locale,
			"types":        types,
		})
		if err != nil {
			return nil, err
		}

		_, err = tx.Run(ctx, `
			UNWIND $pairs AS pair
			MATCH (u:User {id: $userID})-[:OWNS]->(a:RelationshipType {id: pair.typeId})
			MATCH (u)-[:OWNS]->(b:RelationshipType {id: pair.inverseId})
			CREATE (a)-[:INVERSE_OF]->(b)
		`, map[string]interface{}{
			"userID": userID,
			"pairs":  pairs,
		})
		return nil, err
	})
	if err != nil {
		if _, ok := err.(*pkgerrors.ErrEmailTaken); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("User created",
		zap.String("user_id", userID),
		zap.Int("preloaded_types", len(types)),
	)

	return r.GetUser(ctx, userID)
}

// GetUser fetches a user by id
func (r *Repository) GetUser(ctx context.Context, userID string) (*User, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})
		RETURN u.id as id, u.email as email, u.name as name, u.surname as surname,
			u.locale as locale, u.discordId as discord_id,
			u.passwordHash as password_hash, u.createdAt as created_at
	`, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrUserNotFound{UserID: userID}
	}

	return userFromRecord(result.Record()), nil
}

// GetUserByEmail fetches a user by email for login
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {email: $email})
		RETURN u.id as id, u.email as email, u.name as name, u.surname as surname,
			u.locale as locale, u.discordId as discord_id,
			u.passwordHash as password_hash, u.createdAt as created_at
	`, map[string]interface{}{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrUserNotFound{UserID: email}
	}

	return userFromRecord(result.Record()), nil
}

// UpdateUser updates the user's profile fields
func (r *Repository) UpdateUser(ctx context.Context, userID string, name, surname, locale, discordID string) (*User, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})
		SET u.name = $name,
			u.surname = $surname,
			u.locale = $locale,
			u.discordId = $discordID
		RETURN u.id as id
	`, map[string]interface{}{
		"userID":    userID,
		"name":      name,
		"surname":   surname,
		"locale":    locale,
		"discordID": discordID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return nil, ErrUserNotFound{UserID: userID}
	}

	return r.GetUser(ctx, userID)
}

func userFromRecord(record *neo4j.Record) *User {
	u := &User{
		ID:           getStringFromRecord(record, "id"),
		Email:        getStringFromRecord(record, "email"),
		Name:         getStringFromRecord(record, "name"),
		Surname:      getStringFromRecord(record, "surname"),
		Locale:       getStringFromRecord(record, "locale"),
		DiscordID:    getStringFromRecord(record, "discord_id"),
		PasswordHash: getStringFromRecord(record, "password_hash"),
	}
	if t, ok := getTimeFromRecord(record, "created_at"); ok {
		u.CreatedAt = t
	}
	return u
}
