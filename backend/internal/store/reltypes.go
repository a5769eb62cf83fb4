package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

const typeReturnClause = `
	RETURN t.id as id, t.name as name, t.label as label, t.color as color,
		ti.id as inverse_id
`

// CreateRelationshipType adds a custom relationship type to the user's
// catalogue. InverseID may reference another of the user's types, the new
// type itself is referenced by passing an empty id with symmetric = true.
func (r *Repository) CreateRelationshipType(ctx context.Context, userID, label, color, inverseID string, symmetric bool) (*RelationshipType, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	typeID := uuid.NewString()
	if symmetric {
		inverseID = typeID
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (u:User {id: $userID})
			CREATE (u)-[:OWNS]->(t:RelationshipType {
				id: $typeID,
				label: $label,
				color: $color,
				createdAt: datetime()
			})
			RETURN t.id as id
		`, map[string]interface{}{
			"userID": userID,
			"typeID": typeID,
			"label":  label,
			"color":  color,
		})
		if err != nil {
			return nil, err
		}
		if _, err := result.Single(ctx); err != nil {
			return nil, ErrUserNotFound{UserID: userID}
		}
		return nil, setTypeInverse(ctx, tx, userID, typeID, inverseID)
	})
	if err != nil {
		return nil, wrapWriteErr("failed to create relationship type", err)
	}

	r.logger.Info("Relationship type created",
		zap.String("user_id", userID),
		zap.String("type_id", typeID),
	)

	return r.GetRelationshipType(ctx, userID, typeID)
}

// GetRelationshipType fetches one live relationship type.
func (r *Repository) GetRelationshipType(ctx context.Context, userID, typeID string) (*RelationshipType, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
		WHERE t.deletedAt IS NULL
		OPTIONAL MATCH (t)-[:INVERSE_OF]->(ti:RelationshipType)
		WHERE ti.deletedAt IS NULL
	`+typeReturnClause, map[string]interface{}{
		"userID": userID,
		"typeID": typeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationship type: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrTypeNotFound{TypeID: typeID}
	}

	return typeFromRecord(result.Record()), nil
}

// ListRelationshipTypes fetches the user's live type catalogue.
func (r *Repository) ListRelationshipTypes(ctx context.Context, userID string) ([]RelationshipType, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType)
		WHERE t.deletedAt IS NULL
		OPTIONAL MATCH (t)-[:INVERSE_OF]->(ti:RelationshipType)
		WHERE ti.deletedAt IS NULL
	`+typeReturnClause+`
		ORDER BY label
	`, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list relationship types: %w", err)
	}

	var types []RelationshipType
	for result.Next(ctx) {
		types = append(types, *typeFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return types, nil
}

// UpdateRelationshipType rewrites a type's label, color and inverse wiring.
// The canonical name is never touched: it is what keeps an edited default
// recognizable as a customized default rather than a new custom type.
func (r *Repository) UpdateRelationshipType(ctx context.Context, userID, typeID, label, color, inverseID string) (*RelationshipType, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
			WHERE t.deletedAt IS NULL
			SET t.label = $label, t.color = $color
			RETURN t.id as id
		`, map[string]interface{}{
			"userID": userID,
			"typeID": typeID,
			"label":  label,
			"color":  color,
		})
		if err != nil {
			return nil, err
		}
		if _, err := result.Single(ctx); err != nil {
			return nil, ErrTypeNotFound{TypeID: typeID}
		}
		return nil, setTypeInverse(ctx, tx, userID, typeID, inverseID)
	})
	if err != nil {
		return nil, wrapWriteErr("failed to update relationship type", err)
	}

	return r.GetRelationshipType(ctx, userID, typeID)
}

// DeleteRelationshipType soft-deletes a type. Relationships referencing it
// degrade to the "Unknown" label in graph builds.
func (r *Repository) DeleteRelationshipType(ctx context.Context, userID, typeID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
		WHERE t.deletedAt IS NULL
		SET t.deletedAt = datetime()
		RETURN t.id as id
	`, map[string]interface{}{"userID": userID, "typeID": typeID})
	if err != nil {
		return fmt.Errorf("failed to delete relationship type: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrTypeNotFound{TypeID: typeID}
	}

	r.logger.Info("Relationship type soft-deleted",
		zap.String("user_id", userID),
		zap.String("type_id", typeID),
	)
	return nil
}

// setTypeInverse replaces the INVERSE_OF reference. The inverse must be one
// of the user's own live types; validating here keeps malformed catalogues
// out of the graph build.
func setTypeInverse(ctx context.Context, tx neo4j.ManagedTransaction, userID, typeID, inverseID string) error {
	_, err := tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
		OPTIONAL MATCH (t)-[rel:INVERSE_OF]->(:RelationshipType)
		DELETE rel
	`, map[string]interface{}{"userID": userID, "typeID": typeID})
	if err != nil {
		return err
	}
	if inverseID == "" {
		return nil
	}
	result, err := tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
		MATCH (u)-[:OWNS]->(inv:RelationshipType {id: $inverseID})
		WHERE inv.deletedAt IS NULL
		CREATE (t)-[:INVERSE_OF]->(inv)
		RETURN inv.id as id
	`, map[string]interface{}{
		"userID":    userID,
		"typeID":    typeID,
		"inverseID": inverseID,
	})
	if err != nil {
		return err
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrTypeNotFound{TypeID: inverseID}
	}
	return nil
}

func typeFromRecord(record *neo4j.Record) *RelationshipType {
	return &RelationshipType{
		ID:        getStringFromRecord(record, "id"),
		Name:      getStringFromRecord(record, "name"),
		Label:     getStringFromRecord(record, "label"),
		Color:     getStringFromRecord(record, "color"),
		InverseID: getStringFromRecord(record, "inverse_id"),
	}
}
