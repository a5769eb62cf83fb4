package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// CreateRelationship records a directed relationship between two of the
// user's people. Only one record may exist per unordered pair, in either
// direction; a second record would make graph deduplication depend on
// iteration order.
func (r *Repository) CreateRelationship(ctx context.Context, userID string, rel Relationship) (*Relationship, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	relationshipID := uuid.NewString()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (u:User {id: $userID})-[:OWNS]->(a:Person {id: $personID})
			MATCH (u)-[:OWNS]->(b:Person {id: $relatedPersonID})
			WHERE a.deletedAt IS NULL AND b.deletedAt IS NULL
			OPTIONAL MATCH (a)-[existing:RELATES_TO]-(b)
			WHERE existing.deletedAt IS NULL
			RETURN a.id as a_id, count(existing) as existing_count
		`, map[string]interface{}{
			"userID":          userID,
			"personID":        rel.PersonID,
			"relatedPersonID": rel.RelatedPersonID,
		})
		if err != nil {
			return nil, err
		}
		record, err := result.Single(ctx)
		if err != nil {
			return nil, ErrPersonNotFound{PersonID: rel.RelatedPersonID}
		}
		if getIntFromRecord(record, "existing_count") > 0 {
			return nil, ErrRelationshipExists{PersonID: rel.PersonID, RelatedPersonID: rel.RelatedPersonID}
		}

		if rel.TypeID != "" {
			result, err = tx.Run(ctx, `
				MATCH (u:User {id: $userID})-[:OWNS]->(t:RelationshipType {id: $typeID})
				WHERE t.deletedAt IS NULL
				RETURN t.id as id
			`, map[string]interface{}{"userID": userID, "typeID": rel.TypeID})
			if err != nil {
				return nil, err
			}
			if _, err := result.Single(ctx); err != nil {
				return nil, ErrTypeNotFound{TypeID: rel.TypeID}
			}
		}

		_, err = tx.Run(ctx, `
			MATCH (u:User {id: $userID})-[:OWNS]->(a:Person {id: $personID})
			MATCH (u)-[:OWNS]->(b:Person {id: $relatedPersonID})
			CREATE (a)-[:RELATES_TO {
				id: $relationshipID,
				typeId: $typeID,
				notes: $notes,
				createdAt: datetime()
			}]->(b)
		`, map[string]interface{}{
			"userID":          userID,
			"personID":        rel.PersonID,
			"relatedPersonID": rel.RelatedPersonID,
			"relationshipID":  relationshipID,
			"typeID":          rel.TypeID,
			"notes":           rel.Notes,
		})
		return nil, err
	})
	if err != nil {
		return nil, wrapWriteErr("failed to create relationship", err)
	}

	r.logger.Info("Relationship created",
		zap.String("user_id", userID),
		zap.String("relationship_id", relationshipID),
	)

	created := rel
	created.ID = relationshipID
	return &created, nil
}

// UpdateRelationship rewrites a relationship's type and notes.
func (r *Repository) UpdateRelationship(ctx context.Context, userID, relationshipID, typeID, notes string) (*Relationship, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(a:Person)-[rel:RELATES_TO {id: $relationshipID}]->(b:Person)
		WHERE rel.deletedAt IS NULL
		SET rel.typeId = $typeID, rel.notes = $notes
		RETURN rel.id as id, a.id as person_id, b.id as related_person_id,
			rel.typeId as type_id, rel.notes as notes
	`, map[string]interface{}{
		"userID":         userID,
		"relationshipID": relationshipID,
		"typeID":         typeID,
		"notes":          notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update relationship: %w", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return nil, ErrRelationshipNotFound{RelationshipID: relationshipID}
	}
	return relationshipFromRecord(record), nil
}

// DeleteRelationship soft-deletes a relationship record.
func (r *Repository) DeleteRelationship(ctx context.Context, userID, relationshipID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(:Person)-[rel:RELATES_TO {id: $relationshipID}]->(:Person)
		WHERE rel.deletedAt IS NULL
		SET rel.deletedAt = datetime()
		RETURN rel.id as id
	`, map[string]interface{}{
		"userID":         userID,
		"relationshipID": relationshipID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrRelationshipNotFound{RelationshipID: relationshipID}
	}

	r.logger.Info("Relationship soft-deleted",
		zap.String("user_id", userID),
		zap.String("relationship_id", relationshipID),
	)
	return nil
}

func relationshipFromRecord(record *neo4j.Record) *Relationship {
	return &Relationship{
		ID:              getStringFromRecord(record, "id"),
		PersonID:        getStringFromRecord(record, "person_id"),
		RelatedPersonID: getStringFromRecord(record, "related_person_id"),
		TypeID:          getStringFromRecord(record, "type_id"),
		Notes:           getStringFromRecord(record, "notes"),
	}
}
