package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// PersonInput carries the writable fields of a person.
type PersonInput struct {
	Name                string
	Nickname            string
	Surname             string
	Notes               string
	LastContact         *time.Time
	GroupIDs            []string
	RelationshipToOwner string // relationship type id, empty to clear
}

const personReturnClause = `
	RETURN p.id as id, p.name as name, p.nickname as nickname, p.surname as surname,
		p.notes as notes, p.lastContact as last_contact, p.createdAt as created_at,
		ot {.id, .name, .label, .color, inverseId: oti.id} as relationship_to_owner,
		collect(DISTINCT g {.id, .name, .description, .color}) as groups
`

const personMatchOptional = `
	OPTIONAL MATCH (p)-[:RELATES_TO_OWNER]->(ot:RelationshipType)
	WHERE ot.deletedAt IS NULL
	OPTIONAL MATCH (ot)-[:INVERSE_OF]->(oti:RelationshipType)
	WHERE oti.deletedAt IS NULL
	OPTIONAL MATCH (p)-[:IN_GROUP]->(g:Group)
	WHERE g.deletedAt IS NULL
`

// CreatePerson adds a person to the user's ledger, attaching group
// memberships and the optional relationship-to-owner type.
func (r *Repository) CreatePerson(ctx context.Context, userID string, input PersonInput) (*Person, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	personID := uuid.NewString()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (u:User {id: $userID})
			CREATE (u)-[:OWNS]->(p:Person {
				id: $personID,
				name: $name,
				nickname: $nickname,
				surname: $surname,
				notes: $notes,
				createdAt: datetime()
			})
			SET p.lastContact = CASE WHEN $lastContact IS NULL THEN NULL ELSE datetime($lastContact) END
			RETURN p.id as id
		`, map[string]interface{}{
			"userID":      userID,
			"personID":    personID,
			"name":        input.Name,
			"nickname":    input.Nickname,
			"surname":     input.Surname,
			"notes":       input.Notes,
			"lastContact": timeParam(input.LastContact),
		})
		if err != nil {
			return nil, err
		}
		if _, err := result.Single(ctx); err != nil {
			return nil, ErrUserNotFound{UserID: userID}
		}

		if err := setPersonGroups(ctx, tx, userID, personID, input.GroupIDs); err != nil {
			return nil, err
		}
		return nil, setPersonOwnerRelation(ctx, tx, userID, personID, input.RelationshipToOwner)
	})
	if err != nil {
		return nil, wrapWriteErr("failed to create person", err)
	}

	r.logger.Info("Person created",
		zap.String("user_id", userID),
		zap.String("person_id", personID),
	)

	return r.GetPerson(ctx, userID, personID)
}

// GetPerson fetches one live person with groups and the relationship type to
// the owner.
func (r *Repository) GetPerson(ctx context.Context, userID, personID string) (*Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		WHERE p.deletedAt IS NULL
	`+personMatchOptional+personReturnClause, map[string]interface{}{
		"userID":   userID,
		"personID": personID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrPersonNotFound{PersonID: personID}
	}

	return personFromRecord(result.Record()), nil
}

// ListPeople fetches every live person in the user's ledger.
func (r *Repository) ListPeople(ctx context.Context, userID string) ([]Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person)
		WHERE p.deletedAt IS NULL
	`+personMatchOptional+personReturnClause+`
		ORDER BY name, surname
	`, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}

	var people []Person
	for result.Next(ctx) {
		people = append(people, *personFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return people, nil
}

// UpdatePerson rewrites a person's fields, group memberships and owner
// relation.
func (r *Repository) UpdatePerson(ctx context.Context, userID, personID string, input PersonInput) (*Person, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		result, err := tx.Run(ctx, `
			MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
			WHERE p.deletedAt IS NULL
			SET p.name = $name,
				p.nickname = $nickname,
				p.surname = $surname,
				p.notes = $notes,
				p.lastContact = CASE WHEN $lastContact IS NULL THEN NULL ELSE datetime($lastContact) END
			RETURN p.id as id
		`, map[string]interface{}{
			"userID":      userID,
			"personID":    personID,
			"name":        input.Name,
			"nickname":    input.Nickname,
			"surname":     input.Surname,
			"notes":       input.Notes,
			"lastContact": timeParam(input.LastContact),
		})
		if err != nil {
			return nil, err
		}
		if _, err := result.Single(ctx); err != nil {
			return nil, ErrPersonNotFound{PersonID: personID}
		}

		if err := setPersonGroups(ctx, tx, userID, personID, input.GroupIDs); err != nil {
			return nil, err
		}
		return nil, setPersonOwnerRelation(ctx, tx, userID, personID, input.RelationshipToOwner)
	})
	if err != nil {
		return nil, wrapWriteErr("failed to update person", err)
	}

	return r.GetPerson(ctx, userID, personID)
}

// DeletePerson soft-deletes a person. The record and its relationships stay
// in the graph but disappear from every query.
func (r *Repository) DeletePerson(ctx context.Context, userID, personID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		WHERE p.deletedAt IS NULL
		SET p.deletedAt = datetime()
		RETURN p.id as id
	`, map[string]interface{}{
		"userID":   userID,
		"personID": personID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrPersonNotFound{PersonID: personID}
	}

	r.logger.Info("Person soft-deleted",
		zap.String("user_id", userID),
		zap.String("person_id", personID),
	)
	return nil
}

// setPersonGroups replaces the person's group memberships.
func setPersonGroups(ctx context.Context, tx neo4j.ManagedTransaction, userID, personID string, groupIDs []string) error {
	_, err := tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		OPTIONAL MATCH (p)-[m:IN_GROUP]->(:Group)
		DELETE m
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return err
	}
	if len(groupIDs) == 0 {
		return nil
	}
	_, err = tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		UNWIND $groupIDs AS groupID
		MATCH (u)-[:OWNS]->(g:Group {id: groupID})
		WHERE g.deletedAt IS NULL
		MERGE (p)-[:IN_GROUP]->(g)
	`, map[string]interface{}{
		"userID":   userID,
		"personID": personID,
		"groupIDs": groupIDs,
	})
	return err
}

// setPersonOwnerRelation replaces the person's relationship-to-owner type
// reference. An empty type id clears it.
func setPersonOwnerRelation(ctx context.Context, tx neo4j.ManagedTransaction, userID, personID, typeID string) error {
	_, err := tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		OPTIONAL MATCH (p)-[rel:RELATES_TO_OWNER]->(:RelationshipType)
		DELETE rel
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return err
	}
	if typeID == "" {
		return nil
	}
	result, err := tx.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		MATCH (u)-[:OWNS]->(t:RelationshipType {id: $typeID})
		WHERE t.deletedAt IS NULL
		CREATE (p)-[:RELATES_TO_OWNER]->(t)
		RETURN t.id as id
	`, map[string]interface{}{
		"userID":   userID,
		"personID": personID,
		"typeID":   typeID,
	})
	if err != nil {
		return err
	}
	if _, err := result.Single(ctx); err != nil {
		return ErrTypeNotFound{TypeID: typeID}
	}
	return nil
}

func personFromRecord(record *neo4j.Record) *Person {
	p := &Person{
		ID:                  getStringFromRecord(record, "id"),
		Name:                getStringFromRecord(record, "name"),
		Nickname:            getStringFromRecord(record, "nickname"),
		Surname:             getStringFromRecord(record, "surname"),
		Notes:               getStringFromRecord(record, "notes"),
		Groups:              mapsToGroups(getMapSliceFromRecord(record, "groups")),
		RelationshipToOwner: mapToStoreType(getMapFromRecord(record, "relationship_to_owner")),
	}
	if t, ok := getTimeFromRecord(record, "last_contact"); ok {
		p.LastContact = &t
	}
	if t, ok := getTimeFromRecord(record, "created_at"); ok {
		p.CreatedAt = t
	}
	return p
}

// timeParam formats an optional time for a Cypher datetime() call.
func timeParam(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// wrapWriteErr keeps typed not-found errors intact through transaction
// wrappers.
func wrapWriteErr(msg string, err error) error {
	switch err.(type) {
	case ErrUserNotFound, ErrPersonNotFound, ErrGroupNotFound, ErrTypeNotFound,
		ErrRelationshipNotFound, ErrRelationshipExists:
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
