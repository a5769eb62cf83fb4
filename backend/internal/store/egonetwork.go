package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/daddyparodz/nametag/backend/internal/egonet"
	"github.com/daddyparodz/nametag/backend/internal/reltype"
)

// FetchEgoNetwork materializes the radius-2 snapshot the graph assembler
// consumes: the center person with groups and owner relation, every direct
// relation with the related person's own groups, owner relation and
// relationships, and each relationship type with its inverse. Soft-deleted
// people, groups, types and relationship records are excluded here so the
// assembler can trust its input.
//
// Returns ErrPersonNotFound when the center person is missing, soft-deleted
// or owned by another user; callers must turn that into a not-found response
// without invoking the assembler.
func (r *Repository) FetchEgoNetwork(ctx context.Context, userID, personID string) (*egonet.Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	center, err := r.fetchCenter(ctx, session, userID, personID)
	if err != nil {
		return nil, err
	}

	related, order, err := r.fetchDirectRelations(ctx, session, userID, personID)
	if err != nil {
		return nil, err
	}

	if err := r.fetchSecondHop(ctx, session, userID, personID, related); err != nil {
		return nil, err
	}

	for _, rel := range order {
		center.Relationships = append(center.Relationships, *rel)
	}
	return center, nil
}

func (r *Repository) fetchCenter(ctx context.Context, session neo4j.SessionWithContext, userID, personID string) (*egonet.Person, error) {
	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		WHERE p.deletedAt IS NULL
		OPTIONAL MATCH (p)-[:RELATES_TO_OWNER]->(ot:RelationshipType)
		WHERE ot.deletedAt IS NULL
		OPTIONAL MATCH (p)-[:IN_GROUP]->(g:Group)
		WHERE g.deletedAt IS NULL
		RETURN p.id as id, p.name as name, p.nickname as nickname, p.surname as surname,
			ot {.id, .name, .label, .color} as owner_type,
			collect(DISTINCT g {.name, .color}) as groups
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch center person: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, ErrPersonNotFound{PersonID: personID}
	}

	record := result.Record()
	return &egonet.Person{
		ID:                  getStringFromRecord(record, "id"),
		Name:                getStringFromRecord(record, "name"),
		Nickname:            getStringFromRecord(record, "nickname"),
		Surname:             getStringFromRecord(record, "surname"),
		Groups:              mapsToEgonetGroups(getMapSliceFromRecord(record, "groups")),
		RelationshipToOwner: mapToType(getMapFromRecord(record, "owner_type")),
	}, nil
}

// fetchDirectRelations returns the center's direct relationship records with
// fully-populated related persons, keyed by related person id and in
// creation order. Creation order keeps first-seen-wins deduplication
// deterministic across builds.
func (r *Repository) fetchDirectRelations(ctx context.Context, session neo4j.SessionWithContext, userID, personID string) (map[string]*egonet.Relation, []*egonet.Relation, error) {
	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		MATCH (p)-[rel:RELATES_TO]->(rp:Person)
		WHERE p.deletedAt IS NULL AND rel.deletedAt IS NULL AND rp.deletedAt IS NULL
		OPTIONAL MATCH (t:RelationshipType {id: rel.typeId})
		WHERE t.deletedAt IS NULL
		OPTIONAL MATCH (t)-[:INVERSE_OF]->(ti:RelationshipType)
		WHERE ti.deletedAt IS NULL
		OPTIONAL MATCH (rp)-[:RELATES_TO_OWNER]->(rot:RelationshipType)
		WHERE rot.deletedAt IS NULL
		OPTIONAL MATCH (rp)-[:IN_GROUP]->(rg:Group)
		WHERE rg.deletedAt IS NULL
		RETURN rp.id as id, rp.name as name, rp.nickname as nickname, rp.surname as surname,
			t {.id, .name, .label, .color} as type,
			ti {.id, .name, .label, .color} as inverse_type,
			rot {.id, .name, .label, .color} as owner_type,
			collect(DISTINCT rg {.name, .color}) as groups,
			rel.createdAt as created_at
		ORDER BY created_at
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch direct relations: %w", err)
	}

	related := make(map[string]*egonet.Relation)
	var order []*egonet.Relation
	for result.Next(ctx) {
		record := result.Record()
		relatedID := getStringFromRecord(record, "id")

		rel := &egonet.Relation{
			RelatedPersonID: relatedID,
			Type:            typeWithInverse(record),
			RelatedPerson: &egonet.Person{
				ID:                  relatedID,
				Name:                getStringFromRecord(record, "name"),
				Nickname:            getStringFromRecord(record, "nickname"),
				Surname:             getStringFromRecord(record, "surname"),
				Groups:              mapsToEgonetGroups(getMapSliceFromRecord(record, "groups")),
				RelationshipToOwner: mapToType(getMapFromRecord(record, "owner_type")),
			},
		}
		if _, seen := related[relatedID]; !seen {
			related[relatedID] = rel
		}
		order = append(order, rel)
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return related, order, nil
}

// fetchSecondHop loads relationship records among the center's direct
// relations and appends them to the corresponding related person. Records
// pointing outside the already-discovered node set are kept: the assembler
// ignores them without adding nodes.
func (r *Repository) fetchSecondHop(ctx context.Context, session neo4j.SessionWithContext, userID, personID string, related map[string]*egonet.Relation) error {
	if len(related) == 0 {
		return nil
	}

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person {id: $personID})
		MATCH (p)-[rel1:RELATES_TO]->(rp:Person)-[rel2:RELATES_TO]->(sp:Person)
		WHERE p.deletedAt IS NULL AND rp.deletedAt IS NULL AND sp.deletedAt IS NULL
			AND rel1.deletedAt IS NULL AND rel2.deletedAt IS NULL
		OPTIONAL MATCH (t:RelationshipType {id: rel2.typeId})
		WHERE t.deletedAt IS NULL
		OPTIONAL MATCH (t)-[:INVERSE_OF]->(ti:RelationshipType)
		WHERE ti.deletedAt IS NULL
		RETURN DISTINCT rp.id as origin_id, sp.id as id,
			t {.id, .name, .label, .color} as type,
			ti {.id, .name, .label, .color} as inverse_type,
			rel2.createdAt as created_at
		ORDER BY created_at
	`, map[string]interface{}{"userID": userID, "personID": personID})
	if err != nil {
		return fmt.Errorf("failed to fetch second-hop relations: %w", err)
	}

	for result.Next(ctx) {
		record := result.Record()
		origin, ok := related[getStringFromRecord(record, "origin_id")]
		if !ok {
			continue
		}
		origin.RelatedPerson.Relationships = append(origin.RelatedPerson.Relationships, egonet.Relation{
			RelatedPersonID: getStringFromRecord(record, "id"),
			Type:            typeWithInverse(record),
		})
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to fetch records: %w", err)
	}
	return nil
}

// typeWithInverse assembles a reltype.Type from the "type" and
// "inverse_type" map projections of a record.
func typeWithInverse(record *neo4j.Record) *reltype.Type {
	t := mapToType(getMapFromRecord(record, "type"))
	if t == nil {
		return nil
	}
	t.Inverse = mapToType(getMapFromRecord(record, "inverse_type"))
	// Symmetric types reference themselves
	if t.Inverse != nil && t.Inverse.ID == t.ID {
		t.Inverse = t
	}
	return t
}

func mapsToEgonetGroups(maps []map[string]interface{}) []egonet.Group {
	groups := make([]egonet.Group, 0, len(maps))
	for _, m := range maps {
		groups = append(groups, egonet.Group{
			Name:  getStringFromMap(m, "name"),
			Color: getStringFromMap(m, "color"),
		})
	}
	return groups
}
