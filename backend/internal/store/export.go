package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExportData assembles the full data export for a user. groupIDs optionally
// restricts people to members of those groups; groups and relationship types
// are always exported in full. The three top-level fetches run concurrently.
func (r *Repository) ExportData(ctx context.Context, userID string, groupIDs []string) (*Export, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	export := &Export{
		User:       user,
		ExportedAt: time.Now().UTC(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		people, err := r.exportPeople(gctx, userID, groupIDs)
		if err != nil {
			return err
		}
		export.People = people
		return nil
	})
	g.Go(func() error {
		groups, err := r.ListGroups(gctx, userID)
		if err != nil {
			return err
		}
		export.Groups = groups
		return nil
	})
	g.Go(func() error {
		types, err := r.ListRelationshipTypes(gctx, userID)
		if err != nil {
			return err
		}
		export.RelationshipTypes = types
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return export, nil
}

// exportPeople fetches every live person with their outgoing relationship
// records, the related person named inline.
func (r *Repository) exportPeople(ctx context.Context, userID string, groupIDs []string) ([]ExportPerson, error) {
	people, err := r.ListPeople(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		if id != "" {
			filter[id] = true
		}
	}

	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userID})-[:OWNS]->(p:Person)-[rel:RELATES_TO]->(rp:Person)
		WHERE p.deletedAt IS NULL AND rel.deletedAt IS NULL AND rp.deletedAt IS NULL
		OPTIONAL MATCH (t:RelationshipType {id: rel.typeId})
		WHERE t.deletedAt IS NULL
		RETURN p.id as person_id, rp.id as related_id,
			rp.name as related_name, rp.nickname as related_nickname, rp.surname as related_surname,
			t {.id, .name, .label, .color} as type,
			rel.notes as notes, rel.createdAt as created_at
		ORDER BY created_at
	`, map[string]interface{}{"userID": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch relationships for export: %w", err)
	}

	relationships := make(map[string][]ExportRelationship)
	for result.Next(ctx) {
		record := result.Record()
		personID := getStringFromRecord(record, "person_id")
		relationships[personID] = append(relationships[personID], ExportRelationship{
			RelatedPersonID: getStringFromRecord(record, "related_id"),
			RelatedPerson: composeName(
				getStringFromRecord(record, "related_name"),
				getStringFromRecord(record, "related_nickname"),
				getStringFromRecord(record, "related_surname"),
			),
			Type:  mapToStoreType(getMapFromRecord(record, "type")),
			Notes: getStringFromRecord(record, "notes"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	exported := make([]ExportPerson, 0, len(people))
	for _, p := range people {
		if len(filter) > 0 && !inAnyGroup(p.Groups, filter) {
			continue
		}
		rels := relationships[p.ID]
		if rels == nil {
			rels = []ExportRelationship{}
		}
		exported = append(exported, ExportPerson{Person: p, Relationships: rels})
	}
	return exported, nil
}

func inAnyGroup(groups []Group, filter map[string]bool) bool {
	for _, g := range groups {
		if filter[g.ID] {
			return true
		}
	}
	return false
}

func composeName(name, nickname, surname string) string {
	parts := make([]string, 0, 3)
	if name != "" {
		parts = append(parts, name)
	}
	if nickname != "" {
		parts = append(parts, `"`+nickname+`"`)
	}
	if surname != "" {
		parts = append(parts, surname)
	}
	return strings.Join(parts, " ")
}
