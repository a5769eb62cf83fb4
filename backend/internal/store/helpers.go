package store

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/daddyparodz/nametag/backend/internal/reltype"
)

// ============================================================================
// Record accessors
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}

func getTimeFromRecord(record *neo4j.Record, key string) (time.Time, bool) {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}, false
	}
	// Neo4j datetime values come back as time.Time
	if t, ok := val.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

func getMapFromRecord(record *neo4j.Record, key string) map[string]interface{} {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	if m, ok := val.(map[string]interface{}); ok {
		return m
	}
	return nil
}

func getMapSliceFromRecord(record *neo4j.Record, key string) []map[string]interface{} {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	slice, ok := val.([]interface{})
	if !ok {
		return nil
	}
	result := make([]map[string]interface{}, 0, len(slice))
	for _, v := range slice {
		if m, ok := v.(map[string]interface{}); ok {
			result = append(result, m)
		}
	}
	return result
}

func getStringFromMap(m map[string]interface{}, key string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// ============================================================================
// Map projections to models
// ============================================================================

// mapToType converts a RelationshipType map projection into the catalogue
// shape the graph assembler consumes. Returns nil for a nil projection.
func mapToType(m map[string]interface{}) *reltype.Type {
	if m == nil {
		return nil
	}
	return &reltype.Type{
		ID:    getStringFromMap(m, "id"),
		Name:  getStringFromMap(m, "name"),
		Label: getStringFromMap(m, "label"),
		Color: getStringFromMap(m, "color"),
	}
}

func mapToStoreType(m map[string]interface{}) *RelationshipType {
	if m == nil {
		return nil
	}
	return &RelationshipType{
		ID:        getStringFromMap(m, "id"),
		Name:      getStringFromMap(m, "name"),
		Label:     getStringFromMap(m, "label"),
		Color:     getStringFromMap(m, "color"),
		InverseID: getStringFromMap(m, "inverseId"),
	}
}

func mapToGroup(m map[string]interface{}) Group {
	return Group{
		ID:          getStringFromMap(m, "id"),
		Name:        getStringFromMap(m, "name"),
		Description: getStringFromMap(m, "description"),
		Color:       getStringFromMap(m, "color"),
	}
}

func mapsToGroups(maps []map[string]interface{}) []Group {
	groups := make([]Group, 0, len(maps))
	for _, m := range maps {
		groups = append(groups, mapToGroup(m))
	}
	return groups
}
