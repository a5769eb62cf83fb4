// Package store is the Neo4j data-access layer for the relationship ledger.
// Every query is anchored on the owning user, so a record belonging to
// another account behaves exactly like a record that does not exist. Soft
// deletes set a deletedAt property; every read filters it.
package store

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

// NewRepository creates a new ledger repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Get(),
	}
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

func (r *Repository) readSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

func (r *Repository) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

// Errors

// ErrUserNotFound is returned when no live user matches the given id or email
type ErrUserNotFound struct {
	UserID string
}

func (e ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPersonNotFound is returned when a person is missing, soft-deleted, or
// owned by another user
type ErrPersonNotFound struct {
	PersonID string
}

func (e ErrPersonNotFound) Error() string {
	return fmt.Sprintf("person not found: %s", e.PersonID)
}

// ErrGroupNotFound is returned when a group is missing, soft-deleted, or
// owned by another user
type ErrGroupNotFound struct {
	GroupID string
}

func (e ErrGroupNotFound) Error() string {
	return fmt.Sprintf("group not found: %s", e.GroupID)
}

// ErrTypeNotFound is returned when a relationship type is missing,
// soft-deleted, or owned by another user
type ErrTypeNotFound struct {
	TypeID string
}

func (e ErrTypeNotFound) Error() string {
	return fmt.Sprintf("relationship type not found: %s", e.TypeID)
}

// ErrRelationshipNotFound is returned when a relationship record is missing
// or soft-deleted
type ErrRelationshipNotFound struct {
	RelationshipID string
}

func (e ErrRelationshipNotFound) Error() string {
	return fmt.Sprintf("relationship not found: %s", e.RelationshipID)
}

// ErrRelationshipExists is returned when a second directed record is created
// for an unordered pair of people. One record per pair keeps the graph
// assembly deterministic.
type ErrRelationshipExists struct {
	PersonID        string
	RelatedPersonID string
}

func (e ErrRelationshipExists) Error() string {
	return fmt.Sprintf("relationship already exists between %s and %s", e.PersonID, e.RelatedPersonID)
}
