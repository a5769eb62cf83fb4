// The seed command prepares a database: schema constraints and indexes,
// plus an optional demo account with a small ledger to explore.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/store"
	"github.com/daddyparodz/nametag/backend/pkg/config"
	"github.com/daddyparodz/nametag/backend/pkg/errors"
	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

func main() {
	demo := flag.Bool("demo", false, "Create a demo account with sample data")
	demoEmail := flag.String("demo-email", "demo@example.com", "Email for the demo account")
	demoPassword := flag.String("demo-password", "demo-password", "Password for the demo account")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity",
			zap.Error(errors.NewStoreConnectionFailed(cfg.Neo4jURI, err)))
	}

	// Create constraints
	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	// Create indexes for better performance
	log.Info("Creating indexes...")
	if err := createIndexes(ctx, driver); err != nil {
		log.Warn("Failed to create some indexes (may already exist)", zap.Error(err))
	}

	if !*demo {
		log.Info("Seeding complete")
		return
	}

	repo := store.NewRepository(driver)
	if err := seedDemoAccount(ctx, repo, *demoEmail, *demoPassword); err != nil {
		if _, ok := err.(*errors.ErrEmailTaken); ok {
			log.Info("Demo account already exists, skipping", zap.String("email", *demoEmail))
			os.Exit(0)
		}
		log.Fatal("Failed to seed demo account", zap.Error(err))
	}

	log.Info("Demo account created", zap.String("email", *demoEmail))
}

// createConstraints creates uniqueness constraints for the node keys
func createConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
		"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
		"CREATE CONSTRAINT person_id_unique IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT group_id_unique IF NOT EXISTS FOR (g:Group) REQUIRE g.id IS UNIQUE",
		"CREATE CONSTRAINT type_id_unique IF NOT EXISTS FOR (t:RelationshipType) REQUIRE t.id IS UNIQUE",
		"CREATE CONSTRAINT date_id_unique IF NOT EXISTS FOR (d:ImportantDate) REQUIRE d.id IS UNIQUE",
	}

	for _, constraint := range constraints {
		_, err := session.Run(ctx, constraint, nil)
		if err != nil {
			// Log but don't fail - constraints may already exist
			continue
		}
	}

	return nil
}

// createIndexes creates Neo4j indexes for better query performance
func createIndexes(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	indexes := []string{
		"CREATE INDEX person_name IF NOT EXISTS FOR (p:Person) ON (p.name)",
		"CREATE INDEX person_deleted IF NOT EXISTS FOR (p:Person) ON (p.deletedAt)",
		"CREATE INDEX group_deleted IF NOT EXISTS FOR (g:Group) ON (g.deletedAt)",
		"CREATE INDEX type_name IF NOT EXISTS FOR (t:RelationshipType) ON (t.name)",
		"CREATE INDEX date_reminder IF NOT EXISTS FOR (d:ImportantDate) ON (d.reminderEnabled)",
	}

	for _, index := range indexes {
		_, err := session.Run(ctx, index, nil)
		if err != nil {
			continue
		}
	}

	return nil
}

// seedDemoAccount creates a user with a few groups, people and
// relationships so the graph endpoint has something to show.
func seedDemoAccount(ctx context.Context, repo *store.Repository, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := repo.CreateUser(ctx, email, "Demo", hash, "en")
	if err != nil {
		return err
	}

	family, err := repo.CreateGroup(ctx, user.ID, "Family", "", "#EF4444")
	if err != nil {
		return err
	}
	friends, err := repo.CreateGroup(ctx, user.ID, "Friends", "", "#22C55E")
	if err != nil {
		return err
	}

	types, err := repo.ListRelationshipTypes(ctx, user.ID)
	if err != nil {
		return err
	}
	typeByName := make(map[string]string, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.ID
	}

	people := []struct {
		input store.PersonInput
		id    *string
	}{
		{input: store.PersonInput{Name: "Anna", Surname: "Bianchi", GroupIDs: []string{family.ID}, RelationshipToOwner: typeByName["PARENT"]}},
		{input: store.PersonInput{Name: "Bruno", Nickname: "Bru", Surname: "Bianchi", GroupIDs: []string{family.ID}, RelationshipToOwner: typeByName["SIBLING"]}},
		{input: store.PersonInput{Name: "Carla", Surname: "Verdi", GroupIDs: []string{friends.ID}, RelationshipToOwner: typeByName["FRIEND"]}},
	}

	ids := make([]string, 0, len(people))
	for _, p := range people {
		created, err := repo.CreatePerson(ctx, user.ID, p.input)
		if err != nil {
			return err
		}
		ids = append(ids, created.ID)
	}

	relationships := []store.Relationship{
		{PersonID: ids[0], RelatedPersonID: ids[1], TypeID: typeByName["PARENT"]},
		{PersonID: ids[1], RelatedPersonID: ids[2], TypeID: typeByName["FRIEND"]},
	}
	for _, rel := range relationships {
		if _, err := repo.CreateRelationship(ctx, user.ID, rel); err != nil {
			return err
		}
	}

	return nil
}
