// Package httpapi wires the relationship ledger behind a JSON HTTP surface:
// account endpoints, CRUD for people, groups, relationship types,
// relationships and important dates, the ego-network graph endpoint, and the
// data export.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/egonet"
	"github.com/daddyparodz/nametag/backend/internal/i18n"
	"github.com/daddyparodz/nametag/backend/internal/store"
	"github.com/daddyparodz/nametag/backend/pkg/errors"
	"github.com/daddyparodz/nametag/backend/pkg/logger"
)

// Store is the slice of the repository the HTTP layer uses.
type Store interface {
	CreateUser(ctx context.Context, email, name, passwordHash, locale string) (*store.User, error)
	GetUser(ctx context.Context, userID string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	UpdateUser(ctx context.Context, userID string, name, surname, locale, discordID string) (*store.User, error)

	CreatePerson(ctx context.Context, userID string, input store.PersonInput) (*store.Person, error)
	GetPerson(ctx context.Context, userID, personID string) (*store.Person, error)
	ListPeople(ctx context.Context, userID string) ([]store.Person, error)
	UpdatePerson(ctx context.Context, userID, personID string, input store.PersonInput) (*store.Person, error)
	DeletePerson(ctx context.Context, userID, personID string) error

	CreateGroup(ctx context.Context, userID, name, description, color string) (*store.Group, error)
	ListGroups(ctx context.Context, userID string) ([]store.Group, error)
	UpdateGroup(ctx context.Context, userID, groupID, name, description, color string) (*store.Group, error)
	DeleteGroup(ctx context.Context, userID, groupID string) error

	CreateRelationshipType(ctx context.Context, userID, label, color, inverseID string, symmetric bool) (*store.RelationshipType, error)
	GetRelationshipType(ctx context.Context, userID, typeID string) (*store.RelationshipType, error)
	ListRelationshipTypes(ctx context.Context, userID string) ([]store.RelationshipType, error)
	UpdateRelationshipType(ctx context.Context, userID, typeID, label, color, inverseID string) (*store.RelationshipType, error)
	DeleteRelationshipType(ctx context.Context, userID, typeID string) error

	CreateRelationship(ctx context.Context, userID string, rel store.Relationship) (*store.Relationship, error)
	UpdateRelationship(ctx context.Context, userID, relationshipID, typeID, notes string) (*store.Relationship, error)
	DeleteRelationship(ctx context.Context, userID, relationshipID string) error

	CreateImportantDate(ctx context.Context, userID string, date store.ImportantDate) (*store.ImportantDate, error)
	ListImportantDates(ctx context.Context, userID, personID string) ([]store.ImportantDate, error)
	DeleteImportantDate(ctx context.Context, userID, dateID string) error

	FetchEgoNetwork(ctx context.Context, userID, personID string) (*egonet.Person, error)
	ExportData(ctx context.Context, userID string, groupIDs []string) (*store.Export, error)
}

// Server holds the handler dependencies.
type Server struct {
	store  Store
	auth   *auth.Manager
	i18n   *i18n.Bundle
	logger *zap.Logger
}

// NewServer creates the HTTP handler set.
func NewServer(st Store, authMgr *auth.Manager, bundle *i18n.Bundle) *Server {
	return &Server{
		store:  st,
		auth:   authMgr,
		i18n:   bundle,
		logger: logger.Get(),
	}
}

// Register mounts all routes under the given group. Everything except
// registration and login sits behind bearer auth.
func (s *Server) Register(api *gin.RouterGroup) {
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)

	protected := api.Group("")
	protected.Use(s.auth.RequireAuth())
	{
		protected.GET("/user", s.handleGetUser)
		protected.PUT("/user", s.handleUpdateUser)
		protected.GET("/user/export", s.handleExport)

		protected.POST("/people", s.handleCreatePerson)
		protected.GET("/people", s.handleListPeople)
		protected.GET("/people/:id", s.handleGetPerson)
		protected.PUT("/people/:id", s.handleUpdatePerson)
		protected.DELETE("/people/:id", s.handleDeletePerson)
		protected.GET("/people/:id/graph", s.handleGraph)
		protected.POST("/people/:id/dates", s.handleCreateDate)
		protected.GET("/people/:id/dates", s.handleListDates)
		protected.DELETE("/dates/:id", s.handleDeleteDate)

		protected.POST("/groups", s.handleCreateGroup)
		protected.GET("/groups", s.handleListGroups)
		protected.PUT("/groups/:id", s.handleUpdateGroup)
		protected.DELETE("/groups/:id", s.handleDeleteGroup)

		protected.POST("/relationship-types", s.handleCreateType)
		protected.GET("/relationship-types", s.handleListTypes)
		protected.GET("/relationship-types/:id", s.handleGetType)
		protected.PUT("/relationship-types/:id", s.handleUpdateType)
		protected.DELETE("/relationship-types/:id", s.handleDeleteType)

		protected.POST("/relationships", s.handleCreateRelationship)
		protected.PUT("/relationships/:id", s.handleUpdateRelationship)
		protected.DELETE("/relationships/:id", s.handleDeleteRelationship)
	}
}

// respondError maps repository and auth errors onto HTTP statuses. Anything
// not recognised is a 500 and gets logged.
func (s *Server) respondError(c *gin.Context, err error, action string) {
	switch err.(type) {
	case store.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	case store.ErrPersonNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	case store.ErrGroupNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	case store.ErrTypeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Relationship type not found"})
		return
	case store.ErrRelationshipNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Relationship not found"})
		return
	case store.ErrRelationshipExists:
		c.JSON(http.StatusConflict, gin.H{"error": "A relationship between these people already exists"})
		return
	}
	if _, ok := err.(*errors.ErrEmailTaken); ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}
	// Credential failures and other auth-typed errors, wrapped or not.
	if errors.IsErrorType(err, errors.ErrorTypeAuth) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	s.logger.Error("Request failed",
		zap.String("action", action),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// localeFor picks the locale for a request: the user's stored preference
// when it is a supported locale, otherwise the best Accept-Language match.
func (s *Server) localeFor(c *gin.Context, user *store.User) string {
	if user != nil && s.i18n.Has(user.Locale) {
		return user.Locale
	}
	return s.i18n.Match(c.GetHeader("Accept-Language"))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
