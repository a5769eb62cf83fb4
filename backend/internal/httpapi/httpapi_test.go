package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/egonet"
	"github.com/daddyparodz/nametag/backend/internal/i18n"
	"github.com/daddyparodz/nametag/backend/internal/reltype"
	"github.com/daddyparodz/nametag/backend/internal/store"
	"github.com/daddyparodz/nametag/backend/pkg/errors"
)

// fakeStore implements Store with overridable function fields. Methods
// without an override return zero values.
type fakeStore struct {
	createUser      func(ctx context.Context, email, name, passwordHash, locale string) (*store.User, error)
	getUser         func(ctx context.Context, userID string) (*store.User, error)
	getUserByEmail  func(ctx context.Context, email string) (*store.User, error)
	getPerson       func(ctx context.Context, userID, personID string) (*store.Person, error)
	createRel       func(ctx context.Context, userID string, rel store.Relationship) (*store.Relationship, error)
	fetchEgoNetwork func(ctx context.Context, userID, personID string) (*egonet.Person, error)
	exportData      func(ctx context.Context, userID string, groupIDs []string) (*store.Export, error)
}

func (f *fakeStore) CreateUser(ctx context.Context, email, name, passwordHash, locale string) (*store.User, error) {
	if f.createUser != nil {
		return f.createUser(ctx, email, name, passwordHash, locale)
	}
	return &store.User{ID: "u1", Email: email, Name: name, Locale: locale}, nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID string) (*store.User, error) {
	if f.getUser != nil {
		return f.getUser(ctx, userID)
	}
	return &store.User{ID: userID, Name: "Test"}, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	if f.getUserByEmail != nil {
		return f.getUserByEmail(ctx, email)
	}
	return nil, store.ErrUserNotFound{UserID: email}
}

func (f *fakeStore) UpdateUser(ctx context.Context, userID string, name, surname, locale, discordID string) (*store.User, error) {
	return &store.User{ID: userID, Name: name, Surname: surname, Locale: locale, DiscordID: discordID}, nil
}

func (f *fakeStore) CreatePerson(ctx context.Context, userID string, input store.PersonInput) (*store.Person, error) {
	return &store.Person{ID: "p1", Name: input.Name, Nickname: input.Nickname, Surname: input.Surname}, nil
}

func (f *fakeStore) GetPerson(ctx context.Context, userID, personID string) (*store.Person, error) {
	if f.getPerson != nil {
		return f.getPerson(ctx, userID, personID)
	}
	return &store.Person{ID: personID}, nil
}

func (f *fakeStore) ListPeople(ctx context.Context, userID string) ([]store.Person, error) {
	return nil, nil
}

func (f *fakeStore) UpdatePerson(ctx context.Context, userID, personID string, input store.PersonInput) (*store.Person, error) {
	return &store.Person{ID: personID, Name: input.Name}, nil
}

func (f *fakeStore) DeletePerson(ctx context.Context, userID, personID string) error { return nil }

func (f *fakeStore) CreateGroup(ctx context.Context, userID, name, description, color string) (*store.Group, error) {
	return &store.Group{ID: "g1", Name: name, Description: description, Color: color}, nil
}

func (f *fakeStore) ListGroups(ctx context.Context, userID string) ([]store.Group, error) {
	return nil, nil
}

func (f *fakeStore) UpdateGroup(ctx context.Context, userID, groupID, name, description, color string) (*store.Group, error) {
	return &store.Group{ID: groupID, Name: name}, nil
}

func (f *fakeStore) DeleteGroup(ctx context.Context, userID, groupID string) error { return nil }

func (f *fakeStore) CreateRelationshipType(ctx context.Context, userID, label, color, inverseID string, symmetric bool) (*store.RelationshipType, error) {
	return &store.RelationshipType{ID: "t1", Label: label, Color: color}, nil
}

func (f *fakeStore) GetRelationshipType(ctx context.Context, userID, typeID string) (*store.RelationshipType, error) {
	return &store.RelationshipType{ID: typeID}, nil
}

func (f *fakeStore) ListRelationshipTypes(ctx context.Context, userID string) ([]store.RelationshipType, error) {
	return nil, nil
}

func (f *fakeStore) UpdateRelationshipType(ctx context.Context, userID, typeID, label, color, inverseID string) (*store.RelationshipType, error) {
	return &store.RelationshipType{ID: typeID, Label: label}, nil
}

func (f *fakeStore) DeleteRelationshipType(ctx context.Context, userID, typeID string) error {
	return nil
}

func (f *fakeStore) CreateRelationship(ctx context.Context, userID string, rel store.Relationship) (*store.Relationship, error) {
	if f.createRel != nil {
		return f.createRel(ctx, userID, rel)
	}
	rel.ID = "r1"
	return &rel, nil
}

func (f *fakeStore) UpdateRelationship(ctx context.Context, userID, relationshipID, typeID, notes string) (*store.Relationship, error) {
	return &store.Relationship{ID: relationshipID, TypeID: typeID, Notes: notes}, nil
}

func (f *fakeStore) DeleteRelationship(ctx context.Context, userID, relationshipID string) error {
	return nil
}

func (f *fakeStore) CreateImportantDate(ctx context.Context, userID string, date store.ImportantDate) (*store.ImportantDate, error) {
	date.ID = "d1"
	return &date, nil
}

func (f *fakeStore) ListImportantDates(ctx context.Context, userID, personID string) ([]store.ImportantDate, error) {
	return nil, nil
}

func (f *fakeStore) DeleteImportantDate(ctx context.Context, userID, dateID string) error {
	return nil
}

func (f *fakeStore) FetchEgoNetwork(ctx context.Context, userID, personID string) (*egonet.Person, error) {
	if f.fetchEgoNetwork != nil {
		return f.fetchEgoNetwork(ctx, userID, personID)
	}
	return &egonet.Person{ID: personID}, nil
}

func (f *fakeStore) ExportData(ctx context.Context, userID string, groupIDs []string) (*store.Export, error) {
	if f.exportData != nil {
		return f.exportData(ctx, userID, groupIDs)
	}
	return &store.Export{ExportedAt: time.Now()}, nil
}

func newTestRouter(t *testing.T, fs *fakeStore) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle, err := i18n.Load()
	require.NoError(t, err)

	authMgr := auth.NewManager("test-secret", time.Hour)
	server := NewServer(fs, authMgr, bundle)

	router := gin.New()
	server.Register(router.Group("/api"))
	return router, authMgr
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	router, _ := newTestRouter(t, &fakeStore{})

	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"email":    "mario@example.com",
		"password": "hunter2hunter2",
		"name":     "Mario",
		"locale":   "it-IT",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Token string     `json:"token"`
		User  store.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "mario@example.com", resp.User.Email)
	assert.Equal(t, "it-IT", resp.User.Locale)
}

func TestRegister_ValidationAndConflict(t *testing.T) {
	fs := &fakeStore{
		createUser: func(ctx context.Context, email, name, passwordHash, locale string) (*store.User, error) {
			return nil, errors.NewEmailTaken(email)
		},
	}
	router, _ := newTestRouter(t, fs)

	// Short password fails binding validation.
	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"email":    "mario@example.com",
		"password": "short",
		"name":     "Mario",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate email maps to 409.
	w = doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"email":    "mario@example.com",
		"password": "hunter2hunter2",
		"name":     "Mario",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	fs := &fakeStore{
		getUserByEmail: func(ctx context.Context, email string) (*store.User, error) {
			if email != "mario@example.com" {
				return nil, store.ErrUserNotFound{UserID: email}
			}
			return &store.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	router, _ := newTestRouter(t, fs)

	w := doJSON(router, "POST", "/api/auth/login", "", gin.H{"email": "mario@example.com", "password": "correct horse"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "POST", "/api/auth/login", "", gin.H{"email": "mario@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = doJSON(router, "POST", "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "correct horse"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t, &fakeStore{})

	w := doJSON(router, "GET", "/api/people", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "GET", "/api/user", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPerson_NotFound(t *testing.T) {
	fs := &fakeStore{
		getPerson: func(ctx context.Context, userID, personID string) (*store.Person, error) {
			return nil, store.ErrPersonNotFound{PersonID: personID}
		},
	}
	router, authMgr := newTestRouter(t, fs)
	token, err := authMgr.IssueToken("u1")
	require.NoError(t, err)

	w := doJSON(router, "GET", "/api/people/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRelationship(t *testing.T) {
	fs := &fakeStore{
		createRel: func(ctx context.Context, userID string, rel store.Relationship) (*store.Relationship, error) {
			return nil, store.ErrRelationshipExists{PersonID: rel.PersonID, RelatedPersonID: rel.RelatedPersonID}
		},
	}
	router, authMgr := newTestRouter(t, fs)
	token, err := authMgr.IssueToken("u1")
	require.NoError(t, err)

	// Self-relation is rejected before touching the store.
	w := doJSON(router, "POST", "/api/relationships", token, gin.H{"personId": "p1", "relatedPersonId": "p1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An existing pair maps to 409.
	w = doJSON(router, "POST", "/api/relationships", token, gin.H{"personId": "p1", "relatedPersonId": "p2"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGraph_LocalizesDefaultLabels(t *testing.T) {
	parent := &reltype.Type{ID: "t1", Name: "PARENT", Label: "Parent", Color: "#EF4444"}
	child := &reltype.Type{ID: "t2", Name: "CHILD", Label: "Child", Color: "#F97316"}
	parent.Inverse = child

	fs := &fakeStore{
		getUser: func(ctx context.Context, userID string) (*store.User, error) {
			return &store.User{ID: userID, Locale: "it-IT"}, nil
		},
		fetchEgoNetwork: func(ctx context.Context, userID, personID string) (*egonet.Person, error) {
			return &egonet.Person{
				ID:   personID,
				Name: "Anna",
				Relationships: []egonet.Relation{
					{
						RelatedPersonID: "p2",
						Type:            parent,
						RelatedPerson:   &egonet.Person{ID: "p2", Name: "Bruno"},
					},
				},
			}, nil
		},
	}
	router, authMgr := newTestRouter(t, fs)
	token, err := authMgr.IssueToken("u1")
	require.NoError(t, err)

	w := doJSON(router, "GET", "/api/people/p1/graph", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var graph egonet.Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &graph))

	require.Len(t, graph.Edges, 1)
	assert.Equal(t, "Genitore", graph.Edges[0].Type, "pristine default label is localised to the user's locale")

	ids := make([]string, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Contains(t, ids, "user-u1", "viewer node is always present")
}

func TestExport_GroupFilter(t *testing.T) {
	var gotGroupIDs []string
	fs := &fakeStore{
		exportData: func(ctx context.Context, userID string, groupIDs []string) (*store.Export, error) {
			gotGroupIDs = groupIDs
			return &store.Export{ExportedAt: time.Now()}, nil
		},
	}
	router, authMgr := newTestRouter(t, fs)
	token, err := authMgr.IssueToken("u1")
	require.NoError(t, err)

	w := doJSON(router, "GET", "/api/user/export?groupIds=g1,%20g2,", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"g1", "g2"}, gotGroupIDs)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
}
