package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/store"
)

func (s *Server) handleCreateGroup(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := s.store.CreateGroup(c.Request.Context(), auth.UserID(c), req.Name, req.Description, req.Color)
	if err != nil {
		s.respondError(c, err, "create group")
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (s *Server) handleListGroups(c *gin.Context) {
	groups, err := s.store.ListGroups(c.Request.Context(), auth.UserID(c))
	if err != nil {
		s.respondError(c, err, "list groups")
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

func (s *Server) handleUpdateGroup(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := s.store.UpdateGroup(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Name, req.Description, req.Color)
	if err != nil {
		s.respondError(c, err, "update group")
		return
	}
	c.JSON(http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(c *gin.Context) {
	if err := s.store.DeleteGroup(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "delete group")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleCreateType(c *gin.Context) {
	var req struct {
		Label     string `json:"label" binding:"required"`
		Color     string `json:"color"`
		InverseID string `json:"inverseId"`
		Symmetric bool   `json:"symmetric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Symmetric && req.InverseID != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A symmetric type cannot have a separate inverse"})
		return
	}

	relType, err := s.store.CreateRelationshipType(c.Request.Context(), auth.UserID(c), req.Label, req.Color, req.InverseID, req.Symmetric)
	if err != nil {
		s.respondError(c, err, "create relationship type")
		return
	}
	c.JSON(http.StatusCreated, relType)
}

func (s *Server) handleListTypes(c *gin.Context) {
	types, err := s.store.ListRelationshipTypes(c.Request.Context(), auth.UserID(c))
	if err != nil {
		s.respondError(c, err, "list relationship types")
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationshipTypes": types})
}

func (s *Server) handleGetType(c *gin.Context) {
	relType, err := s.store.GetRelationshipType(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "get relationship type")
		return
	}
	c.JSON(http.StatusOK, relType)
}

func (s *Server) handleUpdateType(c *gin.Context) {
	var req struct {
		Label     string `json:"label" binding:"required"`
		Color     string `json:"color"`
		InverseID string `json:"inverseId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relType, err := s.store.UpdateRelationshipType(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Label, req.Color, req.InverseID)
	if err != nil {
		s.respondError(c, err, "update relationship type")
		return
	}
	c.JSON(http.StatusOK, relType)
}

func (s *Server) handleDeleteType(c *gin.Context) {
	if err := s.store.DeleteRelationshipType(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "delete relationship type")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleCreateRelationship(c *gin.Context) {
	var req struct {
		PersonID        string `json:"personId" binding:"required"`
		RelatedPersonID string `json:"relatedPersonId" binding:"required"`
		TypeID          string `json:"typeId"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PersonID == req.RelatedPersonID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A person cannot relate to themselves"})
		return
	}

	rel, err := s.store.CreateRelationship(c.Request.Context(), auth.UserID(c), store.Relationship{
		PersonID:        req.PersonID,
		RelatedPersonID: req.RelatedPersonID,
		TypeID:          req.TypeID,
		Notes:           req.Notes,
	})
	if err != nil {
		s.respondError(c, err, "create relationship")
		return
	}
	c.JSON(http.StatusCreated, rel)
}

func (s *Server) handleUpdateRelationship(c *gin.Context) {
	var req struct {
		TypeID string `json:"typeId"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rel, err := s.store.UpdateRelationship(c.Request.Context(), auth.UserID(c), c.Param("id"), req.TypeID, req.Notes)
	if err != nil {
		s.respondError(c, err, "update relationship")
		return
	}
	c.JSON(http.StatusOK, rel)
}

func (s *Server) handleDeleteRelationship(c *gin.Context) {
	if err := s.store.DeleteRelationship(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "delete relationship")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
