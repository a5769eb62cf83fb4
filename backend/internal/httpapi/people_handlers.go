package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/store"
)

type personRequest struct {
	Name                string   `json:"name" binding:"required"`
	Nickname            string   `json:"nickname"`
	Surname             string   `json:"surname"`
	Notes               string   `json:"notes"`
	LastContact         string   `json:"lastContact"` // RFC 3339, empty to clear
	GroupIDs            []string `json:"groupIds"`
	RelationshipToOwner string   `json:"relationshipToUser"` // type id, empty to clear
}

func (p personRequest) toInput() (store.PersonInput, error) {
	input := store.PersonInput{
		Name:                p.Name,
		Nickname:            p.Nickname,
		Surname:             p.Surname,
		Notes:               p.Notes,
		GroupIDs:            p.GroupIDs,
		RelationshipToOwner: p.RelationshipToOwner,
	}
	if p.LastContact != "" {
		t, err := time.Parse(time.RFC3339, p.LastContact)
		if err != nil {
			return input, err
		}
		input.LastContact = timePtr(t)
	}
	return input, nil
}

func (s *Server) handleCreatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lastContact must be an RFC 3339 timestamp"})
		return
	}

	person, err := s.store.CreatePerson(c.Request.Context(), auth.UserID(c), input)
	if err != nil {
		s.respondError(c, err, "create person")
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (s *Server) handleListPeople(c *gin.Context) {
	people, err := s.store.ListPeople(c.Request.Context(), auth.UserID(c))
	if err != nil {
		s.respondError(c, err, "list people")
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people})
}

func (s *Server) handleGetPerson(c *gin.Context) {
	person, err := s.store.GetPerson(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "get person")
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) handleUpdatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lastContact must be an RFC 3339 timestamp"})
		return
	}

	person, err := s.store.UpdatePerson(c.Request.Context(), auth.UserID(c), c.Param("id"), input)
	if err != nil {
		s.respondError(c, err, "update person")
		return
	}
	c.JSON(http.StatusOK, person)
}

func (s *Server) handleDeletePerson(c *gin.Context) {
	if err := s.store.DeletePerson(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "delete person")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleCreateDate(c *gin.Context) {
	var req struct {
		Title           string `json:"title" binding:"required"`
		Date            string `json:"date" binding:"required"`
		ReminderEnabled bool   `json:"reminderEnabled"`
		ReminderType    string `json:"reminderType"`
		Interval        int    `json:"interval"`
		IntervalUnit    string `json:"intervalUnit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	when, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be an RFC 3339 timestamp"})
		return
	}

	date, err := s.store.CreateImportantDate(c.Request.Context(), auth.UserID(c), store.ImportantDate{
		PersonID:        c.Param("id"),
		Title:           req.Title,
		Date:            when,
		ReminderEnabled: req.ReminderEnabled,
		ReminderType:    req.ReminderType,
		Interval:        req.Interval,
		IntervalUnit:    req.IntervalUnit,
	})
	if err != nil {
		s.respondError(c, err, "create important date")
		return
	}
	c.JSON(http.StatusCreated, date)
}

func (s *Server) handleListDates(c *gin.Context) {
	dates, err := s.store.ListImportantDates(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err, "list important dates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (s *Server) handleDeleteDate(c *gin.Context) {
	if err := s.store.DeleteImportantDate(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		s.respondError(c, err, "delete important date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
