package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/pkg/errors"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name" binding:"required"`
		Locale   string `json:"locale"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locale := s.i18n.Match(req.Locale)
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), req.Email, req.Name, hash, locale)
	if err != nil {
		s.respondError(c, err, "register")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		s.respondError(c, errors.ErrInvalidCredentials, "login")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(c, errors.ErrInvalidCredentials, "login")
		return
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.store.GetUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		s.respondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Surname   string `json:"surname"`
		Locale    string `json:"locale"`
		DiscordID string `json:"discordId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Locale != "" && !s.i18n.Has(req.Locale) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported locale"})
		return
	}

	user, err := s.store.UpdateUser(c.Request.Context(), auth.UserID(c), req.Name, req.Surname, req.Locale, req.DiscordID)
	if err != nil {
		s.respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}
