package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daddyparodz/nametag/backend/internal/auth"
	"github.com/daddyparodz/nametag/backend/internal/egonet"
	"github.com/daddyparodz/nametag/backend/internal/i18n"
)

// handleGraph assembles the ego network around one person. Default type
// labels are localised to the viewer's locale; customised labels pass
// through untouched.
func (s *Server) handleGraph(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		s.respondError(c, err, "get user for graph")
		return
	}

	center, err := s.store.FetchEgoNetwork(ctx, userID, c.Param("id"))
	if err != nil {
		s.respondError(c, err, "fetch ego network")
		return
	}

	translate := s.i18n.Translator(s.localeFor(c, user), i18n.RelationshipDefaultsNamespace)
	graph := egonet.Build(center, userID, translate)

	c.JSON(http.StatusOK, graph)
}

// handleExport returns the user's full data set as a JSON download,
// optionally restricted to people in the given groups
// (?groupIds=id1,id2).
func (s *Server) handleExport(c *gin.Context) {
	var groupIDs []string
	if raw := c.Query("groupIds"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				groupIDs = append(groupIDs, id)
			}
		}
	}

	export, err := s.store.ExportData(c.Request.Context(), auth.UserID(c), groupIDs)
	if err != nil {
		s.respondError(c, err, "export data")
		return
	}

	filename := fmt.Sprintf("nametag-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, export)
}
