package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// createAction handles POST /ap/action: a provider registers one of its
// capabilities (handler/action.rs `create_action`).
func (s *Server) createAction(c *gin.Context) {
	p := principal(c)
	var req createActionRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := s.repo.CreateAction(c.Request.Context(), req.Name, p.ActionProviderID, req.Description,
		time.Duration(req.CreateBefore)*time.Millisecond, time.Duration(req.DeleteAfter)*time.Millisecond)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// bulkCreateActions handles POST /ap/actions.
func (s *Server) bulkCreateActions(c *gin.Context) {
	p := principal(c)
	var reqs []createActionRequest
	if !bindJSON(c, &reqs) {
		return
	}
	out := make([]any, 0, len(reqs))
	for _, req := range reqs {
		a, err := s.repo.CreateAction(c.Request.Context(), req.Name, p.ActionProviderID, req.Description,
			time.Duration(req.CreateBefore)*time.Millisecond, time.Duration(req.DeleteAfter)*time.Millisecond)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, a)
	}
	c.JSON(http.StatusCreated, out)
}

// getOwnAction handles GET /ap/action/:id: id verification by owning
// ActionProvider.
func (s *Server) getOwnAction(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForActionProvider(c.Request.Context(), p.ActionProviderID, idtype.ActionID(id), s.repo.ActionOwnerActionProvider); err != nil {
		fail(c, err)
		return
	}
	a, err := s.repo.GetActionByID(c.Request.Context(), idtype.ActionID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// listOwnActions handles GET /ap/action: the caller provider's own catalogue.
func (s *Server) listOwnActions(c *gin.Context) {
	p := principal(c)
	actions, err := s.repo.ListActionsByProvider(c.Request.Context(), p.ActionProviderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

// listAllActions handles GET /action: every user browses the full catalogue
// across providers (handler/action.rs `get_actions`).
func (s *Server) listAllActions(c *gin.Context) {
	actions, err := s.repo.ListAllActions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}
