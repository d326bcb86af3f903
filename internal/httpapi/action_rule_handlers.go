package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// createActionRule handles POST /action_rule.
func (s *Server) createActionRule(c *gin.Context) {
	p := principal(c)
	var req createActionRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
		fail(c, err)
		return
	}
	ar, err := s.repo.CreateActionRule(c.Request.Context(), req.UserID, req.ActionID, req.Weekday, req.Time, req.Arguments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ar)
}

// bulkCreateActionRules handles POST /action_rules.
func (s *Server) bulkCreateActionRules(c *gin.Context) {
	p := principal(c)
	var reqs []createActionRuleRequest
	if !bindJSON(c, &reqs) {
		return
	}
	if _, err := auth.VerifyMultiPayloadsForUserWithoutDB(p.UserID, reqs); err != nil {
		fail(c, err)
		return
	}
	out := make([]any, 0, len(reqs))
	for _, req := range reqs {
		ar, err := s.repo.CreateActionRule(c.Request.Context(), req.UserID, req.ActionID, req.Weekday, req.Time, req.Arguments)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, ar)
	}
	c.JSON(http.StatusCreated, out)
}

// getOwnActionRule handles GET /action_rule/:id.
func (s *Server) getOwnActionRule(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.ActionRuleID(id), s.repo.ActionRuleOwner); err != nil {
		fail(c, err)
		return
	}
	ar, err := s.repo.GetActionRuleByID(c.Request.Context(), idtype.ActionRuleID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ar)
}

// listOwnActionRules handles GET /action_rule?since=<RFC3339>, the sync
// cursor per §4.4; an absent since returns the full set, tombstones
// included.
func (s *Server) listOwnActionRules(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	rules, err := s.repo.ListActionRulesByUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

// listActionRulesByProvider handles GET /action_rule/action_provider/:id:
// the caller's own rules for Actions belonging to one ActionProvider.
func (s *Server) listActionRulesByProvider(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rules, err := s.repo.ListActionRulesByUser(c.Request.Context(), p.UserID, time.Time{})
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]any, 0, len(rules))
	for _, r := range rules {
		a, err := s.repo.GetActionByID(c.Request.Context(), r.ActionID)
		if err != nil {
			continue
		}
		if int64(a.ActionProviderID) == id {
			out = append(out, r)
		}
	}
	c.JSON(http.StatusOK, out)
}

// updateActionRule handles PUT /action_rule: payload verification with DB.
func (s *Server) updateActionRule(c *gin.Context) {
	p := principal(c)
	var req updateActionRuleRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithDB(c.Request.Context(), p.UserID, req, s.repo.ActionRuleOwner, int64(req.ID)); err != nil {
		fail(c, err)
		return
	}
	ar, err := s.repo.GetActionRuleByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ar.Weekday = req.Weekday
	ar.Time = req.Time
	ar.Arguments = req.Arguments
	ar.Enabled = req.Enabled
	if err := s.repo.UpdateActionRule(c.Request.Context(), ar); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ar)
}

// deleteActionRule handles DELETE /action_rule/:id.
func (s *Server) deleteActionRule(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.ActionRuleID(id), s.repo.ActionRuleOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.DeleteActionRule(c.Request.Context(), idtype.ActionRuleID(id)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDeleteActionRules handles DELETE /action_rules: multi-verification
// over the body's id list.
func (s *Server) bulkDeleteActionRules(c *gin.Context) {
	p := principal(c)
	var req idList
	if !bindJSON(c, &req) {
		return
	}
	ids := make([]idtype.ActionRuleID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i] = idtype.ActionRuleID(raw)
	}
	if _, err := auth.VerifyMultiIDsForUser(c.Request.Context(), p.UserID, ids, s.repo.ActionRuleOwner); err != nil {
		fail(c, err)
		return
	}
	for _, id := range ids {
		if err := s.repo.DeleteActionRule(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
	}
	c.Status(http.StatusNoContent)
}
