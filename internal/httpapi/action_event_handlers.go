package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/domain"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// createActionEvent handles POST /action_event (AuthUser or AuthUserAP).
func (s *Server) createActionEvent(c *gin.Context) {
	p := principal(c)
	var req createActionEventRequest
	if !bindJSON(c, &req) {
		return
	}
	callerID := req.UserID
	if p.Kind == auth.KindUser {
		if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
			fail(c, err)
			return
		}
	} else {
		callerID = p.UserID
	}
	e, err := s.repo.CreateActionEvent(c.Request.Context(), callerID, req.ActionID, req.DateTime, req.Arguments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// bulkCreateActionEventsUser handles POST /action_events (user/UserAP bulk
// create, as opposed to the scheduler's /adm/action_events bulk insert).
func (s *Server) bulkCreateActionEventsUser(c *gin.Context) {
	p := principal(c)
	var reqs []createActionEventRequest
	if !bindJSON(c, &reqs) {
		return
	}
	if p.Kind == auth.KindUser {
		if _, err := auth.VerifyMultiPayloadsForUserWithoutDB(p.UserID, reqs); err != nil {
			fail(c, err)
			return
		}
	}
	out := make([]any, 0, len(reqs))
	for _, req := range reqs {
		callerID := req.UserID
		if p.Kind != auth.KindUser {
			callerID = p.UserID
		}
		e, err := s.repo.CreateActionEvent(c.Request.Context(), callerID, req.ActionID, req.DateTime, req.Arguments)
		if err != nil {
			fail(c, err)
			return
		}
		out = append(out, e)
	}
	c.JSON(http.StatusCreated, out)
}

// bulkCreateActionEvents handles POST /adm/action_events: the scheduler's
// Phase A write, idempotent via the partial unique index (§4.2, §8).
func (s *Server) bulkCreateActionEvents(c *gin.Context) {
	var events []domain.ActionEvent
	if !bindJSON(c, &events) {
		return
	}
	for i := range events {
		if events[i].ID == 0 {
			events[i].ID = idtype.New[idtype.ActionEventID]()
		}
		events[i].Enabled = true
	}
	if err := s.repo.BulkInsertActionEvents(c.Request.Context(), events); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// getOwnActionEvent handles GET /action_event/:id.
func (s *Server) getOwnActionEvent(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.ActionEventID(id), s.repo.ActionEventOwner); err != nil {
		fail(c, err)
		return
	}
	e, err := s.repo.GetActionEventByID(c.Request.Context(), idtype.ActionEventID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// listOwnActionEvents handles GET /action_event?since=<RFC3339>, the sync
// cursor per §4.4; an absent since returns the full set, tombstones
// included.
func (s *Server) listOwnActionEvents(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	events, err := s.repo.ListActionEventsByUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// listActionEventsByProvider handles GET /action_event/action_provider/:id.
func (s *Server) listActionEventsByProvider(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	events, err := s.repo.ListActionEventsByUserAndProvider(c.Request.Context(), p.UserID, idtype.ActionProviderID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// updateActionEvent handles PUT /action_event.
func (s *Server) updateActionEvent(c *gin.Context) {
	p := principal(c)
	var req updateActionEventRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithDB(c.Request.Context(), p.UserID, req, s.repo.ActionEventOwner, int64(req.ID)); err != nil {
		fail(c, err)
		return
	}
	e, err := s.repo.GetActionEventByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	e.DateTime = req.DateTime
	e.Arguments = req.Arguments
	e.Enabled = req.Enabled
	if err := s.repo.UpdateActionEvent(c.Request.Context(), e); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// deleteActionEvent handles DELETE /action_event/:id (user).
func (s *Server) deleteActionEvent(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.ActionEventID(id), s.repo.ActionEventOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), []idtype.ActionEventID{idtype.ActionEventID(id)}); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDeleteActionEvents handles DELETE /action_events (user).
func (s *Server) bulkDeleteActionEvents(c *gin.Context) {
	p := principal(c)
	var req idList
	if !bindJSON(c, &req) {
		return
	}
	ids := make([]idtype.ActionEventID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i] = idtype.ActionEventID(raw)
	}
	if _, err := auth.VerifyMultiIDsForUser(c.Request.Context(), p.UserID, ids, s.repo.ActionEventOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), ids); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteActionEventAP handles DELETE /ap/action_event/:id: id verification
// by owning ActionProvider (through the event's Action).
func (s *Server) deleteActionEventAP(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := s.repo.GetActionEventByID(c.Request.Context(), idtype.ActionEventID(id))
	if err != nil {
		fail(c, err)
		return
	}
	if _, err := auth.VerifyIDForActionProvider(c.Request.Context(), p.ActionProviderID, int64(e.ActionID), s.repo.ActionOwnerActionProvider); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), []idtype.ActionEventID{idtype.ActionEventID(id)}); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDeleteActionEventsAP handles DELETE /ap/action_events.
func (s *Server) bulkDeleteActionEventsAP(c *gin.Context) {
	p := principal(c)
	var req idList
	if !bindJSON(c, &req) {
		return
	}
	ids := make([]idtype.ActionEventID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		e, err := s.repo.GetActionEventByID(c.Request.Context(), idtype.ActionEventID(raw))
		if err != nil {
			fail(c, err)
			return
		}
		if _, err := auth.VerifyIDForActionProvider(c.Request.Context(), p.ActionProviderID, int64(e.ActionID), s.repo.ActionOwnerActionProvider); err != nil {
			fail(c, err)
			return
		}
		ids = append(ids, idtype.ActionEventID(raw))
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), ids); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteActionEventAdmin handles DELETE /adm/action_event/:id: unchecked.
func (s *Server) deleteActionEventAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), []idtype.ActionEventID{idtype.ActionEventID(id)}); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bulkDeleteActionEventsAdmin handles DELETE /adm/action_events: the
// scheduler's Phase B write (§4.2).
func (s *Server) bulkDeleteActionEventsAdmin(c *gin.Context) {
	var req idList
	if !bindJSON(c, &req) {
		return
	}
	ids := make([]idtype.ActionEventID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i] = idtype.ActionEventID(raw)
	}
	if err := s.repo.SoftDeleteActionEvents(c.Request.Context(), ids); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// disableActionEvents handles DELETE /ap/disable_action_events: the
// provider runtime's `disable_events` primitive (§4.3 step 4), called with
// the union of successfully processed and conclusively failed event ids
// once an invocation's per-event work has all joined. Unchecked by owning
// provider, matching the original's trust of AuthAP for its own batch.
func (s *Server) disableActionEvents(c *gin.Context) {
	var req idList
	if !bindJSON(c, &req) {
		return
	}
	ids := make([]idtype.ActionEventID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i] = idtype.ActionEventID(raw)
	}
	if err := s.repo.DisableActionEvents(c.Request.Context(), ids); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listExecutableActionEvents handles GET /ap/executable_action_event: the
// provider's pending work, default window now-24h .. now+24h.
func (s *Server) listExecutableActionEvents(c *gin.Context) {
	p := principal(c)
	now := time.Now().UTC()
	events, err := s.repo.ListExecutableActionEvents(c.Request.Context(), p.ActionProviderID, now.Add(-24*time.Hour), now.Add(24*time.Hour))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// listExecutableActionEventsTimespan handles GET
// /ap/executable_action_event/timespan/:start/:end, both RFC3339.
func (s *Server) listExecutableActionEventsTimespan(c *gin.Context) {
	p := principal(c)
	start, err := time.Parse(time.RFC3339, c.Param("start"))
	if err != nil {
		fail(c, validationError("malformed start timestamp"))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Param("end"))
	if err != nil {
		fail(c, validationError("malformed end timestamp"))
		return
	}
	events, err := s.repo.ListExecutableActionEvents(c.Request.Context(), p.ActionProviderID, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
