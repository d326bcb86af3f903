package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// createMovement handles POST /movement. A nil UserID in the payload creates
// a system-shared catalogue entry, for any caller; a non-nil UserID must be
// the caller's own (or, for AuthUserAP, the linked user's).
func (s *Server) createMovement(c *gin.Context) {
	p := principal(c)
	var req createMovementRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID != nil && *req.UserID != p.UserID {
		fail(c, forbidden())
		return
	}
	m, err := s.repo.CreateMovement(c.Request.Context(), req.UserID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// listMovements handles GET /movement?since=<RFC3339>: the caller's private
// movements plus every system-shared one, filtered to rows changed at or
// after since (§4.4); an absent since returns the full set, tombstones
// included.
func (s *Server) listMovements(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	movements, err := s.repo.ListMovementsForUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

// getMovement handles GET /movement/:id: id verification with an optional
// owner (shared rows are visible to anyone).
func (s *Server) getMovement(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUserOptional(c.Request.Context(), p.UserID, idtype.MovementID(id), s.repo.MovementOwner); err != nil {
		fail(c, err)
		return
	}
	m, err := s.repo.GetMovementByID(c.Request.Context(), idtype.MovementID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// updateMovement handles PUT /movement: renames an already-verified,
// user-owned (never shared) Movement.
func (s *Server) updateMovement(c *gin.Context) {
	p := principal(c)
	var req updateMovementRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyIDForUserOptional(c.Request.Context(), p.UserID, req.ID, s.repo.MovementOwner); err != nil {
		fail(c, err)
		return
	}
	m, err := s.repo.GetMovementByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	if m.UserID == nil {
		fail(c, forbidden())
		return
	}
	m.Name = req.Name
	if err := s.repo.UpdateMovement(c.Request.Context(), m); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// deleteMovement handles DELETE /movement/:id: a user's own custom
// Movement only — system-shared rows have no owner to authorize against.
func (s *Server) deleteMovement(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	owner, err := s.repo.MovementOwner(c.Request.Context(), id)
	if err != nil || owner == nil || *owner != p.UserID {
		fail(c, forbidden())
		return
	}
	if err := s.repo.DeleteMovement(c.Request.Context(), idtype.MovementID(id)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// cardioSessionConflict handles GET
// /cardio_session_conflict/:movement_id/:datetime: the provider runtime's
// break-on-known-record check (§4.3 step 3.e) — whether the caller already
// has a session for movement_id at exactly datetime.
func (s *Server) cardioSessionConflict(c *gin.Context) {
	p := principal(c)
	movementID, ok := pathID(c, "movement_id")
	if !ok {
		return
	}
	datetime, err := time.Parse(time.RFC3339, c.Param("datetime"))
	if err != nil {
		fail(c, validationError("malformed datetime path parameter"))
		return
	}
	exists, err := s.repo.CardioSessionExistsForMovementAt(c.Request.Context(), p.UserID, idtype.MovementID(movementID), datetime)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// createCardioSession handles POST /cardio_session.
func (s *Server) createCardioSession(c *gin.Context) {
	p := principal(c)
	var req createCardioSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
		fail(c, err)
		return
	}
	cs, err := s.repo.CreateCardioSession(c.Request.Context(), req.toDomain())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cs)
}

// listCardioSessions handles GET /cardio_session?since=<RFC3339>, the sync
// cursor per §4.4; an absent since returns the full history, tombstones
// included.
func (s *Server) listCardioSessions(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	sessions, err := s.repo.ListCardioSessionsByUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// getCardioSession handles GET /cardio_session/:id.
func (s *Server) getCardioSession(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.CardioSessionID(id), s.repo.CardioSessionOwner); err != nil {
		fail(c, err)
		return
	}
	cs, err := s.repo.GetCardioSessionByID(c.Request.Context(), idtype.CardioSessionID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

// updateCardioSession handles PUT /cardio_session.
func (s *Server) updateCardioSession(c *gin.Context) {
	p := principal(c)
	var req updateCardioSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithDB(c.Request.Context(), p.UserID, req, s.repo.CardioSessionOwner, int64(req.ID)); err != nil {
		fail(c, err)
		return
	}
	cs, err := s.repo.GetCardioSessionByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	cs.MovementID = req.MovementID
	cs.DateTime = req.DateTime
	cs.Distance = req.Distance
	cs.Comments = req.Comments
	if req.DurationMs != nil {
		d := nanosFromMillis(*req.DurationMs)
		cs.Duration = &d
	} else {
		cs.Duration = nil
	}
	if err := s.repo.UpdateCardioSession(c.Request.Context(), cs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cs)
}

// deleteCardioSession handles DELETE /cardio_session/:id.
func (s *Server) deleteCardioSession(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.CardioSessionID(id), s.repo.CardioSessionOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.DeleteCardioSession(c.Request.Context(), idtype.CardioSessionID(id)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createWod handles POST /wod.
func (s *Server) createWod(c *gin.Context) {
	p := principal(c)
	var req createWodRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
		fail(c, err)
		return
	}
	w, err := s.repo.CreateWod(c.Request.Context(), req.toDomain())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// listWods handles GET /wod?since=<RFC3339>, the sync cursor per §4.4; an
// absent since returns the full history, tombstones included.
func (s *Server) listWods(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	wods, err := s.repo.ListWodsByUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wods)
}

// getWod handles GET /wod/:id.
func (s *Server) getWod(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.WodID(id), s.repo.WodOwner); err != nil {
		fail(c, err)
		return
	}
	w, err := s.repo.GetWodByID(c.Request.Context(), idtype.WodID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// updateWod handles PUT /wod.
func (s *Server) updateWod(c *gin.Context) {
	p := principal(c)
	var req updateWodRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithDB(c.Request.Context(), p.UserID, req, s.repo.WodOwner, int64(req.ID)); err != nil {
		fail(c, err)
		return
	}
	w, err := s.repo.GetWodByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	w.DateTime = req.DateTime
	w.Description = req.Description
	if err := s.repo.UpdateWod(c.Request.Context(), w); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// deleteWod handles DELETE /wod/:id.
func (s *Server) deleteWod(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.WodID(id), s.repo.WodOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.DeleteWod(c.Request.Context(), idtype.WodID(id)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
