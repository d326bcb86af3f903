package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// listCreatableActionRules handles GET /adm/creatable_action_rule: the
// scheduler's Phase A read (§4.2, handler/action.rs `adm_get_creatable_action_rules`).
func (s *Server) listCreatableActionRules(c *gin.Context) {
	rules, err := s.repo.ListCreatableActionRules(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

// listDeletableActionEvents handles GET /adm/deletable_action_event: the
// scheduler's Phase B read.
func (s *Server) listDeletableActionEvents(c *gin.Context) {
	events, err := s.repo.ListDeletableActionEvents(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// garbageCollect handles DELETE /adm/garbage_collection?before=<RFC3339>:
// the scheduler's Phase C sweep (§4.2). Not present as a literal route in
// the retrievable original handler source, but named explicitly by the
// spec's scheduler surface — see DESIGN.md.
func (s *Server) garbageCollect(c *gin.Context) {
	before := c.Query("before")
	if before == "" {
		fail(c, validationError("before query parameter is required"))
		return
	}
	cutoff, err := time.Parse(time.RFC3339, before)
	if err != nil {
		fail(c, validationError("malformed before timestamp"))
		return
	}
	n, err := s.repo.GarbageCollect(c.Request.Context(), cutoff)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// syncRows handles GET /adm/sync/:table?since=<RFC3339>&user_id=<id>: returns
// the ids of rows changed since the cursor, per §4.4's sync protocol. This is
// an admin bulk-inspection tool (e.g. scoping a GC run, auditing a table),
// not the route end-user clients sync through — those hit each resource's
// own list endpoint with a since cursor (record_handlers.go, etc.), which
// returns full rows rather than bare ids and is scoped to the authenticated
// caller automatically. user_id narrows an owner-scoped table to one user
// for inspection; omitted, it's only valid for the global tables.
func (s *Server) syncRows(c *gin.Context) {
	table := c.Param("table")
	cursor, ok := sinceQuery(c)
	if !ok {
		return
	}
	var callerUserID int64
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fail(c, validationError("malformed user_id query parameter"))
			return
		}
		callerUserID = parsed
	}
	ids, err := s.repo.SyncRowIDs(c.Request.Context(), table, callerUserID, cursor)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

// epoch handles GET /adm/epoch/:table: the current max last_change, the
// cursor a client advances to after a successful sync (§4.4).
func (s *Server) epoch(c *gin.Context) {
	table := c.Param("table")
	max, err := s.repo.EpochMaxLastChange(c.Request.Context(), table)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"epoch": max})
}
