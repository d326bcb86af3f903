package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getAccountData handles GET /account_data?since=<RFC3339>: a client's
// bootstrap fetch of everything it owns, in lieu of issuing a sync request
// per resource (§3 supplemented feature). An absent since returns the full
// set, tombstones included; a client reconnecting after a prior sync passes
// its saved cursor to get only what changed (§4.4).
func (s *Server) getAccountData(c *gin.Context) {
	p := principal(c)
	ctx := c.Request.Context()
	since, ok := sinceQuery(c)
	if !ok {
		return
	}

	u, err := s.repo.GetUserByID(ctx, p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	credentials, err := s.repo.ListPlatformCredentialsByUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	rules, err := s.repo.ListActionRulesByUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	events, err := s.repo.ListActionEventsByUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	movements, err := s.repo.ListMovementsForUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	sessions, err := s.repo.ListCardioSessionsByUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	wods, err := s.repo.ListWodsByUser(ctx, p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, accountData{
		User:                u,
		PlatformCredentials: credentials,
		ActionRules:         rules,
		ActionEvents:        events,
		Movements:           movements,
		CardioSessions:      sessions,
		Wods:                wods,
	})
}
