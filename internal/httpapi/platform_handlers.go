package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	"github.com/sport-log/sport-log-server/internal/idtype"
)

// createPlatform handles POST /adm/platform: admin-managed catalogue entry.
func (s *Server) createPlatform(c *gin.Context) {
	var req createPlatformRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := s.repo.CreatePlatform(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// listPlatforms handles GET /platform: the shared catalogue, visible to
// every authenticated user.
func (s *Server) listPlatforms(c *gin.Context) {
	platforms, err := s.repo.ListPlatforms(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, platforms)
}

// createPlatformCredential handles POST /platform_credential.
func (s *Server) createPlatformCredential(c *gin.Context) {
	p := principal(c)
	var req createPlatformCredentialRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
		fail(c, err)
		return
	}
	pc, err := s.repo.CreatePlatformCredential(c.Request.Context(), req.UserID, req.PlatformID, req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, pc)
}

// listPlatformCredentials handles GET /platform_credential?since=<RFC3339>:
// the caller's own credentials only — these carry third-party passwords,
// never listed for anyone else. An absent since returns the full set,
// tombstones included (§4.4).
func (s *Server) listPlatformCredentials(c *gin.Context) {
	p := principal(c)
	since, ok := sinceQuery(c)
	if !ok {
		return
	}
	creds, err := s.repo.ListPlatformCredentialsByUser(c.Request.Context(), p.UserID, since)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, creds)
}

// getPlatformCredential handles GET /platform_credential/:id.
func (s *Server) getPlatformCredential(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.PlatformCredentialID(id), s.repo.PlatformCredentialOwner); err != nil {
		fail(c, err)
		return
	}
	pc, err := s.repo.GetPlatformCredentialByID(c.Request.Context(), idtype.PlatformCredentialID(id))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// updatePlatformCredential handles PUT /platform_credential.
func (s *Server) updatePlatformCredential(c *gin.Context) {
	p := principal(c)
	var req updatePlatformCredentialRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithDB(c.Request.Context(), p.UserID, req, s.repo.PlatformCredentialOwner, int64(req.ID)); err != nil {
		fail(c, err)
		return
	}
	pc, err := s.repo.GetPlatformCredentialByID(c.Request.Context(), req.ID)
	if err != nil {
		fail(c, err)
		return
	}
	pc.Username = req.Username
	pc.Password = req.Password
	if err := s.repo.UpdatePlatformCredential(c.Request.Context(), pc); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pc)
}

// deletePlatformCredential handles DELETE /platform_credential/:id.
func (s *Server) deletePlatformCredential(c *gin.Context) {
	p := principal(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := auth.VerifyIDForUser(c.Request.Context(), p.UserID, idtype.PlatformCredentialID(id), s.repo.PlatformCredentialOwner); err != nil {
		fail(c, err)
		return
	}
	if err := s.repo.DeletePlatformCredential(c.Request.Context(), idtype.PlatformCredentialID(id)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
