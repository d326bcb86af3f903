package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// createActionProvider handles POST /adm/action_provider: admin-created
// provider accounts (handler/action.rs `adm_create_action_provider`).
func (s *Server) createActionProvider(c *gin.Context) {
	s.createActionProviderCommon(c)
}

// selfRegisterActionProvider handles POST /ap/action_provider, gated by
// cfg.APSelfRegistration (handler/action.rs `create_action_provider`).
func (s *Server) selfRegisterActionProvider(c *gin.Context) {
	if !s.cfg.APSelfRegistration {
		fail(c, apperrors.Authentication("AP_SELF_REGISTRATION_DISABLED", "action provider self-registration is disabled"))
		return
	}
	s.createActionProviderCommon(c)
}

func (s *Server) createActionProviderCommon(c *gin.Context) {
	var req createActionProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ap, err := s.repo.CreateActionProvider(c.Request.Context(), req.Name, hash, req.PlatformID, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ap)
}

// getSelfActionProvider handles GET /ap/action_provider: the caller's own row.
func (s *Server) getSelfActionProvider(c *gin.Context) {
	p := principal(c)
	ap, err := s.repo.GetActionProviderByID(c.Request.Context(), p.ActionProviderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

// listActionProvidersAdmin handles GET /adm/action_provider.
func (s *Server) listActionProvidersAdmin(c *gin.Context) {
	s.listActionProviders(c)
}

// listActionProviders handles GET /action_provider: every user may browse
// the catalogue of registered providers.
func (s *Server) listActionProviders(c *gin.Context) {
	providers, err := s.repo.ListActionProviders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// deleteSelfActionProvider handles DELETE /ap/action_provider.
func (s *Server) deleteSelfActionProvider(c *gin.Context) {
	p := principal(c)
	if err := s.repo.DeleteActionProvider(c.Request.Context(), p.ActionProviderID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
