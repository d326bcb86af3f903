package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/auth"
	apperrors "github.com/sport-log/sport-log-server/internal/pkg/errors"
)

// selfRegisterUser handles POST /user: unauthenticated self-registration,
// gated by cfg.SelfRegistration (§6, grounded on handler/user.rs's
// `adm_create_user` vs self-registration split).
func (s *Server) selfRegisterUser(c *gin.Context) {
	if !s.cfg.SelfRegistration {
		fail(c, apperrors.Authentication("SELF_REGISTRATION_DISABLED", "self-registration is disabled"))
		return
	}
	s.createUserCommon(c)
}

// createUser handles POST /adm/user: admin-created accounts, always allowed
// regardless of SelfRegistration.
func (s *Server) createUser(c *gin.Context) {
	s.createUserCommon(c)
}

func (s *Server) createUserCommon(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	u, err := s.repo.CreateUser(c.Request.Context(), req.Username, hash, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// getSelf handles GET /user: the caller's own row.
func (s *Server) getSelf(c *gin.Context) {
	p := principal(c)
	u, err := s.repo.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// updateUser handles PUT /user: payload verification without DB (the body
// carries the caller's own id; RequireUser already authenticated as that
// user, so there is nothing further to check against a persisted owner).
func (s *Server) updateUser(c *gin.Context) {
	p := principal(c)
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := auth.VerifyPayloadForUserWithoutDB(p.UserID, req); err != nil {
		fail(c, err)
		return
	}

	u, err := s.repo.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	u.Username = req.Username
	u.Email = req.Email
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		u.PasswordHash = hash
	}
	if err := s.repo.UpdateUser(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// deleteUser handles DELETE /user: self-deletion only (§3 Lifecycle).
func (s *Server) deleteUser(c *gin.Context) {
	p := principal(c)
	if err := s.repo.DeleteUser(c.Request.Context(), p.UserID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
