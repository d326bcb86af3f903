package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sport-log/sport-log-server/internal/api/middleware"
	"github.com/sport-log/sport-log-server/internal/auth"
)

// NewRouter builds the gin engine for the server binary: the middleware
// chain mirrors the order recovery -> request id -> error translation ->
// CORS, then the three principal-scoped route groups (plain user routes,
// whose record groups also accept AuthUserAP; /ap for AuthAP; /adm for
// AuthAdmin) (§6).
func (s *Server) NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.ErrorHandler())
	router.Use(cors.New(corsConfig()))

	v := s.verifier()

	requireUser := auth.RequireUser(v)
	requireUserOrUserAP := auth.RequireUserOrUserAP(v)
	requireAP := auth.RequireActionProvider(v)
	requireAdmin := auth.RequireAdmin(v)

	router.POST("/user", s.selfRegisterUser)
	user := router.Group("/user", requireUser)
	{
		user.GET("", s.getSelf)
		user.PUT("", s.updateUser)
		user.DELETE("", s.deleteUser)
	}

	adm := router.Group("/adm", requireAdmin)
	{
		adm.POST("/user", s.createUser)
		adm.POST("/platform", s.createPlatform)
		adm.POST("/action_provider", s.createActionProvider)
		adm.GET("/action_provider", s.listActionProvidersAdmin)
		adm.POST("/action_events", s.bulkCreateActionEvents)
		adm.DELETE("/action_event/:id", s.deleteActionEventAdmin)
		adm.DELETE("/action_events", s.bulkDeleteActionEventsAdmin)
		adm.GET("/creatable_action_rule", s.listCreatableActionRules)
		adm.GET("/deletable_action_event", s.listDeletableActionEvents)
		adm.DELETE("/garbage_collection", s.garbageCollect)
		adm.GET("/sync/:table", s.syncRows)
		adm.GET("/epoch/:table", s.epoch)
	}

	router.GET("/platform", requireUser, s.listPlatforms)

	platformCredential := router.Group("/platform_credential", requireUser)
	{
		platformCredential.POST("", s.createPlatformCredential)
		platformCredential.GET("", s.listPlatformCredentials)
		platformCredential.GET("/:id", s.getPlatformCredential)
		platformCredential.PUT("", s.updatePlatformCredential)
		platformCredential.DELETE("/:id", s.deletePlatformCredential)
	}

	router.POST("/ap/action_provider", s.selfRegisterActionProvider)
	ap := router.Group("/ap", requireAP)
	{
		ap.GET("/action_provider", s.getSelfActionProvider)
		ap.DELETE("/action_provider", s.deleteSelfActionProvider)
		ap.POST("/action", s.createAction)
		ap.POST("/actions", s.bulkCreateActions)
		ap.GET("/action", s.listOwnActions)
		ap.GET("/action/:id", s.getOwnAction)
		ap.GET("/executable_action_event", s.listExecutableActionEvents)
		ap.GET("/executable_action_event/timespan/:start/:end", s.listExecutableActionEventsTimespan)
		ap.DELETE("/action_event/:id", s.deleteActionEventAP)
		ap.DELETE("/action_events", s.bulkDeleteActionEventsAP)
		ap.DELETE("/disable_action_events", s.disableActionEvents)
	}

	router.GET("/action_provider", requireUser, s.listActionProviders)
	router.GET("/action", requireUser, s.listAllActions)

	actionRule := router.Group("/action_rule", requireUser)
	{
		actionRule.POST("", s.createActionRule)
		actionRule.POST("s", s.bulkCreateActionRules)
		actionRule.GET("", s.listOwnActionRules)
		actionRule.GET("/:id", s.getOwnActionRule)
		actionRule.GET("/action_provider/:id", s.listActionRulesByProvider)
		actionRule.PUT("", s.updateActionRule)
		actionRule.DELETE("/:id", s.deleteActionRule)
		actionRule.DELETE("s", s.bulkDeleteActionRules)
	}

	actionEvent := router.Group("/action_event", requireUserOrUserAP)
	{
		actionEvent.POST("", s.createActionEvent)
		actionEvent.POST("s", s.bulkCreateActionEventsUser)
		actionEvent.GET("", s.listOwnActionEvents)
		actionEvent.GET("/:id", s.getOwnActionEvent)
		actionEvent.GET("/action_provider/:id", s.listActionEventsByProvider)
		actionEvent.PUT("", s.updateActionEvent)
		actionEvent.DELETE("/:id", s.deleteActionEvent)
		actionEvent.DELETE("s", s.bulkDeleteActionEvents)
	}

	movement := router.Group("/movement", requireUserOrUserAP)
	{
		movement.POST("", s.createMovement)
		movement.GET("", s.listMovements)
		movement.GET("/:id", s.getMovement)
		movement.PUT("", s.updateMovement)
		movement.DELETE("/:id", s.deleteMovement)
	}

	cardioSession := router.Group("/cardio_session", requireUserOrUserAP)
	{
		cardioSession.POST("", s.createCardioSession)
		cardioSession.GET("", s.listCardioSessions)
		cardioSession.GET("/:id", s.getCardioSession)
		cardioSession.PUT("", s.updateCardioSession)
		cardioSession.DELETE("/:id", s.deleteCardioSession)
	}

	// Kept outside the /cardio_session group (rather than nested as
	// /cardio_session/conflict/...) to avoid a static segment competing
	// with that group's /:id wildcard at the same path depth.
	router.GET("/cardio_session_conflict/:movement_id/:datetime", requireUserOrUserAP, s.cardioSessionConflict)

	wod := router.Group("/wod", requireUserOrUserAP)
	{
		wod.POST("", s.createWod)
		wod.GET("", s.listWods)
		wod.GET("/:id", s.getWod)
		wod.PUT("", s.updateWod)
		wod.DELETE("/:id", s.deleteWod)
	}

	router.GET("/account_data", requireUser, s.getAccountData)

	return router
}

// corsConfig implements §6's permissive cross-origin policy: any origin,
// standard verbs and headers, no credentials (Basic auth travels in the
// Authorization header per-request, not via cookies, so credentialed CORS
// buys nothing here).
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Request-ID", auth.IDHeader},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}
