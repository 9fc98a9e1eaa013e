package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes. Routes acting on behalf of a
// user sit behind the identity middleware.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	identified := IdentityMiddleware(h.directory, h.logger)

	reports := api.Group("/reports")
	{
		reports.GET("", h.listReports)
		reports.GET("/:id", h.getReport)
		reports.POST("", identified, h.createReport)
		reports.GET("/mine", identified, h.listMyReports)
		reports.GET("/unverified", identified, h.listUnverifiedReports)
		reports.POST("/:id/verify", identified, h.verifyReport)
	}

	api.GET("/neighborhoods/leaderboard", h.leaderboard)

	sos := api.Group("/sos")
	{
		sos.GET("", identified, h.sosStatus)
		sos.POST("/start", identified, h.sosStart)
		sos.POST("/stop", identified, h.sosStop)
		sos.POST("/location", identified, h.sosLocation)
		sos.POST("/audio", identified, h.sosAudio)
		sos.GET("/events", identified, h.sosEvents)
		// Stored audio objects; keys contain slashes, hence the wildcard.
		sos.GET("/audio/*key", h.sosAudioGet)
	}

	api.GET("/system/health", h.healthCheck)
}
