package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "qa-review-system.com/qa-review-system/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/links", h.AddLink)
	e.POST("/links/bulk", h.BulkImportLinks)
	e.GET("/links", h.ListLinks)
	e.PATCH("/links/:id", h.UpdateLink)
	e.DELETE("/links/:id", h.DeleteLink)

	e.GET("/accounts", h.ListAccounts)
	e.GET("/reference-preview", h.ReferencePreview)

	e.POST("/qa/claim", h.ClaimTask)
	e.POST("/qa/steps", h.SubmitStep)
	e.POST("/qa/complete", h.FinalizeTask)
	e.GET("/qa/tasks", h.ListTasks)
	e.GET("/qa/tasks/:id/report", h.DownloadReport)
	e.GET("/qa/config", h.QAConfig)
}
