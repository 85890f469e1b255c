package main

import (
	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/auth"
	"hotel-audit-pro/internal/httpapi"
	"hotel-audit-pro/internal/rbac"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	// public
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.POST("/v1/auth/login", h.RequireReady(), h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(h.RequireReady())
	v1.Use(auth.RequireSession(h.Auth))
	v1.Use(rbac.RequireAnyRole(rbac.RoleStaff))
	{
		v1.GET("/sync", h.Sync)
		v1.GET("/sync/stream", h.SyncStream)
		v1.POST("/auth/logout", h.Logout)
		v1.GET("/me", h.Me)
		v1.GET("/me/theme", h.GetTheme)
		v1.PUT("/me/theme", h.PutTheme)

		v1.GET("/settings", h.Settings)
		v1.GET("/users", h.ListUsers)
		v1.GET("/dashboard", h.Dashboard)

		v1.GET("/audits", h.ListAudits)
		v1.GET("/audits/:id", h.GetAudit)
		v1.PUT("/audits/:id", h.UpdateAudit)
		v1.PUT("/audits/:id/items/:itemID", h.RecordItem)
		v1.POST("/audits/:id/complete", h.CompleteAudit)

		v1.GET("/templates", h.ListTemplates)
		v1.POST("/templates/:id/start", h.StartTemplate)

		v1.GET("/incidents", h.ListIncidents)
		v1.GET("/incidents/:id", h.GetIncident)
		v1.POST("/incidents", h.ReportIncident)
		v1.POST("/incidents/:id/status", h.UpdateIncidentStatus)

		v1.GET("/sops", h.ListSOPs)
		v1.GET("/collections", h.ListCollections)
		v1.GET("/collections/:id", h.GetCollection)

		v1.GET("/reports/audits", h.AuditReports)
		v1.GET("/reports/incidents", h.IncidentReports)
	}

	// ADMIN routes
	admin := v1.Group("/admin")
	admin.Use(rbac.RequireAdmin())
	{
		admin.GET("/analytics", h.Analytics)

		admin.POST("/hotels", h.AddHotel)
		admin.DELETE("/hotels/:name", h.DeleteHotel)
		admin.POST("/departments", h.AddDepartment)
		admin.DELETE("/departments/:name", h.DeleteDepartment)

		admin.POST("/users", h.AddUser)
		admin.PUT("/users/:id", h.UpdateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/users/:id/toggle-status", h.ToggleUserStatus)

		admin.POST("/audits", h.ScheduleAudit)
		admin.POST("/templates", h.AddTemplate)
		admin.DELETE("/templates/:id", h.DeleteTemplate)

		admin.POST("/sops", h.AddSOP)
		admin.DELETE("/sops/:id", h.DeleteSOP)
		admin.POST("/sops/:id/convert", h.ConvertSOP)

		admin.POST("/collections", h.AddCollection)
		admin.DELETE("/collections/:id", h.DeleteCollection)
	}
}
