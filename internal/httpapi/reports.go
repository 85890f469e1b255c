package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/reporting"
)

func (h Handlers) AuditReports(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Reports.CompletedAudits(c.Request.Context(), reporting.ArchiveRequest{Viewer: id.User, Query: c.Query("q")})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) IncidentReports(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Reports.ClosedIncidents(c.Request.Context(), reporting.ArchiveRequest{Viewer: id.User, Query: c.Query("q")})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Analytics is admin-only; RBAC is enforced by the route group.
func (h Handlers) Analytics(c *gin.Context) {
	out, err := h.Reports.Analytics(c.Request.Context(), c.Query("department"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
