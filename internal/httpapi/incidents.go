package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/incidents"
)

func (h Handlers) ListIncidents(c *gin.Context) {
	q := incidents.Query{
		Type:       incidents.Type(c.Query("type")),
		Department: c.Query("department"),
		Status:     incidents.Status(c.Query("status")),
		Assignee:   c.Query("assignee"),
		Search:     c.Query("q"),
		Sort:       c.Query("sort"),
	}
	c.JSON(http.StatusOK, h.App.QueryIncidents(q))
}

func (h Handlers) GetIncident(c *gin.Context) {
	inc, err := h.App.Incident(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inc)
}

func (h Handlers) ReportIncident(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req incidents.ReportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	inc, err := h.App.ReportIncident(c.Request.Context(), req, id.User)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, inc)
}

type statusRequest struct {
	Status  incidents.Status `json:"status"`
	Comment string           `json:"comment"`
}

func (h Handlers) UpdateIncidentStatus(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	inc, err := h.App.UpdateIncidentStatus(c.Request.Context(), c.Param("id"), req.Status, req.Comment, id.User)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, inc)
}
