package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/audits"
)

func (h Handlers) ListAudits(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	f := audits.Filter{Status: audits.Status(c.Query("status")), Query: c.Query("q")}
	if f.Status != "" && !f.Status.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	c.JSON(http.StatusOK, h.App.VisibleAudits(id.User, f))
}

func (h Handlers) GetAudit(c *gin.Context) {
	a, err := h.App.Audit(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) UpdateAudit(c *gin.Context) {
	var req audits.Audit
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	req.ID = c.Param("id")
	a, err := h.App.UpdateAudit(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) RecordItem(c *gin.Context) {
	var req audits.ItemUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	a, err := h.App.RecordItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) CompleteAudit(c *gin.Context) {
	a, err := h.App.CompleteAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Templates())
}

type startRequest struct {
	HotelName string `json:"hotel_name"`
}

func (h Handlers) StartTemplate(c *gin.Context) {
	var req startRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badJSON(c)
			return
		}
	}
	a, err := h.App.StartFromTemplate(c.Request.Context(), c.Param("id"), req.HotelName)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}
