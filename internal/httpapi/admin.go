package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/library"
	"hotel-audit-pro/internal/users"
)

// Admin handlers. RBAC (admin only) is enforced by the route group.

type nameRequest struct {
	Name string `json:"name"`
}

func (h Handlers) AddHotel(c *gin.Context)         { addName(c, h.App.AddHotel) }
func (h Handlers) DeleteHotel(c *gin.Context)      { removeName(c, h.App.DeleteHotel) }
func (h Handlers) AddDepartment(c *gin.Context)    { addName(c, h.App.AddDepartment) }
func (h Handlers) DeleteDepartment(c *gin.Context) { removeName(c, h.App.DeleteDepartment) }

type nameListFunc func(ctx context.Context, name string) ([]string, error)

func addName(c *gin.Context, fn nameListFunc) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	out, err := fn(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func removeName(c *gin.Context, fn nameListFunc) {
	out, err := fn(c.Request.Context(), c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Users ---

func (h Handlers) AddUser(c *gin.Context) {
	var req users.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	u, err := h.App.AddUser(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h Handlers) UpdateUser(c *gin.Context) {
	var req users.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	u, err := h.App.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser reports logged_out=true when admins delete themselves; their
// token stops working immediately.
func (h Handlers) DeleteUser(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	res, err := h.App.DeleteUser(c.Request.Context(), c.Param("id"), id.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) ToggleUserStatus(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	res, err := h.App.ToggleUserStatus(c.Request.Context(), c.Param("id"), id.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- Audits & templates ---

func (h Handlers) ScheduleAudit(c *gin.Context) {
	var req audits.NewAuditInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	a, err := h.App.ScheduleAudit(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h Handlers) AddTemplate(c *gin.Context) {
	var req audits.TemplateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	t, err := h.App.AddTemplate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h Handlers) DeleteTemplate(c *gin.Context) {
	if err := h.App.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Library ---

func (h Handlers) AddSOP(c *gin.Context) {
	var req library.SOPInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	s, err := h.App.AddSOP(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h Handlers) DeleteSOP(c *gin.Context) {
	if err := h.App.DeleteSOP(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) ConvertSOP(c *gin.Context) {
	t, err := h.App.ConvertSOP(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h Handlers) AddCollection(c *gin.Context) {
	var req library.CollectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	col, err := h.App.AddCollection(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, col)
}

func (h Handlers) DeleteCollection(c *gin.Context) {
	if err := h.App.DeleteCollection(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
