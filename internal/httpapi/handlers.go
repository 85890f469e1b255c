package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/appstate"
	"hotel-audit-pro/internal/auth"
	"hotel-audit-pro/internal/reporting"
	"hotel-audit-pro/internal/session"
	"hotel-audit-pro/pkg/logger"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	App     *appstate.App
	Auth    *auth.Service
	Reports *reporting.Service

	// SyncPoll is how often SyncStream samples the indicator.
	SyncPoll time.Duration
}

func fail(c *gin.Context, err error) {
	code := apperror.SafeCode(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": apperror.SafeMessage(err)})
}

func badJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
}

func identity(c *gin.Context) (auth.Identity, bool) {
	id, err := auth.FromContext(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return auth.Identity{}, false
	}
	return id, true
}

// --- Health ---

func (h Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports 200 only once every collection has hydrated.
func (h Handlers) Readyz(c *gin.Context) {
	if !h.App.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// RequireReady answers 503 until every collection is loaded. Sessions and
// writes are checked against the stored data, never the seed.
func (h Handlers) RequireReady() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.App.Ready() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Loading local database..."})
			return
		}
		c.Next()
	}
}

func (h Handlers) Sync(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Status())
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	if req.Email == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.FromGin(c).Info("login rejected", "reason", apperror.SafeType(err))
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) Logout(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), id.SessionID); err != nil {
		fail(c, apperror.NewInternal(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, id.User)
}

func (h Handlers) GetTheme(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	th, err := h.Auth.Theme(c.Request.Context(), id.User.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": th})
}

type themeRequest struct {
	Theme session.Theme `json:"theme"`
}

func (h Handlers) PutTheme(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c)
		return
	}
	if err := h.Auth.SetTheme(c.Request.Context(), id.User.ID, req.Theme); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

// --- Shared lookups ---

func (h Handlers) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hotels": h.App.Hotels(), "departments": h.App.Departments()})
}

func (h Handlers) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.PublicUsers())
}

func (h Handlers) Dashboard(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Reports.Dashboard(c.Request.Context(), id.User)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
