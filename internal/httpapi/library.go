package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/library"
)

func (h Handlers) ListSOPs(c *gin.Context) {
	c.JSON(http.StatusOK, library.SearchSOPs(h.App.SOPs(), c.Query("q")))
}

func (h Handlers) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Collections())
}

func (h Handlers) GetCollection(c *gin.Context) {
	b, err := h.App.Collection(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
