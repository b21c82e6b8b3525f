package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func registerCartRoutes(api *gin.RouterGroup, deps Deps) {
	cart := api.Group("/cart")

	cart.GET("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		cartDoc, subtotal, err := deps.Cart.Get(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": cartDoc.Items, "subtotal": subtotal})
	})

	// Ready-made printed items skip the wizards entirely.
	cart.POST("/other", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var req struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		cat, err := deps.Catalog.Model(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		item, err := deps.Cart.AddOtherItem(c.Request.Context(), session, cat, req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})

	cart.DELETE("/items/:id", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := deps.Cart.Remove(c.Request.Context(), session, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	cart.DELETE("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := deps.Cart.Clear(c.Request.Context(), session); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
