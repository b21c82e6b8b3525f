package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordersvc "techfix-shop/internal/service/order"
)

func registerOrderRoutes(api *gin.RouterGroup, deps Deps) {
	orders := api.Group("/orders")

	orders.POST("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var sub ordersvc.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		o, err := deps.Orders.Submit(c.Request.Context(), session, sub)
		if err != nil {
			writeError(c, err)
			return
		}
		deps.Wizard.DropSession(session)
		c.JSON(http.StatusCreated, o)
	})

	// Guest tracking: the order number plus the email it was placed under.
	// A POST body keeps the email out of access logs.
	orders.POST("/track", func(c *gin.Context) {
		var req struct {
			Number string `json:"orderNumber"`
			Email  string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		o, err := deps.Orders.Track(c.Request.Context(), req.Number, req.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	orders.POST("/:number/cancel", func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		o, err := deps.Orders.Cancel(c.Request.Context(), c.Param("number"), req.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})
}
