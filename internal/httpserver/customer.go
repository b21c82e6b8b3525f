package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	custsvc "techfix-shop/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerCustomerRoutes(api *gin.RouterGroup, deps Deps) {
	auth := api.Group("/auth")

	auth.POST("/signup", func(c *gin.Context) {
		var in custsvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		cust, err := deps.Customers.Signup(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cust)
	})

	auth.POST("/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		cust, token, err := deps.Customers.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"customer":  cust,
			"token":     token,
			"expiresIn": deps.Customers.TokenTTLSeconds(),
		})
	})

	me := api.Group("/me", requireAuth(deps.Customers))

	me.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, currentCustomer(c))
	})

	me.GET("/orders", func(c *gin.Context) {
		cust := currentCustomer(c)
		list, err := deps.Orders.ListByEmail(c.Request.Context(), cust.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})
}
