package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"techfix-shop/internal/domain"
	custsvc "techfix-shop/internal/service/customer"
)

const customerContextKey = "customer"

// requireAuth resolves the bearer token to a customer and stores it in the
// request context. Missing or invalid tokens get a 401.
func requireAuth(customers *custsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		cust, err := customers.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(customerContextKey, cust)
		c.Next()
	}
}

// requireRole gates a route to the listed roles. It runs after requireAuth.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust := currentCustomer(c)
		if cust == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, r := range roles {
			if cust.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerContextKey)
	if !ok {
		return nil
	}
	cust, _ := v.(*domain.Customer)
	return cust
}
