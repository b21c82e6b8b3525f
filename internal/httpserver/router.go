package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"techfix-shop/internal/notify"
	cartsvc "techfix-shop/internal/service/cart"
	catalogsvc "techfix-shop/internal/service/catalog"
	custsvc "techfix-shop/internal/service/customer"
	ordersvc "techfix-shop/internal/service/order"
	wizardsvc "techfix-shop/internal/service/wizard"
)

// Deps carries the wired services the router exposes.
type Deps struct {
	Catalog   *catalogsvc.Service
	Cart      *cartsvc.Service
	Wizard    *wizardsvc.Service
	Orders    *ordersvc.Service
	Customers *custsvc.Service
	Mailer    *notify.Mailer
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if corsOrigins == "" || corsOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(corsOrigins, ",")
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Session-Id")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/session", newSessionHandler)
	api.GET("/catalog", publicCatalogHandler(deps))

	registerWizardRoutes(api, deps)
	registerCartRoutes(api, deps)
	registerOrderRoutes(api, deps)
	registerCustomerRoutes(api, deps)
	registerAdminRoutes(api, deps)

	return router
}

// sessionID identifies the anonymous browsing session. The frontend obtains
// one from POST /api/session and sends it back on every cart and wizard
// call.
func sessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("X-Session-Id"))
}

// requireSession aborts with 400 when the session header is missing.
func requireSession(c *gin.Context) (string, bool) {
	id := sessionID(c)
	if id == "" {
		badRequest(c, "missing X-Session-Id header")
		return "", false
	}
	return id, true
}

func newSessionHandler(c *gin.Context) {
	buf := make([]byte, 18)
	if _, err := rand.Read(buf); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": base64.RawURLEncoding.EncodeToString(buf)})
}

func publicCatalogHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := deps.Catalog.PublicView(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}
