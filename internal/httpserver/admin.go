package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techfix-shop/internal/domain"
)

// registerAdminRoutes exposes the staff surface: catalog editing, order
// management and custom customer mail. Everything requires the staff or
// admin role.
func registerAdminRoutes(api *gin.RouterGroup, deps Deps) {
	admin := api.Group("/admin", requireAuth(deps.Customers), requireRole(domain.RoleStaff, domain.RoleAdmin))

	admin.GET("/catalog", func(c *gin.Context) {
		doc, err := deps.Catalog.Get(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	admin.PUT("/catalog", func(c *gin.Context) {
		var doc domain.CatalogDocument
		if err := c.ShouldBindJSON(&doc); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		updated, err := deps.Catalog.Replace(c.Request.Context(), doc)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	catalogMutation := func(c *gin.Context, doc *domain.CatalogDocument, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}

	admin.POST("/catalog/services/:device", func(c *gin.Context) {
		var svc domain.DeviceService
		if err := c.ShouldBindJSON(&svc); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertService(c.Request.Context(), c.Param("device"), svc)
		catalogMutation(c, doc, err)
	})

	admin.POST("/catalog/services/:device/brands", func(c *gin.Context) {
		var brand domain.Brand
		if err := c.ShouldBindJSON(&brand); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertBrand(c.Request.Context(), c.Param("device"), brand)
		catalogMutation(c, doc, err)
	})

	admin.DELETE("/catalog/services/:device/brands/:brandId", func(c *gin.Context) {
		doc, err := deps.Catalog.DeleteBrand(c.Request.Context(), c.Param("device"), c.Param("brandId"))
		catalogMutation(c, doc, err)
	})

	admin.POST("/catalog/services/:device/brands/:brandId/models", func(c *gin.Context) {
		var model domain.Model
		if err := c.ShouldBindJSON(&model); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertModel(c.Request.Context(), c.Param("device"), c.Param("brandId"), model)
		catalogMutation(c, doc, err)
	})

	admin.DELETE("/catalog/services/:device/brands/:brandId/models/:modelId", func(c *gin.Context) {
		doc, err := deps.Catalog.DeleteModel(c.Request.Context(), c.Param("device"), c.Param("brandId"), c.Param("modelId"))
		catalogMutation(c, doc, err)
	})

	admin.POST("/catalog/services/:device/repairs", func(c *gin.Context) {
		var repair domain.Repair
		if err := c.ShouldBindJSON(&repair); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertRepair(c.Request.Context(), c.Param("device"), repair)
		catalogMutation(c, doc, err)
	})

	admin.DELETE("/catalog/services/:device/repairs/:repairId", func(c *gin.Context) {
		doc, err := deps.Catalog.DeleteRepair(c.Request.Context(), c.Param("device"), c.Param("repairId"))
		catalogMutation(c, doc, err)
	})

	admin.POST("/catalog/builds/:category", func(c *gin.Context) {
		var part domain.Part
		if err := c.ShouldBindJSON(&part); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertBuildPart(c.Request.Context(), c.Param("category"), part)
		catalogMutation(c, doc, err)
	})

	admin.DELETE("/catalog/builds/:category/:partId", func(c *gin.Context) {
		doc, err := deps.Catalog.DeleteBuildPart(c.Request.Context(), c.Param("category"), c.Param("partId"))
		catalogMutation(c, doc, err)
	})

	admin.POST("/catalog/printing/:list", func(c *gin.Context) {
		var part domain.Part
		if err := c.ShouldBindJSON(&part); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.UpsertPrintingPart(c.Request.Context(), c.Param("list"), part)
		catalogMutation(c, doc, err)
	})

	admin.DELETE("/catalog/printing/:list/:partId", func(c *gin.Context) {
		doc, err := deps.Catalog.DeletePrintingPart(c.Request.Context(), c.Param("list"), c.Param("partId"))
		catalogMutation(c, doc, err)
	})

	admin.PUT("/catalog/checkout", func(c *gin.Context) {
		var checkout domain.CheckoutConfig
		if err := c.ShouldBindJSON(&checkout); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.SetCheckout(c.Request.Context(), checkout)
		catalogMutation(c, doc, err)
	})

	admin.PUT("/catalog/announcement", func(c *gin.Context) {
		var a domain.Announcement
		if err := c.ShouldBindJSON(&a); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		doc, err := deps.Catalog.SetAnnouncement(c.Request.Context(), a)
		catalogMutation(c, doc, err)
	})

	admin.GET("/orders", func(c *gin.Context) {
		list, err := deps.Orders.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	admin.GET("/orders/:id", func(c *gin.Context) {
		o, err := deps.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	admin.PATCH("/orders/:id/status", func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		o, err := deps.Orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	admin.DELETE("/orders/:id", func(c *gin.Context) {
		if err := deps.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	admin.POST("/mail", func(c *gin.Context) {
		var req struct {
			To      string `json:"to"`
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		if err := deps.Mailer.SendCustom(c.Request.Context(), req.To, req.Subject, req.Body); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	})
}
