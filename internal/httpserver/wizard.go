package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type selectRequest struct {
	Step string `json:"step"`
	ID   string `json:"id"`
}

type printSelectRequest struct {
	Field string `json:"field"`
	Slot  int    `json:"slot"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

func registerWizardRoutes(api *gin.RouterGroup, deps Deps) {
	wizard := api.Group("/wizard")

	repair := wizard.Group("/repair")
	repair.GET("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		st, err := deps.Wizard.RepairState(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	repair.POST("/select", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var req selectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		st, err := deps.Wizard.RepairSelect(c.Request.Context(), session, req.Step, req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	repair.POST("/add", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var req struct {
			Repair string `json:"repair"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		item, err := deps.Wizard.RepairAddToCart(c.Request.Context(), session, req.Repair)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
	repair.POST("/reset", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := deps.Wizard.RepairReset(c.Request.Context(), session); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	build := wizard.Group("/build")
	build.GET("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		st, err := deps.Wizard.BuildState(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	build.POST("/select", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var req selectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		st, err := deps.Wizard.BuildSelect(c.Request.Context(), session, req.Step, req.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	build.POST("/add", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		item, err := deps.Wizard.BuildAddToCart(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
	build.POST("/reset", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := deps.Wizard.BuildReset(c.Request.Context(), session); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	print := wizard.Group("/print")
	print.GET("", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		st, err := deps.Wizard.PrintState(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	print.POST("/select", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		var req printSelectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid JSON body")
			return
		}
		st, err := deps.Wizard.PrintSelect(c.Request.Context(), session, req.Field, req.Slot, req.Value, req.Count)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
	print.POST("/add", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		item, err := deps.Wizard.PrintAddToCart(c.Request.Context(), session)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	})
	print.POST("/reset", func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := deps.Wizard.PrintReset(c.Request.Context(), session); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
