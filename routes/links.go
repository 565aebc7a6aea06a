package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/basit/pdf-proxy/handlers"
)

func RegisterLinkRoutes(r *gin.Engine, h *handlers.LinkHandler, db *gorm.DB) {
	r.GET("/docs/:token", h.DocsPage)
	r.GET("/fetch/:token", h.FetchPDF)
	r.GET("/healthz", handlers.Health(db))
}
