package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/basit/pdf-proxy/middleware"
)

// NewRouter returns an engine with recovery, request logging and, when
// origins are given, CORS for GET requests.
func NewRouter(corsAllowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())

	if len(corsAllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  corsAllowOrigins,
			AllowMethods:  []string{"GET", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Accept"},
			ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
			MaxAge:        12 * time.Hour,
		}))
	}
	return router
}
