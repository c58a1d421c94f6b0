package server

import (
	"log/slog"
	"net/http"
	"path"

	"github.com/cuff-app/cuff/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// GetEngine returns the Gin engine with the middleware every route shares. Resource routes are
// registered under basePath by the given functions.
func GetEngine(logger *slog.Logger, basePath string, routes ...func(r gin.IRouter)) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddExposeHeaders(middleware.CorrelationIDHeader)
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	healthRoute := path.Join("/", basePath, "health")
	r.Use(middleware.RequestLogger(logger, healthRoute))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)
	router.GET("/health", health)

	for _, register := range routes {
		register(router)
	}

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
