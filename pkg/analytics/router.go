package analytics

import (
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, handler Handler) {
	r.GET("/analytics/summary", handler.Summary)
	r.POST("/analytics", handler.Create)
	r.GET("/analytics", handler.FindAll)
	r.GET("/analytics/:id", handler.FindById)
	r.DELETE("/analytics/:id", handler.Delete)
}
