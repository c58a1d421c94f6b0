package post

import (
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, handler Handler) {
	r.GET("/posts", handler.FindActive)
	r.POST("/posts", handler.Create)
	r.GET("/posts/:id", handler.FindById)
	r.PUT("/posts/:id", handler.Update)
	r.DELETE("/posts/:id", handler.Delete)
}
