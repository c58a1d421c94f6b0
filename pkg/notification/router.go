package notification

import (
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, handler Handler) {
	r.POST("/notifications", handler.Create)
	r.GET("/notifications", handler.FindAll)
	r.GET("/notifications/user/:userId", handler.FindByUser)
	r.GET("/notifications/:id", handler.FindById)
	r.DELETE("/notifications/:id", handler.Delete)
}
