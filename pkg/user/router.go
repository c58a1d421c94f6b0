package user

import (
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, handler Handler) {
	r.POST("/users", handler.Create)
	r.GET("/users", handler.FindAll)
	r.GET("/users/by-email", handler.FindByEmail)
	r.PUT("/users/preferences/:userId", handler.UpdatePreferences)
	r.GET("/users/:id", handler.FindById)
	r.GET("/users/:id/feed", handler.Feed)
	r.DELETE("/users/:id", handler.Delete)
}
