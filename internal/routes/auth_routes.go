package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
)

func AuthRoutes(r *gin.Engine, ctl *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", ctl.Login)
	}
}
