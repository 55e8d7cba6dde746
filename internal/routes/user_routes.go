package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
	"github.com/mistryapurva/the-food-critique-api/internal/middleware"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

func UserRoutes(r *gin.Engine, ctl *controllers.UserController) {
	// signup stays open
	r.POST("/user", ctl.Signup)

	user := r.Group("/user")
	user.Use(middleware.RequireAuth())
	{
		user.GET("", middleware.RequireRoles(models.RoleAdmin), ctl.List)
		user.GET("/:id", ctl.Get)    // self or admin, checked in the controller
		user.PUT("/:id", ctl.Update) // self or admin, checked in the controller
		user.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), ctl.Delete)
	}
}
