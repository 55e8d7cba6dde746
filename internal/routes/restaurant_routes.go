package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
	"github.com/mistryapurva/the-food-critique-api/internal/middleware"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

func RestaurantRoutes(r *gin.Engine, ctl *controllers.RestaurantController) {
	restaurant := r.Group("/restaurant")
	restaurant.Use(middleware.RequireAuth())
	{
		restaurant.POST("", middleware.RequireRoles(models.RoleOwner), ctl.Create)
		restaurant.GET("", ctl.List)
		restaurant.GET("/:id", ctl.Get)
		restaurant.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleOwner), ctl.Update)
		restaurant.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), ctl.Delete)
	}
}
