package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
	"github.com/mistryapurva/the-food-critique-api/internal/middleware"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
)

func ReviewRoutes(r *gin.Engine, ctl *controllers.ReviewController) {
	review := r.Group("/review")
	review.Use(middleware.RequireAuth())
	{
		review.POST("", middleware.RequireRoles(models.RoleUser), ctl.Create)
		review.POST("/:id/comment", middleware.RequireRoles(models.RoleOwner), ctl.AddComment)
		review.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), ctl.Update)
		// Routed to the same add-comment operation as POST /:id/comment;
		// kept for compatibility with existing clients.
		review.PUT("/:id/:commentId", middleware.RequireRoles(models.RoleAdmin), ctl.AddComment)
		review.GET("", middleware.RequireRoles(models.RoleAdmin), ctl.List)
	}
}
