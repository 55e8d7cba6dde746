package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
)

// Controllers bundles the resource handlers wired in main.
type Controllers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Restaurants *controllers.RestaurantController
	Reviews     *controllers.ReviewController
}

// SetupRouter registers every resource route on a fresh engine.
func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(ginlogger.SetLogger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "the-food-critique-api"})
	})

	AuthRoutes(r, ctl.Auth)
	UserRoutes(r, ctl.Users)
	RestaurantRoutes(r, ctl.Restaurants)
	ReviewRoutes(r, ctl.Reviews)

	return r
}
