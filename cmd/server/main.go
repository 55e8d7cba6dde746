package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/mistryapurva/the-food-critique-api/internal/config"
	"github.com/mistryapurva/the-food-critique-api/internal/controllers"
	"github.com/mistryapurva/the-food-critique-api/internal/logger"
	"github.com/mistryapurva/the-food-critique-api/internal/routes"
	"github.com/mistryapurva/the-food-critique-api/internal/services"
)

func main() {
	// Structured logging to a rotating file
	appLog := logger.Setup()

	cfg := config.Load()

	db, err := config.Open(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := config.Close(db); err != nil {
			appLog.WithError(err).Error("closing database failed")
		}
	}()

	images := services.NewImageService(appLog)

	router := routes.SetupRouter(routes.Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(db, appLog)),
		Users:       controllers.NewUserController(services.NewUserService(db, appLog)),
		Restaurants: controllers.NewRestaurantController(services.NewRestaurantService(db, images, appLog)),
		Reviews:     controllers.NewReviewController(services.NewReviewService(db, appLog)),
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}).Handler(router)

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
