package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/services"
)

type RestaurantController struct {
	restaurants *services.RestaurantService
}

func NewRestaurantController(restaurants *services.RestaurantService) *RestaurantController {
	return &RestaurantController{restaurants: restaurants}
}

// List returns the page of restaurants visible to the caller, enriched with
// average ratings. Query parameters: search, rating, skip.
func (ctl *RestaurantController) List(c *gin.Context) {
	search := c.Query("search")
	rating, _ := strconv.ParseFloat(c.DefaultQuery("rating", "0"), 64)
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	restaurants, err := ctl.restaurants.List(currentActor(c), search, rating, skip)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// Get fetches one restaurant with its reviews and average rating.
func (ctl *RestaurantController) Get(c *gin.Context) {
	restaurant, err := ctl.restaurants.Get(currentActor(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Create registers a new restaurant for the calling owner.
func (ctl *RestaurantController) Create(c *gin.Context) {
	var input services.CreateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	restaurant, err := ctl.restaurants.Create(currentActor(c), input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Update mutates an existing restaurant. Owners may only touch their own.
func (ctl *RestaurantController) Update(c *gin.Context) {
	var input services.UpdateRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	restaurant, err := ctl.restaurants.Update(currentActor(c), c.Param("id"), input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// Delete soft-deletes a restaurant. Admin only, enforced by the route policy.
func (ctl *RestaurantController) Delete(c *gin.Context) {
	restaurant, err := ctl.restaurants.Delete(c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}
