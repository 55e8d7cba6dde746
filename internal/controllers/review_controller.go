package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/services"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// Create posts a new rating/review against a restaurant.
func (ctl *ReviewController) Create(c *gin.Context) {
	var input services.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	review, err := ctl.reviews.Create(currentActor(c), input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// AddComment appends the owner's single response to a review.
func (ctl *ReviewController) AddComment(c *gin.Context) {
	var input services.AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	review, err := ctl.reviews.AddComment(currentActor(c), c.Param("id"), input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Update rewrites a review. Admin only, enforced by the route policy.
func (ctl *ReviewController) Update(c *gin.Context) {
	var input services.UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	review, err := ctl.reviews.Update(currentActor(c), c.Param("id"), input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// List returns every review with restaurant and author projections.
func (ctl *ReviewController) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	reviews, err := ctl.reviews.List(skip)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
