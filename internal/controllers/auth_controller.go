package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/middleware"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
	"github.com/mistryapurva/the-food-critique-api/internal/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	*models.User
	Token string `json:"token"`
}

// Login authenticates the credentials and returns the identity with a
// signed session token.
func (ctl *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Mandatory fields missing"))
		return
	}

	user, err := ctl.auth.Login(input.Email, input.Password)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		apperr.Respond(c, apperr.Server("An unexpected error occurred"))
		return
	}

	c.JSON(http.StatusOK, loginResponse{User: user, Token: token})
}
