package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mistryapurva/the-food-critique-api/internal/apperr"
	"github.com/mistryapurva/the-food-critique-api/internal/middleware"
	"github.com/mistryapurva/the-food-critique-api/internal/models"
	"github.com/mistryapurva/the-food-critique-api/internal/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Signup creates a new user account. Open to unauthenticated callers.
func (ctl *UserController) Signup(c *gin.Context) {
	var input services.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory parameters"))
		return
	}

	user, err := ctl.users.Create(input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns every user. Admin only, enforced by the route policy.
func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.users.GetAll()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get fetches one user. A caller may only fetch their own record unless
// they are an administrator.
func (ctl *UserController) Get(c *gin.Context) {
	id := c.Param("id")
	if !ctl.selfOrAdmin(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to view another user"})
		return
	}

	user, err := ctl.users.Get(id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update mutates a user record. A caller may only update their own record
// unless they are an administrator; role changes stay admin-only either way.
func (ctl *UserController) Update(c *gin.Context) {
	id := c.Param("id")
	if !ctl.selfOrAdmin(c, id) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to update another user"})
		return
	}

	var input services.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Respond(c, apperr.BadRequest("Missing mandatory fields"))
		return
	}

	user, err := ctl.users.Update(currentActor(c), id, input)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete soft-deletes a user. Admin only, enforced by the route policy.
func (ctl *UserController) Delete(c *gin.Context) {
	user, err := ctl.users.Delete(c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *UserController) selfOrAdmin(c *gin.Context, id string) bool {
	if middleware.GetRole(c) == models.RoleAdmin {
		return true
	}
	requested, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return false
	}
	return uint(requested) == middleware.GetUserID(c)
}

// currentActor assembles the verified identity stored by the auth middleware.
func currentActor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:    middleware.GetUserID(c),
		Name:  c.GetString("user_name"),
		Email: c.GetString("user_email"),
		Role:  middleware.GetRole(c),
	}
}
