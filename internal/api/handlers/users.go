package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/volunteerhub/internal/api/middleware"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/services"
)

// UserHandler exposes the volunteer account endpoints.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Signup handles POST /users/signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID.String(), "email": user.Email})
}

// Login handles POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	result, err := h.users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    result.Token,
		"id":       result.ID,
		"email":    result.Email,
		"userType": result.UserType,
	})
}

// GetByID handles GET /users/get_user_by_id/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := models.ParseUserID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/update_profile for the authenticated user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := models.ParseUserID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /users/delete_account for the authenticated
// user.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, err := models.ParseUserID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	if err := h.users.DeleteAccount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// MyEvents handles GET /users/get_my_events for the authenticated user.
func (h *UserHandler) MyEvents(c *gin.Context) {
	id, err := models.ParseUserID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	myEvents, err := h.users.MyEvents(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, myEvents)
}
