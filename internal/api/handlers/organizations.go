package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/volunteerhub/internal/api/middleware"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/services"
)

// OrganizationHandler exposes the organization account endpoints.
type OrganizationHandler struct {
	orgs *services.OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgs *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

// Signup handles POST /organizations/signup.
func (h *OrganizationHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	org, err := h.orgs.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": org.ID.String(), "email": org.Email})
}

// Login handles POST /organizations/login.
func (h *OrganizationHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	result, err := h.orgs.Login(c.Request.Context(), req)
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

// GetByID handles GET /organizations/:id.
func (h *OrganizationHandler) GetByID(c *gin.Context) {
	id, err := models.ParseOrganizationID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization id"})
		return
	}

	org, err := h.orgs.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

// MyEvents handles GET /organizations/my_events for the authenticated
// organization.
func (h *OrganizationHandler) MyEvents(c *gin.Context) {
	id, err := models.ParseOrganizationID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	events, err := h.orgs.MyEvents(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
