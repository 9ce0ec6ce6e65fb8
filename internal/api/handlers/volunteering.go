package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"example.com/volunteerhub/internal/api/middleware"
	"example.com/volunteerhub/internal/models"
	"example.com/volunteerhub/internal/services"
)

// VolunteeringHandler exposes the event endpoints: browsing, creation,
// registration, and proximity ranking.
type VolunteeringHandler struct {
	events        *services.EventService
	registrations *services.RegistrationService
	proximity     *services.ProximityService
}

// NewVolunteeringHandler creates a new volunteering handler
func NewVolunteeringHandler(
	events *services.EventService,
	registrations *services.RegistrationService,
	proximity *services.ProximityService,
) *VolunteeringHandler {
	return &VolunteeringHandler{
		events:        events,
		registrations: registrations,
		proximity:     proximity,
	}
}

// ListEvents handles GET /volunteering/events.
func (h *VolunteeringHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetEvent handles GET /volunteering/events/:id.
func (h *VolunteeringHandler) GetEvent(c *gin.Context) {
	id, err := models.ParseEventID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /volunteering/create-event for the authenticated
// organization.
func (h *VolunteeringHandler) CreateEvent(c *gin.Context) {
	orgID, err := models.ParseOrganizationID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed request body"})
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), orgID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// RegisterForEvent handles
// POST /volunteering/register-for-event/:eventId/register for the
// authenticated volunteer.
func (h *VolunteeringHandler) RegisterForEvent(c *gin.Context) {
	userID, err := models.ParseUserID(middleware.ActorID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	eventID, err := models.ParseEventID(c.Param("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	registration, err := h.registrations.RegisterForEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Successfully registered for the event",
		"registration_id": registration.ID.String(),
	})
}

// NearestEvents handles GET /volunteering/nearest-events?lat=&lng=.
func (h *VolunteeringHandler) NearestEvents(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng must be a number"})
		return
	}

	ranked, err := h.proximity.NearestEvents(c.Request.Context(), lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": ranked})
}

// SearchEvents handles GET /volunteering/events/search?q=.
func (h *VolunteeringHandler) SearchEvents(c *gin.Context) {
	docs, err := h.events.SearchEvents(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": docs})
}
