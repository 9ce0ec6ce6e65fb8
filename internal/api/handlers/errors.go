package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses and the
// {error, details?} envelope. A duplicate registration is a 400, matching
// the behavior clients already depend on.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		log.Error().Err(err).Msg("Unclassified error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case services.KindValidation, services.KindConflict:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
	case services.KindPersistence, services.KindUpstream:
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": svcErr.Detail}
	if status == http.StatusInternalServerError && svcErr.Err != nil {
		body["details"] = svcErr.Err.Error()
		log.Error().Err(svcErr.Err).Str("detail", svcErr.Detail).Msg("Request failed")
	}

	c.JSON(status, body)
}
