// Package notification wraps the outbound call to the notification service.
// The service runs its own retry policy around its storage insert; from this
// side the call either returns a created id or fails, and the caller decides
// what to compensate.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/volunteerhub/config"
	"example.com/volunteerhub/internal/models"
)

// ErrUpstream is returned for any non-success outcome: non-201 status,
// undecodable response, or network-level failure.
var ErrUpstream = errors.New("notification service error")

// Client posts notifications to the notification service.
type Client struct {
	serviceURL string
	httpClient *http.Client
}

// NewClient creates a notification client. The timeout bounds the whole
// call so a hung notifier cannot pin a request worker.
func NewClient(cfg config.NotificationConfig) *Client {
	return &Client{
		serviceURL: cfg.ServiceURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type notifyRequest struct {
	OrgID   string `json:"org_id"`
	Message string `json:"message"`
}

type notifyResponse struct {
	ID string `json:"id"`
}

// Notify sends a notification for an organization and returns the created
// notification id.
func (c *Client) Notify(ctx context.Context, orgID models.OrganizationID, message string) (models.NotificationID, error) {
	body, err := json.Marshal(notifyRequest{OrgID: orgID.String(), Message: message})
	if err != nil {
		return models.NotificationID{}, errors.Wrap(err, "failed to marshal notification request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, bytes.NewReader(body))
	if err != nil {
		return models.NotificationID{}, errors.Wrap(err, "failed to build notification request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NotificationID{}, errors.Wrapf(ErrUpstream, "notification service unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(detail)).
			Msg("Notification service rejected request")
		return models.NotificationID{}, errors.Wrapf(ErrUpstream, "notification service returned status %d", resp.StatusCode)
	}

	var payload notifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.NotificationID{}, errors.Wrapf(ErrUpstream, "undecodable notification response: %v", err)
	}

	id, err := models.ParseNotificationID(payload.ID)
	if err != nil {
		return models.NotificationID{}, errors.Wrapf(ErrUpstream, "notification service returned invalid id %q", payload.ID)
	}
	return id, nil
}
