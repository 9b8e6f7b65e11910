package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/farmwatch/internal/config"
	"github.com/mamadbah2/farmwatch/internal/monitoring"
)

// AlertDigest is the payload pushed to the operator's webhook after a scan.
type AlertDigest struct {
	FarmID      string             `json:"farm_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Alerts      []monitoring.Alert `json:"alerts"`
}

// Client delivers alert digests to an external notification endpoint.
type Client interface {
	SendAlertDigest(ctx context.Context, digest AlertDigest) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a webhook client from the provided configuration.
func NewClient(cfg config.WebhookConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.URL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &APIClient{httpClient: restyClient}
}

// SendAlertDigest posts the digest and treats any non-2xx as an error.
func (c *APIClient) SendAlertDigest(ctx context.Context, digest AlertDigest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(digest).
		Post("")
	if err != nil {
		return fmt.Errorf("post alert digest: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}

	return nil
}
