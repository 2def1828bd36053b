// Package netcontrol talks to the external network-access-control API that
// re-enables a subscriber's PPPoE session on their router. The call is
// deliberately lossy: every transport error, non-success status or malformed
// response comes back as a failed Outcome, never as an error, so flaky device
// connectivity cannot break a payment transaction.
package netcontrol

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/pkg/httpclient"
)

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`

	// API credentials are held for out-of-band authentication at the control
	// service; they are not part of the enable-secret wire format.
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Client interface {
	EnableSubscriber(ctx context.Context, routerIP string, username string) Outcome
}

type Outcome struct {
	Success bool
	Message string
	Raw     *EnableResponse
}

type EnableRequest struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Username string `json:"username"`
}

type EnableResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type client struct {
	cfg  Config
	http httpclient.HTTPClient
}

func NewClient(cfg Config, http httpclient.HTTPClient) Client {
	return &client{cfg: cfg, http: http}
}

func (c *client) EnableSubscriber(ctx context.Context, routerIP string, username string) Outcome {
	payload, err := json.Marshal(EnableRequest{IP: routerIP, Port: c.cfg.Port, Username: username})
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.http.Post(ctx, c.cfg.BaseURL+"/pppoe/enable-secret", bytes.NewReader(payload),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return Outcome{Success: false, Message: err.Error()}
	}
	defer resp.Body.Close()

	var body EnableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Outcome{Success: false, Message: "malformed response from control API"}
	}

	message := body.Message
	if message == "" {
		message = "Success"
	}

	return Outcome{
		Success: resp.StatusCode == http.StatusOK && body.Success,
		Message: message,
		Raw:     &body,
	}
}
