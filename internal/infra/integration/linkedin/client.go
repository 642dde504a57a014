package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/linkreach/internal/entity"
)

// Client is the outbound transport. There is no official messaging API to
// call yet, so with an empty base URL the client runs in simulation mode:
// it logs the send and reports success. The real automation bridge plugs in
// behind the same two methods.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SendConnectionRequest(ctx context.Context, p *entity.Prospect, message string) error {
	if c.baseURL == "" {
		log.Printf("🔗 [SIMULATED] Connection request to %s (%d chars)", p.ProfileURL, len(message))
		return nil
	}

	payload := sendInviteRequest{
		ProfileURL: p.ProfileURL,
		Message:    message,
	}
	return c.post(ctx, "/invitations", payload)
}

func (c *Client) SendMessage(ctx context.Context, p *entity.Prospect, message string) error {
	if c.baseURL == "" {
		log.Printf("💬 [SIMULATED] Message to %s (%d chars)", p.ProfileURL, len(message))
		return nil
	}

	payload := sendMessageRequest{
		ProfileURL: p.ProfileURL,
		Body:       message,
	}
	return c.post(ctx, "/messages", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transport request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		var apiResp sendResponse
		if json.Unmarshal(body, &apiResp) == nil && apiResp.Error != "" {
			return fmt.Errorf("transport rejected the send (%d): %s", resp.StatusCode, apiResp.Error)
		}
		return fmt.Errorf("transport rejected the send (%d): %s", resp.StatusCode, string(body))
	}

	return nil
}
