package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultReplicateBaseURL is the public Replicate API root.
const DefaultReplicateBaseURL = "https://api.replicate.com/v1"

// ReplicateClient runs model predictions on Replicate. It is constructed
// once and shared by the Ideogram and Flux adapters.
type ReplicateClient struct {
	baseURL string
	api     jsonClient
	// PollInterval spaces status checks while a prediction is still running.
	PollInterval time.Duration
}

// NewReplicateClient returns a client for baseURL (DefaultReplicateBaseURL
// when empty). A nil hc uses a plain http.Client.
func NewReplicateClient(baseURL, token string, hc *http.Client) *ReplicateClient {
	if baseURL == "" {
		baseURL = DefaultReplicateBaseURL
	}
	return &ReplicateClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		api:          newJSONClient(token, hc),
		PollInterval: time.Second,
	}
}

// Prediction is the subset of a Replicate prediction the adapters read.
type Prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  any             `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func (p *Prediction) terminal() bool {
	switch p.Status {
	case "succeeded", "failed", "canceled":
		return true
	}
	return false
}

// OutputURLs decodes Output, which is either a single URL or a list.
func (p *Prediction) OutputURLs() []string {
	if len(p.Output) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(p.Output, &one); err == nil {
		if one == "" {
			return nil
		}
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil {
		return many
	}
	return nil
}

// Run creates a prediction for model ("owner/name") and waits for it to
// finish, polling until a terminal status or ctx is done.
func (c *ReplicateClient) Run(ctx context.Context, model string, input map[string]any) (*Prediction, error) {
	if c == nil || c.api.token == "" {
		return nil, errors.New("REPLICATE_API_TOKEN is not configured")
	}
	url := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, model)

	var p Prediction
	if err := c.api.do(ctx, http.MethodPost, url, map[string]any{"input": input}, map[string]string{"Prefer": "wait"}, &p); err != nil {
		return nil, err
	}

	for !p.terminal() {
		if p.URLs.Get == "" {
			return nil, fmt.Errorf("prediction %s is %s without a status url", p.ID, p.Status)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}
		if err := c.api.do(ctx, http.MethodGet, p.URLs.Get, nil, nil, &p); err != nil {
			return nil, err
		}
	}

	if p.Status != "succeeded" {
		msg := fmt.Sprint(p.Error)
		if p.Error == nil || msg == "" {
			msg = p.Status
		}
		return &p, fmt.Errorf("prediction %s %s: %s", p.ID, p.Status, msg)
	}
	return &p, nil
}
