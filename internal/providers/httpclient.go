package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPError is a non-2xx response from a provider API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	return fmt.Sprintf("provider api error: %d - %s", e.StatusCode, body)
}

// jsonClient is the bearer-authenticated JSON transport shared by the
// Replicate and DashScope clients.
type jsonClient struct {
	token string
	http  *http.Client
}

func newJSONClient(token string, hc *http.Client) jsonClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return jsonClient{token: token, http: hc}
}

// doOnce sends body as JSON to url and returns the raw response bytes. A
// non-2xx status yields *HTTPError.
func (c jsonClient) doOnce(ctx context.Context, method, url string, body any, headers map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// do is doOnce plus JSON decoding into out. There are no retries.
func (c jsonClient) do(ctx context.Context, method, url string, body any, headers map[string]string, out any) error {
	raw, err := c.doOnce(ctx, method, url, body, headers)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
