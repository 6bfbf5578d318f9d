package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"traychat/config"
)

// Listing calls are quick metadata fetches; completions can run long on large
// prompts, so the two concerns get separate clients with explicit timeouts.
var (
	listClient = &http.Client{Timeout: 15 * time.Second}
	sendClient = &http.Client{Timeout: 120 * time.Second}
)

// doJSON performs one HTTP round trip with an optional JSON payload and
// returns the raw response body. Any transport failure or non-2xx status is
// an error; interpreting the body is the caller's concern.
func doJSON(ctx context.Context, hc *http.Client, method, url string, header http.Header, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if config.Debug {
			config.DebugLog.Printf("[Provider] %s %s failed: status %d", method, url, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(data))
	}

	return data, nil
}

// truncateBody keeps error messages readable when a provider returns a
// large HTML or JSON error page.
func truncateBody(data []byte) string {
	const max = 512
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}

func bearerHeader(apiKey string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+apiKey)
	return h
}
