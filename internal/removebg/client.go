package removebg

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const removalPath = "/v1.0/removebg"

// Client calls the remove.bg HTTP API. The image is submitted base64-encoded
// with size and type left on auto, matching the API defaults for single-image
// removal. One request maps to one API call; no retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a remove.bg client. baseURL is the API root
// (e.g. "https://api.remove.bg"); it is overridable for tests.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// Remove submits image bytes and returns the processed image (background
// made transparent, PNG). API failures are returned as *Error carrying the
// reported error list and HTTP status.
func (c *Client) Remove(ctx context.Context, image []byte) ([]byte, error) {
	form := url.Values{}
	form.Set("image_file_b64", base64.StdEncoding.EncodeToString(image))
	form.Set("size", "auto")
	form.Set("type", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+removalPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call remove.bg: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read remove.bg response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

// decodeError parses the {"errors":[{"title","detail","code"}]} failure body.
// A body that does not parse still yields an *Error so callers get a uniform
// failure type.
func decodeError(status int, body []byte) *Error {
	var payload struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &Error{StatusCode: status}
	}
	return &Error{StatusCode: status, Errors: payload.Errors}
}
