package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"event-storefront/internal/models"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Client talks to the ticketing backend's REST API. The storefront owns no
// data of its own; everything it renders comes through here.
//
// A Client is cheap to copy via WithToken: clones share the HTTP transport
// and the response cache, differing only in the bearer token they attach.
type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
	cache   *Cache
	token   string
}

// NewClient creates an API client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
		cache:   NewCache(),
	}
}

// WithToken returns a copy of the client that authenticates as the holder of
// token. An empty token yields an anonymous client.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// APIError is a non-2xx backend response, surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// get issues a GET and decodes the JSON response into out. When cacheKey is
// non-empty the response is served from / stored in the cache.
func (c *Client) get(ctx context.Context, path string, query url.Values, cacheKey string, out interface{}) error {
	if cacheKey != "" {
		if body, ok := c.cache.Get(c.scopedKey(cacheKey)); ok {
			return json.Unmarshal(body, out)
		}
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}

	if cacheKey != "" {
		c.cache.Set(c.scopedKey(cacheKey), body)
	}
	return json.Unmarshal(body, out)
}

// send issues a mutating request (POST/PATCH) and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, payload, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrapf(err, "marshal %s %s request", method, path)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	body, err := c.do(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(ctx context.Context, method, fullURL string, reqBody io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s request", method)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, fullURL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s %s response", method, fullURL)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"url":      fullURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("backend request")

	// A 401 from any endpoint means the session is dead: callers clear
	// local state and force a redirect to /login.
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.Wrapf(models.ErrUnauthorized, "%s %s", method, fullURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: extractMessage(body)}
	}

	return body, nil
}

// scopedKey namespaces cache entries per bearer token so one signed-in
// user's orders never leak into another's render. The token prefix also lets
// mutations invalidate all of one user's entries under a path.
func (c *Client) scopedKey(key string) string {
	if c.token == "" {
		return key
	}
	return c.token + "#" + key
}

// invalidate drops this client's cached responses under the given path.
func (c *Client) invalidate(path string) {
	c.cache.Invalidate(c.scopedKey(path))
}

// asNotFound maps a 404 APIError onto the entity's sentinel error so callers
// can use errors.Is; every other error passes through unchanged.
func asNotFound(err error, sentinel error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return sentinel
	}
	return err
}

// extractMessage pulls a human-readable message out of the backend's error
// body; the raw body is the fallback.
func extractMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"error", "detail", "message"} {
			if msg, ok := payload[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
