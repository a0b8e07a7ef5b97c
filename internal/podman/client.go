package podman

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/ffjson/ffjson"

	"github.com/vpikulik/prometheus-podman-exporter/internal/models"
)

// Client talks to the podman service over its libpod REST API. It is safe
// for concurrent use; all calls share one pooled transport.
type Client struct {
	http       *http.Client
	base       string
	apiVersion string
	uri        string
}

// APIError is a non-200 response from the engine.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("podman api status %d: %s", e.StatusCode, e.Message)
}

// NewClient builds a client for the socket URI. unix:// dials a local
// socket, tcp:// and http:// reach a plain remote service, https:// a TLS
// one.
func NewClient(uri string, config Config) (*Client, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse podman uri %q: %w", uri, err)
	}

	transport := &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}

	var base string
	switch parsed.Scheme {
	case "unix":
		socket := parsed.Path
		if socket == "" {
			return nil, fmt.Errorf("podman uri %q has no socket path", uri)
		}
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			dialer := net.Dialer{}
			return dialer.DialContext(ctx, "unix", socket)
		}
		// The host part of request URLs is ignored once the dialer is
		// pinned to the socket.
		base = "http://d"
	case "tcp", "http":
		if parsed.Host == "" {
			return nil, fmt.Errorf("podman uri %q has no host", uri)
		}
		base = "http://" + parsed.Host
	case "https":
		if parsed.Host == "" {
			return nil, fmt.Errorf("podman uri %q has no host", uri)
		}
		base = "https://" + parsed.Host
	default:
		return nil, fmt.Errorf("unsupported podman uri scheme %q", parsed.Scheme)
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
		base:       base,
		apiVersion: config.APIVersion,
		uri:        uri,
	}, nil
}

// URI returns the socket URI the client was built from.
func (c *Client) URI() string {
	return c.uri
}

// ListContainers fetches the full container inventory, stopped containers
// included.
func (c *Client) ListContainers(ctx context.Context) ([]models.ListContainer, error) {
	body, err := c.get(ctx, c.libpod("containers/json?all=true"))
	if err != nil {
		return nil, err
	}

	var containers []models.ListContainer
	if err := ffjson.Unmarshal(body, &containers); err != nil {
		return nil, fmt.Errorf("decode container list: %w", err)
	}
	return containers, nil
}

// Stats fetches one non-streaming statistics snapshot. An engine-side error
// embedded in the report does not fail the call, and Stats stays nil when
// the payload carried no samples list.
func (c *Client) Stats(ctx context.Context) (*models.StatsReport, error) {
	body, err := c.get(ctx, c.libpod("containers/stats?stream=false"))
	if err != nil {
		return nil, err
	}

	report := &models.StatsReport{}
	if err := ffjson.Unmarshal(body, report); err != nil {
		return nil, fmt.Errorf("decode stats report: %w", err)
	}
	return report, nil
}

// Ping probes the API service. Used by the readiness check.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/_ping")
	return err
}

func (c *Client) libpod(endpoint string) string {
	return fmt.Sprintf("/%s/libpod/%s", c.apiVersion, endpoint)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage digs the message out of podman's JSON error body, falling
// back to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Cause   string `json:"cause"`
		Message string `json:"message"`
	}
	if err := ffjson.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
