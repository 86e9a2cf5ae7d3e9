// Package junction provides a REST client for the Junction (Vital) lab
// results API. Every request authenticates with the x-vital-api-key header.
package junction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/openloophealth/openloop-client-go/internal/apiclient"
	"github.com/openloophealth/openloop-client-go/internal/config"
	"github.com/openloophealth/openloop-client-go/internal/observability/metrics"
	"github.com/openloophealth/openloop-client-go/pkg/logging"
)

const (
	backendName    = "junction"
	defaultTimeout = 15 * time.Second
	defaultRadius  = 50
)

// Client is a Junction/Vital REST API client.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BackendMetrics
	baseURL    string // overrides cfg.VitalAPIURL() when set
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Vital API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.BackendMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a new Junction API client.
func New(cfg *config.Config, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.WithBackend(backendName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetLabResults retrieves the result set for a lab order.
func (c *Client) GetLabResults(ctx context.Context, orderID string) (*LabResultsReport, error) {
	path := fmt.Sprintf("/order/%s/result", url.PathEscape(orderID))
	var out LabResultsReport
	if err := c.getJSON(ctx, "GetLabResults", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrderPSCInfo lists patient service centers near an order's patient.
// Radius is in miles; zero means 50.
func (c *Client) GetOrderPSCInfo(ctx context.Context, orderID string, radius int) (map[string]any, error) {
	q := url.Values{}
	q.Set("radius", strconv.Itoa(radiusOrDefault(radius)))

	path := fmt.Sprintf("/order/%s/psc/info", url.PathEscape(orderID))
	var out map[string]any
	if err := c.getJSON(ctx, "GetOrderPSCInfo", path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAreaInfo reports lab coverage details for a zip code.
func (c *Client) GetAreaInfo(ctx context.Context, zipCode string, radius int) (map[string]any, error) {
	q := url.Values{}
	q.Set("zip_code", zipCode)
	q.Set("radius", strconv.Itoa(radiusOrDefault(radius)))

	var out map[string]any
	if err := c.getJSON(ctx, "GetAreaInfo", "/area/info", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPSCInfo lists patient service centers for a zip code and lab.
func (c *Client) GetPSCInfo(ctx context.Context, zipCode, labID string, radius int) (map[string]any, error) {
	q := url.Values{}
	q.Set("zip_code", zipCode)
	q.Set("lab_id", labID)
	q.Set("radius", strconv.Itoa(radiusOrDefault(radius)))

	var out map[string]any
	if err := c.getJSON(ctx, "GetPSCInfo", "/psc/info", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLabRequisition downloads the requisition PDF for an order. The raw
// bytes are returned untouched; failures still go through the shared
// response classification.
func (c *Client) GetLabRequisition(ctx context.Context, orderID string) ([]byte, error) {
	path := fmt.Sprintf("/order/%s/requisition/pdf", url.PathEscape(orderID))

	req, err := c.newRequest(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/pdf")

	var body []byte
	err = c.observe("GetLabRequisition", func() error {
		resp, body2, err := c.send(req)
		if err != nil {
			return err
		}
		if err := apiclient.CheckResponse(resp, body2); err != nil {
			return err
		}
		body = body2
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, q url.Values, out any) error {
	req, err := c.newRequest(ctx, path, q)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")

	return c.observe(operation, func() error {
		resp, body, err := c.send(req)
		if err != nil {
			return err
		}
		return apiclient.DecodeResponse(resp, body, out)
	})
}

func (c *Client) newRequest(ctx context.Context, path string, q url.Values) (*http.Request, error) {
	base := c.baseURL
	if base == "" {
		base = c.cfg.VitalAPIURL()
	}
	endpoint := base + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("junction: build request: %w", err)
	}
	req.Header.Set("x-vital-api-key", c.cfg.VitalAPIKey)
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, apiclient.NewAPIError(fmt.Sprintf("junction request failed: %s", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, apiclient.NewAPIError(fmt.Sprintf("junction read response: %s", err.Error()))
	}
	return resp, body, nil
}

func (c *Client) observe(operation string, fn func() error) error {
	start := time.Now()
	err := fn()

	status := "ok"
	if err != nil {
		status = "error"
		c.logger.Warn("request failed", "operation", operation, "error", err)
	}
	c.metrics.ObserveRequest(backendName, operation, status)
	c.metrics.ObserveDuration(backendName, operation, time.Since(start).Seconds())
	return err
}

func radiusOrDefault(radius int) int {
	if radius == 0 {
		return defaultRadius
	}
	return radius
}
