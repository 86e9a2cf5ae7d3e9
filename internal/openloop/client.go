// Package openloop provides a REST client for OpenLoop-specific endpoints:
// intake form submission, booking widget URL generation, and lab facility
// lookups.
package openloop

import (
	"bytes"
	"context"
	"encoding/json"
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
	backendName    = "openloop"
	defaultTimeout = 15 * time.Second

	defaultFacilitiesURL = "https://api.integrations.clinic.openloophealth.com/labs/facilities"
	defaultLabRadius     = 50
)

// Valid argument sets for BookingWidgetURL.
var (
	validTherapyTypes = []string{"trt", "enclomiphene"}
	validVisitTypes   = []string{"initial", "refill"}
)

// Client is an OpenLoop REST API client.
type Client struct {
	cfg              *config.Config
	httpClient       *http.Client
	logger           *logging.Logger
	metrics          *metrics.BackendMetrics
	questionnaireURL string // overrides cfg.QuestionnaireURL() when set
	facilitiesURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithQuestionnaireURL overrides the questionnaire base URL. Used by tests.
func WithQuestionnaireURL(u string) Option {
	return func(c *Client) {
		c.questionnaireURL = u
	}
}

// WithFacilitiesURL overrides the lab facilities endpoint. Used by tests.
func WithFacilitiesURL(u string) Option {
	return func(c *Client) {
		c.facilitiesURL = u
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

// New creates a new OpenLoop API client.
func New(cfg *config.Config, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		cfg:           cfg,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        logger.WithBackend(backendName),
		facilitiesURL: defaultFacilitiesURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTrtForm submits a TRT intake form. The data payload is sent as-is
// under a top-level "data" key.
func (c *Client) CreateTrtForm(ctx context.Context, data map[string]any) (map[string]any, error) {
	base := c.questionnaireURL
	if base == "" {
		base = c.cfg.QuestionnaireURL()
	}

	payload, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return nil, fmt.Errorf("openloop: marshal form data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/create-form", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openloop: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out map[string]any
	if err := c.doJSON(req, "CreateTrtForm", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingWidgetURL builds a booking widget URL for the given therapy and
// visit type, with any extra query parameters merged in. Caller-supplied
// keys override the computed appointmentTypeId/providerId on collision.
// Invalid therapy or visit types fail locally, before any network call.
func (c *Client) BookingWidgetURL(therapyType, visitType string, params map[string]string) (string, error) {
	if therapyType == "" {
		therapyType = "trt"
	}
	if visitType == "" {
		visitType = "initial"
	}
	if !contains(validTherapyTypes, therapyType) {
		return "", fmt.Errorf("therapy_type must be one of: trt, enclomiphene")
	}
	if !contains(validVisitTypes, visitType) {
		return "", fmt.Errorf("visit_type must be one of: initial, refill")
	}

	q := url.Values{}
	q.Set("appointmentTypeId", c.cfg.AppointmentTypeIDs()[therapyType+"_"+visitType])
	q.Set("providerId", c.cfg.ProviderID())
	for k, v := range params {
		q.Set(k, v)
	}

	return c.cfg.BookingWidgetBaseURL() + "?" + q.Encode(), nil
}

// LabFacilitiesRequest selects lab draw facilities near a zip code.
type LabFacilitiesRequest struct {
	ZipCode string
	// Radius in miles; zero means 50.
	Radius int
	// IncludePSCDetails defaults to true when nil.
	IncludePSCDetails *bool
}

// GetLabFacilities retrieves lab facilities near a zip code.
func (c *Client) GetLabFacilities(ctx context.Context, r LabFacilitiesRequest) (map[string]any, error) {
	radius := r.Radius
	if radius == 0 {
		radius = defaultLabRadius
	}
	includePSC := true
	if r.IncludePSCDetails != nil {
		includePSC = *r.IncludePSCDetails
	}

	q := url.Values{}
	q.Set("zip_code", r.ZipCode)
	q.Set("radius", strconv.Itoa(radius))
	q.Set("include_psc_details", strconv.FormatBool(includePSC))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.facilitiesURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openloop: build request: %w", err)
	}

	var out map[string]any
	if err := c.doJSON(req, "GetLabFacilities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(req *http.Request, operation string, out any) error {
	start := time.Now()
	err := c.roundTrip(req, out)

	status := "ok"
	if err != nil {
		status = "error"
		c.logger.Warn("request failed", "operation", operation, "error", err)
	}
	c.metrics.ObserveRequest(backendName, operation, status)
	c.metrics.ObserveDuration(backendName, operation, time.Since(start).Seconds())
	return err
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiclient.NewAPIError(fmt.Sprintf("openloop request failed: %s", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiclient.NewAPIError(fmt.Sprintf("openloop read response: %s", err.Error()))
	}

	return apiclient.DecodeResponse(resp, body, out)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
