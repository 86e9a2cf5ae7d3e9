// Package healthie provides a GraphQL client for the Healthie patient
// records API, reached either directly (Basic auth) or through the OpenLoop
// proxy (Bearer auth plus a tenant shard).
package healthie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openloophealth/openloop-client-go/internal/apiclient"
	"github.com/openloophealth/openloop-client-go/internal/config"
	"github.com/openloophealth/openloop-client-go/internal/observability/metrics"
	"github.com/openloophealth/openloop-client-go/pkg/logging"
)

const (
	backendName    = "healthie"
	defaultTimeout = 20 * time.Second

	// Filter values accepted by the appointments query.
	FilterAll      = "all"
	FilterUpcoming = "upcoming"
	FilterPast     = "past"
)

// Client is a Healthie GraphQL API client.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.BackendMetrics
	endpoint   string // overrides cfg.HealthieURL() when set
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint, bypassing the
// environment-resolved URL. Used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
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

// New creates a new Healthie API client.
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

// GetPatient fetches a patient by ID with full details.
func (c *Client) GetPatient(ctx context.Context, patientID string) (*User, error) {
	var out graphQLResponse[userData]
	if err := c.execute(ctx, "GetPatient", queryGetUser, map[string]any{"id": patientID}, &out); err != nil {
		return nil, err
	}
	return out.Data.User, nil
}

// SearchPatients searches patients by keyword (name, email, etc.).
func (c *Client) SearchPatients(ctx context.Context, keywords string) ([]User, error) {
	var out graphQLResponse[usersData]
	if err := c.execute(ctx, "SearchPatients", querySearchUsers, map[string]any{"keywords": keywords}, &out); err != nil {
		return nil, err
	}
	return out.Data.Users, nil
}

// CreatePatient creates a new patient (client) record.
func (c *Client) CreatePatient(ctx context.Context, input CreateClientInput) (*ClientMutationPayload, error) {
	var out graphQLResponse[createClientData]
	if err := c.execute(ctx, "CreatePatient", mutationCreateClient, map[string]any{"input": input}, &out); err != nil {
		return nil, err
	}
	return out.Data.CreateClient, nil
}

// UpdatePatient updates an existing patient's information.
func (c *Client) UpdatePatient(ctx context.Context, input UpdateClientInput) (*ClientMutationPayload, error) {
	var out graphQLResponse[updateClientData]
	if err := c.execute(ctx, "UpdatePatient", mutationUpdateClient, map[string]any{"input": input}, &out); err != nil {
		return nil, err
	}
	return out.Data.UpdateClient, nil
}

// UploadDocument uploads a base64-encoded document for a patient.
func (c *Client) UploadDocument(ctx context.Context, input CreateDocumentInput) (*DocumentPayload, error) {
	var out graphQLResponse[createDocumentData]
	if err := c.execute(ctx, "UploadDocument", mutationCreateDocument, map[string]any{"input": input}, &out); err != nil {
		return nil, err
	}
	return out.Data.CreateDocument, nil
}

// CreateMetricEntry creates a metric entry (e.g. weight) for a patient.
func (c *Client) CreateMetricEntry(ctx context.Context, input CreateEntryInput) (*EntryPayload, error) {
	var out graphQLResponse[createEntryData]
	if err := c.execute(ctx, "CreateMetricEntry", mutationCreateEntry, input, &out); err != nil {
		return nil, err
	}
	return out.Data.CreateEntry, nil
}

// CreateInvoice creates a requested payment for a patient.
func (c *Client) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*RequestedPaymentPayload, error) {
	var out graphQLResponse[createRequestedPaymentData]
	if err := c.execute(ctx, "CreateInvoice", mutationCreateRequestedPayment, input, &out); err != nil {
		return nil, err
	}
	return out.Data.CreateRequestedPayment, nil
}

// GetPatientAppointments lists a patient's appointments. Filter is one of
// "all", "upcoming" or "past"; empty defaults to "all".
func (c *Client) GetPatientAppointments(ctx context.Context, userID, filter string) (*AppointmentList, error) {
	if filter == "" {
		filter = FilterAll
	}
	var out graphQLResponse[appointmentsData]
	if err := c.execute(ctx, "GetPatientAppointments", queryAppointments, map[string]any{"user_id": userID, "filter": filter}, &out); err != nil {
		return nil, err
	}
	return &AppointmentList{Count: out.Data.AppointmentsCount, Appointments: out.Data.Appointments}, nil
}

// GetAppointment fetches a single appointment. When the appointment carries
// an external videochat URL and an attending user with both full name and
// id, a ready-to-join AppointmentURL is derived on the returned record.
func (c *Client) GetAppointment(ctx context.Context, appointmentID string) (*Appointment, error) {
	var out graphQLResponse[appointmentData]
	if err := c.execute(ctx, "GetAppointment", queryAppointment, map[string]any{"id": appointmentID}, &out); err != nil {
		return nil, err
	}
	appt := out.Data.Appointment
	deriveAppointmentURL(appt)
	return appt, nil
}

// CancelAppointment cancels an appointment by setting pm_status to
// "Cancelled" through updateAppointment.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) (*Appointment, error) {
	input := map[string]any{"id": appointmentID, "pm_status": "Cancelled"}
	var out graphQLResponse[updateAppointmentData]
	if err := c.execute(ctx, "CancelAppointment", mutationUpdateAppointment, map[string]any{"input": input}, &out); err != nil {
		return nil, err
	}
	return out.Data.UpdateAppointment.Appointment, nil
}

// GetFormAnswerGroup fetches a completed intake form by ID.
func (c *Client) GetFormAnswerGroup(ctx context.Context, formAnswerGroupID string) (*FormAnswerGroup, error) {
	var out graphQLResponse[formAnswerGroupData]
	if err := c.execute(ctx, "GetFormAnswerGroup", queryFormAnswerGroup, map[string]any{"id": formAnswerGroupID}, &out); err != nil {
		return nil, err
	}
	return out.Data.FormAnswerGroup, nil
}

func (c *Client) execute(ctx context.Context, operation, query string, variables any, out any) error {
	start := time.Now()
	err := c.do(ctx, query, variables, out)

	status := "ok"
	if err != nil {
		status = "error"
		c.logger.Warn("request failed", "operation", operation, "error", err)
	}
	c.metrics.ObserveRequest(backendName, operation, status)
	c.metrics.ObserveDuration(backendName, operation, time.Since(start).Seconds())
	return err
}

func (c *Client) do(ctx context.Context, query string, variables any, out any) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("healthie: marshal request: %w", err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = c.cfg.HealthieURL()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("healthie: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("AuthorizationSource", "API")
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiclient.NewAPIError(fmt.Sprintf("healthie request failed: %s", err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiclient.NewAPIError(fmt.Sprintf("healthie read response: %s", err.Error()))
	}

	return apiclient.DecodeResponse(resp, body, out)
}

// setAuthHeaders picks the auth scheme: a configured OpenLoop key means
// Bearer auth through the proxy (with the shard header when present),
// otherwise the direct Healthie Basic key is used.
func (c *Client) setAuthHeaders(req *http.Request) {
	if c.cfg.OpenLoopAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.OpenLoopAPIKey)
		if c.cfg.HealthieAuthorizationShard != "" {
			req.Header.Set("AuthorizationShard", c.cfg.HealthieAuthorizationShard)
		}
		return
	}
	req.Header.Set("Authorization", "Basic "+c.cfg.HealthieAPIKey)
}

func deriveAppointmentURL(a *Appointment) {
	if a == nil || a.ExternalVideochatURL == "" || a.User == nil {
		return
	}
	if a.User.FullName == "" || a.User.ID == "" {
		return
	}
	a.AppointmentURL = fmt.Sprintf("%s?username=%s&autocheckin=false&pid=%s",
		a.ExternalVideochatURL, url.QueryEscape(a.User.FullName), a.User.ID)
}
