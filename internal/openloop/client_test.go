package openloop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openloophealth/openloop-client-go/internal/config"
)

func TestCreateTrtForm(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "form-1", "status": "created"})
	}))
	defer ts.Close()

	c := New(config.New(), nil, WithQuestionnaireURL(ts.URL))
	out, err := c.CreateTrtForm(context.Background(), map[string]any{
		"patient_id":      "123456",
		"formReferenceId": 2156890,
		"modality":        "sync_visit",
	})
	require.NoError(t, err)

	assert.Equal(t, "/create-form", gotPath)
	data, ok := gotBody["data"].(map[string]any)
	require.True(t, ok, "payload should nest under data: %v", gotBody)
	assert.Equal(t, "123456", data["patient_id"])
	assert.Equal(t, "sync_visit", data["modality"])
	assert.Equal(t, "created", out["status"])
}

func TestBookingWidgetURLDefaults(t *testing.T) {
	cfg := config.New()
	c := New(cfg, nil)

	raw, err := c.BookingWidgetURL("", "", nil)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, cfg.BookingWidgetBaseURL(), parsed.Scheme+"://"+parsed.Host+parsed.Path)
	q := parsed.Query()
	assert.Equal(t, cfg.AppointmentTypeIDs()["trt_initial"], q.Get("appointmentTypeId"))
	assert.Equal(t, cfg.ProviderID(), q.Get("providerId"))
}

func TestBookingWidgetURLMergesParams(t *testing.T) {
	cfg := config.New()
	c := New(cfg, nil)

	raw, err := c.BookingWidgetURL("enclomiphene", "refill", map[string]string{
		"firstName": "John",
		"lastName":  "Doe",
		"state":     "CA",
	})
	require.NoError(t, err)

	q, err := url.ParseQuery(raw[len(cfg.BookingWidgetBaseURL())+1:])
	require.NoError(t, err)
	assert.Equal(t, cfg.AppointmentTypeIDs()["enclomiphene_refill"], q.Get("appointmentTypeId"))
	assert.Equal(t, "John", q.Get("firstName"))
	assert.Equal(t, "CA", q.Get("state"))
}

func TestBookingWidgetURLCallerOverridesComputed(t *testing.T) {
	cfg := config.New()
	c := New(cfg, nil)

	raw, err := c.BookingWidgetURL("trt", "initial", map[string]string{
		"providerId": "override-77",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "override-77", parsed.Query().Get("providerId"))
}

func TestBookingWidgetURLInvalidTherapyType(t *testing.T) {
	c := New(config.New(), nil)
	_, err := c.BookingWidgetURL("invalid", "initial", nil)
	require.Error(t, err)
	assert.Equal(t, "therapy_type must be one of: trt, enclomiphene", err.Error())
}

func TestBookingWidgetURLInvalidVisitType(t *testing.T) {
	c := New(config.New(), nil)
	_, err := c.BookingWidgetURL("trt", "invalid", nil)
	require.Error(t, err)
	assert.Equal(t, "visit_type must be one of: initial, refill", err.Error())
}

func TestGetLabFacilitiesDefaults(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"facilities": []any{}})
	}))
	defer ts.Close()

	c := New(config.New(), nil, WithFacilitiesURL(ts.URL))
	_, err := c.GetLabFacilities(context.Background(), LabFacilitiesRequest{ZipCode: "90210"})
	require.NoError(t, err)

	assert.Equal(t, "90210", gotQuery.Get("zip_code"))
	assert.Equal(t, "50", gotQuery.Get("radius"))
	assert.Equal(t, "true", gotQuery.Get("include_psc_details"))
}

func TestGetLabFacilitiesExplicit(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"facilities": []any{}})
	}))
	defer ts.Close()

	off := false
	c := New(config.New(), nil, WithFacilitiesURL(ts.URL))
	_, err := c.GetLabFacilities(context.Background(), LabFacilitiesRequest{
		ZipCode:           "78701",
		Radius:            25,
		IncludePSCDetails: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, "25", gotQuery.Get("radius"))
	assert.Equal(t, "false", gotQuery.Get("include_psc_details"))
}

func TestGetLabFacilitiesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(config.New(), nil, WithFacilitiesURL(ts.URL))
	_, err := c.GetLabFacilities(context.Background(), LabFacilitiesRequest{ZipCode: "90210"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Server Error")
}
