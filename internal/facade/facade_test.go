package facade

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openloophealth/openloop-client-go/internal/apiclient"
	"github.com/openloophealth/openloop-client-go/internal/config"
	"github.com/openloophealth/openloop-client-go/internal/healthie"
	"github.com/openloophealth/openloop-client-go/internal/junction"
	"github.com/openloophealth/openloop-client-go/internal/openloop"
)

func newFacade(t *testing.T, healthieHandler, openloopHandler http.HandlerFunc) *Facade {
	t.Helper()

	cfg := config.New()
	cfg.HealthieAPIKey = "key"

	var healthieClient *healthie.Client
	if healthieHandler != nil {
		hs := httptest.NewServer(healthieHandler)
		t.Cleanup(hs.Close)
		healthieClient = healthie.New(cfg, nil, healthie.WithEndpoint(hs.URL))
	} else {
		healthieClient = healthie.New(cfg, nil)
	}

	var openloopClient *openloop.Client
	if openloopHandler != nil {
		os := httptest.NewServer(openloopHandler)
		t.Cleanup(os.Close)
		openloopClient = openloop.New(cfg, nil, openloop.WithQuestionnaireURL(os.URL))
	} else {
		openloopClient = openloop.New(cfg, nil)
	}

	return New(healthieClient, openloopClient, junction.New(cfg, nil), nil)
}

// newLabFacade points the junction client at the given handler; the other
// backends are never called.
func newLabFacade(t *testing.T, handler http.HandlerFunc) *Facade {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	cfg := config.New()
	cfg.VitalAPIKey = "vital-key"

	return New(
		healthie.New(cfg, nil),
		openloop.New(cfg, nil),
		junction.New(cfg, nil, junction.WithBaseURL(ts.URL)),
		nil,
	)
}

func graphqlFixture(data map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
}

func TestPatientReadFlattensLocation(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"user": map[string]any{
			"id":           "123456",
			"name":         "John Doe",
			"email":        "john@example.com",
			"dietitian_id": "3483153",
			"location":     map[string]any{"city": "Austin", "state": "TX", "zip": "78701"},
		},
	}), nil)

	p, err := f.Patient(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "3483153", p.DietitianID)
	require.NotNil(t, p.Location)
	assert.Equal(t, "Austin", p.Location.City)
}

func TestPatientReadPropagatesAPIError(t *testing.T) {
	f := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}, nil)

	_, err := f.Patient(context.Background(), "123456")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr), "reads must fail loudly with the classified error")
	assert.Equal(t, "Server Error: boom", apiErr.Message)
}

func TestPatientAppointmentsFlattened(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"appointmentsCount": 1,
		"appointments": []map[string]any{{
			"id":               "999",
			"date":             "2024-01-20T10:00:00Z",
			"contact_type":     "Video",
			"length":           30,
			"provider":         map[string]any{"full_name": "Dr. Smith"},
			"appointment_type": map[string]any{"name": "TRT Initial", "id": "123"},
		}},
	}), nil)

	appointments, err := f.PatientAppointments(context.Background(), "123456", "")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "Dr. Smith", appointments[0].ProviderName)
	assert.Equal(t, "TRT Initial", appointments[0].AppointmentTypeName)
	assert.Equal(t, "123", appointments[0].AppointmentTypeID)
}

func TestLabResultsRead(t *testing.T) {
	f := newLabFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order/order-1/result", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"metadata": map[string]any{
				"patient":       "John Doe",
				"age":           34,
				"date_reported": "2024-01-15",
			},
			"results": []map[string]any{{
				"name":               "Testosterone, Total",
				"value":              650,
				"unit":               "ng/dL",
				"min_range_value":    300,
				"max_range_value":    1000,
				"is_above_max_range": false,
				"is_below_min_range": false,
			}},
		})
	})

	results, err := f.LabResults(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", results.Metadata.Patient)
	assert.Equal(t, "2024-01-15", results.Metadata.DateReported)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "Testosterone, Total", results.Results[0].Name)
	assert.Equal(t, "ng/dL", results.Results[0].Unit)
}

func TestLabResultsReadPropagatesAPIError(t *testing.T) {
	f := newLabFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("order missing"))
	})

	_, err := f.LabResults(context.Background(), "order-1")
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Not Found: order missing", apiErr.Message)
}

func TestLabRequisitionRead(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake requisition")
	f := newLabFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	})

	body, err := f.LabRequisition(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, pdf, body)
}

func TestPSCInfoRead(t *testing.T) {
	f := newLabFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/psc/info", r.URL.Path)
		assert.Equal(t, "90210", r.URL.Query().Get("zip_code"))
		_ = json.NewEncoder(w).Encode(map[string]any{"patient_service_centers": []any{}})
	})

	out, err := f.PSCInfo(context.Background(), "90210", "27", 0)
	require.NoError(t, err)
	assert.Contains(t, out, "patient_service_centers")
}

func TestCreatePatientValidationMessages(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createClient": map[string]any{
			"user":     nil,
			"messages": []map[string]any{{"field": "email", "message": "is already taken"}},
		},
	}), nil)

	res := f.CreatePatient(context.Background(), healthie.CreateClientInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", DietitianID: "3483153",
	})
	assert.Nil(t, res.Patient)
	assert.Equal(t, []string{"email: is already taken"}, res.Errors)
}

func TestCreatePatientSuccess(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createClient": map[string]any{
			"user": map[string]any{
				"id":         "777",
				"first_name": "John",
				"last_name":  "Doe",
				"email":      "john@example.com",
			},
			"messages": nil,
		},
	}), nil)

	res := f.CreatePatient(context.Background(), healthie.CreateClientInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", DietitianID: "3483153",
	})
	require.NotNil(t, res.Patient)
	assert.Equal(t, "777", res.Patient.ID)
	assert.Empty(t, res.Errors)
}

func TestCreatePatientAPIErrorFoldedIntoEnvelope(t *testing.T) {
	f := newFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("denied"))
	}, nil)

	res := f.CreatePatient(context.Background(), healthie.CreateClientInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com",
	})
	assert.Nil(t, res.Patient)
	assert.Equal(t, []string{"Unauthorized: Check your API credentials"}, res.Errors)
}

func TestCreateInvoiceSuccessEnvelope(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createRequestedPayment": map[string]any{
			"requestedPayment": map[string]any{"id": "inv-123"},
			"messages":         nil,
		},
	}), nil)

	res := f.CreateInvoice(context.Background(), healthie.CreateInvoiceInput{
		RecipientID: "123456", Price: "299",
	})
	assert.True(t, res.Success)
	assert.Equal(t, "inv-123", res.InvoiceID)
	assert.Equal(t, []string{}, res.Errors)
}

func TestCreateInvoiceFailureMessages(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createRequestedPayment": map[string]any{
			"requestedPayment": nil,
			"messages":         []map[string]any{{"field": "price", "message": "can't be blank"}},
		},
	}), nil)

	res := f.CreateInvoice(context.Background(), healthie.CreateInvoiceInput{RecipientID: "123456"})
	assert.False(t, res.Success)
	assert.Empty(t, res.InvoiceID)
	assert.Equal(t, []string{"price: can't be blank"}, res.Errors)
}

func TestCreateMetricEntrySuccess(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createEntry": map[string]any{
			"entry":    map[string]any{"id": "m-1", "category": "Weight", "type": "MetricEntry"},
			"messages": nil,
		},
	}), nil)

	res := f.CreateMetricEntry(context.Background(), healthie.CreateEntryInput{
		Category: "Weight", Type: "MetricEntry", MetricStat: "180", UserID: "123456",
	})
	assert.True(t, res.Success)
	assert.Equal(t, "m-1", res.EntryID)
	assert.Empty(t, res.Errors)
}

func TestUploadDocumentSuccess(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createDocument": map[string]any{
			"document": map[string]any{"id": "doc-5", "owner": map[string]any{"id": "123456"}},
			"messages": nil,
		},
	}), nil)

	res := f.UploadDocument(context.Background(), healthie.CreateDocumentInput{
		FileString: "data:image/jpeg;base64,abc", DisplayName: "Lab Results", RelUserID: "123456",
	})
	require.NotNil(t, res.Document)
	assert.True(t, res.Document.Success)
	assert.Equal(t, "doc-5", res.Document.ID)
	assert.Equal(t, "123456", res.Document.OwnerID)
	assert.Empty(t, res.Errors)
}

func TestUploadDocumentFailureMessages(t *testing.T) {
	f := newFacade(t, graphqlFixture(map[string]any{
		"createDocument": map[string]any{
			"document": nil,
			"messages": []map[string]any{{"field": "file_string", "message": "is invalid"}},
		},
	}), nil)

	res := f.UploadDocument(context.Background(), healthie.CreateDocumentInput{
		FileString: "junk", DisplayName: "x", RelUserID: "1",
	})
	assert.Nil(t, res.Document)
	assert.Equal(t, []string{"file_string: is invalid"}, res.Errors)
}

func TestCreateTrtFormSuccess(t *testing.T) {
	var sent map[string]any
	f := newFacade(t, nil, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		sent, _ = body["data"].(map[string]any)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "form-1"})
	})

	res := f.CreateTrtForm(context.Background(), "123456", 2156890, map[string]any{
		"modality": "sync_visit",
	})
	require.NotNil(t, res.Response)
	assert.True(t, res.Response.Success)
	assert.Equal(t, "Form created successfully", res.Response.Message)
	assert.Equal(t, "form-1", res.Response.Data["id"])
	assert.Equal(t, []string{}, res.Errors)

	// patient_id and formReferenceId are merged into the submitted payload.
	assert.Equal(t, "123456", sent["patient_id"])
	assert.Equal(t, float64(2156890), sent["formReferenceId"])
	assert.Equal(t, "sync_visit", sent["modality"])
}

func TestCreateTrtFormFailure(t *testing.T) {
	f := newFacade(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad form"))
	})

	res := f.CreateTrtForm(context.Background(), "123456", 2156890, nil)
	require.NotNil(t, res.Response)
	assert.False(t, res.Response.Success)
	assert.Equal(t, "Bad Request: bad form", res.Response.Message)
	assert.Nil(t, res.Response.Data)
	assert.Equal(t, []string{"Bad Request: bad form"}, res.Errors)
}
