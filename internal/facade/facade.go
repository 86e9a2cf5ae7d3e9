// Package facade presents every backend operation behind one surface with
// two operation kinds: reads return normalized data or fail with the
// backend's classified error; writes never fail on backend-reported
// validation problems and instead fold them into a result envelope.
package facade

import (
	"context"
	"fmt"

	"github.com/openloophealth/openloop-client-go/internal/healthie"
	"github.com/openloophealth/openloop-client-go/internal/junction"
	"github.com/openloophealth/openloop-client-go/internal/openloop"
	"github.com/openloophealth/openloop-client-go/pkg/logging"
)

// Facade composes the backend clients behind one normalized surface.
type Facade struct {
	healthie *healthie.Client
	openloop *openloop.Client
	junction *junction.Client
	logger   *logging.Logger
}

// New creates a Facade over the given backend clients.
func New(healthieClient *healthie.Client, openloopClient *openloop.Client, junctionClient *junction.Client, logger *logging.Logger) *Facade {
	if logger == nil {
		logger = logging.Default()
	}
	return &Facade{
		healthie: healthieClient,
		openloop: openloopClient,
		junction: junctionClient,
		logger:   logger,
	}
}

// Patient fetches one patient by ID. Returns (nil, nil) when the backend
// reports no such user without an HTTP-level error.
func (f *Facade) Patient(ctx context.Context, id string) (*Patient, error) {
	user, err := f.healthie.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapPatient(user), nil
}

// SearchPatients searches patients by keyword.
func (f *Facade) SearchPatients(ctx context.Context, keywords string) ([]Patient, error) {
	users, err := f.healthie.SearchPatients(ctx, keywords)
	if err != nil {
		return nil, err
	}
	patients := make([]Patient, 0, len(users))
	for i := range users {
		patients = append(patients, *mapPatient(&users[i]))
	}
	return patients, nil
}

// PatientAppointments lists a patient's appointments with nested provider
// and appointment type flattened. Filter is "all", "upcoming" or "past";
// empty means "all".
func (f *Facade) PatientAppointments(ctx context.Context, userID, filter string) ([]Appointment, error) {
	list, err := f.healthie.GetPatientAppointments(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	appointments := make([]Appointment, 0, len(list.Appointments))
	for i := range list.Appointments {
		appointments = append(appointments, mapAppointment(&list.Appointments[i]))
	}
	return appointments, nil
}

// LabResults fetches the normalized result set for a lab order.
func (f *Facade) LabResults(ctx context.Context, orderID string) (*LabResults, error) {
	report, err := f.junction.GetLabResults(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return mapLabResults(report), nil
}

// LabRequisition downloads the requisition PDF for a lab order.
func (f *Facade) LabRequisition(ctx context.Context, orderID string) ([]byte, error) {
	return f.junction.GetLabRequisition(ctx, orderID)
}

// OrderPSCInfo lists patient service centers near an order's patient.
// Radius is in miles; zero applies the backend default.
func (f *Facade) OrderPSCInfo(ctx context.Context, orderID string, radius int) (map[string]any, error) {
	return f.junction.GetOrderPSCInfo(ctx, orderID, radius)
}

// AreaInfo reports lab coverage details for a zip code.
func (f *Facade) AreaInfo(ctx context.Context, zipCode string, radius int) (map[string]any, error) {
	return f.junction.GetAreaInfo(ctx, zipCode, radius)
}

// PSCInfo lists patient service centers for a zip code and lab.
func (f *Facade) PSCInfo(ctx context.Context, zipCode, labID string, radius int) (map[string]any, error) {
	return f.junction.GetPSCInfo(ctx, zipCode, labID, radius)
}

// CreatePatient creates a patient. Backend validation messages become the
// envelope's errors; a present user with no messages is success.
func (f *Facade) CreatePatient(ctx context.Context, input healthie.CreateClientInput) PatientResult {
	payload, err := f.healthie.CreatePatient(ctx, input)
	if err != nil {
		return PatientResult{Errors: []string{err.Error()}}
	}
	return patientResultFromPayload(payload)
}

// UpdatePatient updates a patient, with the same envelope rules as
// CreatePatient.
func (f *Facade) UpdatePatient(ctx context.Context, input healthie.UpdateClientInput) PatientResult {
	payload, err := f.healthie.UpdatePatient(ctx, input)
	if err != nil {
		return PatientResult{Errors: []string{err.Error()}}
	}
	return patientResultFromPayload(payload)
}

// UploadDocument uploads a document for a patient.
func (f *Facade) UploadDocument(ctx context.Context, input healthie.CreateDocumentInput) UploadDocumentResult {
	payload, err := f.healthie.UploadDocument(ctx, input)
	if err != nil {
		return UploadDocumentResult{Errors: []string{err.Error()}}
	}
	if payload == nil || payload.Document == nil {
		return UploadDocumentResult{Errors: messagesToErrors(payloadMessages(payload))}
	}
	doc := &Document{ID: payload.Document.ID, Success: true}
	if payload.Document.Owner != nil {
		doc.OwnerID = payload.Document.Owner.ID
	}
	return UploadDocumentResult{Document: doc, Errors: []string{}}
}

// CreateMetricEntry records a metric entry (e.g. weight) for a patient.
func (f *Facade) CreateMetricEntry(ctx context.Context, input healthie.CreateEntryInput) CreateMetricEntryResult {
	payload, err := f.healthie.CreateMetricEntry(ctx, input)
	if err != nil {
		return CreateMetricEntryResult{Errors: []string{err.Error()}}
	}
	if payload == nil || payload.Entry == nil {
		var msgs []healthie.FieldMessage
		if payload != nil {
			msgs = payload.Messages
		}
		return CreateMetricEntryResult{Errors: messagesToErrors(msgs)}
	}
	return CreateMetricEntryResult{Success: true, EntryID: payload.Entry.ID, Errors: []string{}}
}

// CreateInvoice creates a requested payment for a patient.
func (f *Facade) CreateInvoice(ctx context.Context, input healthie.CreateInvoiceInput) CreateInvoiceResult {
	payload, err := f.healthie.CreateInvoice(ctx, input)
	if err != nil {
		return CreateInvoiceResult{Errors: []string{err.Error()}}
	}
	if payload == nil || payload.RequestedPayment == nil {
		var msgs []healthie.FieldMessage
		if payload != nil {
			msgs = payload.Messages
		}
		return CreateInvoiceResult{Errors: messagesToErrors(msgs)}
	}
	return CreateInvoiceResult{Success: true, InvoiceID: payload.RequestedPayment.ID, Errors: []string{}}
}

// CreateTrtForm submits a TRT intake form. Both outcomes populate the
// FormResponse sub-record; the outer errors list carries the failure
// message when the submission fails.
func (f *Facade) CreateTrtForm(ctx context.Context, patientID string, formReferenceID int, formData map[string]any) CreateTrtFormResult {
	data := make(map[string]any, len(formData)+2)
	for k, v := range formData {
		data[k] = v
	}
	data["patient_id"] = patientID
	data["formReferenceId"] = formReferenceID

	resp, err := f.openloop.CreateTrtForm(ctx, data)
	if err != nil {
		return CreateTrtFormResult{
			Response: &FormResponse{Success: false, Message: err.Error()},
			Errors:   []string{err.Error()},
		}
	}
	return CreateTrtFormResult{
		Response: &FormResponse{Success: true, Message: "Form created successfully", Data: resp},
		Errors:   []string{},
	}
}

func patientResultFromPayload(payload *healthie.ClientMutationPayload) PatientResult {
	if payload == nil {
		return PatientResult{Errors: []string{}}
	}
	if len(payload.Messages) > 0 {
		return PatientResult{Errors: messagesToErrors(payload.Messages)}
	}
	return PatientResult{Patient: mapPatient(payload.User), Errors: []string{}}
}

func payloadMessages(payload *healthie.DocumentPayload) []healthie.FieldMessage {
	if payload == nil {
		return nil
	}
	return payload.Messages
}

// messagesToErrors renders backend field messages as "<field>: <message>"
// strings, preserving order.
func messagesToErrors(messages []healthie.FieldMessage) []string {
	errs := make([]string, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, fmt.Sprintf("%s: %s", m.Field, m.Message))
	}
	return errs
}

func mapPatient(u *healthie.User) *Patient {
	if u == nil {
		return nil
	}
	p := &Patient{
		ID:                         u.ID,
		FirstName:                  u.FirstName,
		LastName:                   u.LastName,
		Name:                       u.Name,
		Email:                      u.Email,
		PhoneNumber:                u.PhoneNumber,
		DOB:                        u.DOB,
		Gender:                     u.Gender,
		Height:                     u.Height,
		Weight:                     u.Weight,
		Age:                        u.Age,
		Timezone:                   u.Timezone,
		DietitianID:                u.DietitianID,
		AdditionalRecordIdentifier: u.AdditionalRecordIdentifier,
		BMIPercentile:              u.BMIPercentile,
		NextApptDate:               u.NextApptDate,
		CreatedAt:                  u.CreatedAt,
		UpdatedAt:                  u.UpdatedAt,
	}
	if u.Location != nil {
		p.Location = &Location{
			Line1:   u.Location.Line1,
			Line2:   u.Location.Line2,
			City:    u.Location.City,
			State:   u.Location.State,
			Zip:     u.Location.Zip,
			Country: u.Location.Country,
		}
	}
	return p
}

func mapLabResults(r *junction.LabResultsReport) *LabResults {
	out := &LabResults{
		Metadata: LabReportMetadata{
			Patient:      r.Metadata.Patient,
			Age:          r.Metadata.Age,
			DateReported: r.Metadata.DateReported,
		},
		Results: make([]LabBiomarker, 0, len(r.Results)),
	}
	for _, b := range r.Results {
		out.Results = append(out.Results, LabBiomarker{
			Name:            b.Name,
			Value:           b.Value,
			Unit:            b.Unit,
			MinRangeValue:   b.MinRangeValue,
			MaxRangeValue:   b.MaxRangeValue,
			IsAboveMaxRange: b.IsAboveMaxRange,
			IsBelowMinRange: b.IsBelowMinRange,
		})
	}
	return out
}

func mapAppointment(a *healthie.Appointment) Appointment {
	out := Appointment{
		ID:          a.ID,
		Date:        a.Date,
		ContactType: a.ContactType,
		CreatedAt:   a.CreatedAt,
		Length:      a.Length,
		Location:    a.Location,
	}
	if a.Provider != nil {
		out.ProviderName = a.Provider.FullName
	}
	if a.AppointmentType != nil {
		out.AppointmentTypeName = a.AppointmentType.Name
		out.AppointmentTypeID = a.AppointmentType.ID
	}
	return out
}
