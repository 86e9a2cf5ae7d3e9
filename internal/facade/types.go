package facade

// Location is a normalized patient address.
type Location struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Patient is the normalized patient record exposed to facade callers.
// Only ID is guaranteed; everything else depends on which backend fields
// the originating operation selects.
type Patient struct {
	ID                         string    `json:"id"`
	FirstName                  string    `json:"firstName,omitempty"`
	LastName                   string    `json:"lastName,omitempty"`
	Name                       string    `json:"name,omitempty"`
	Email                      string    `json:"email,omitempty"`
	PhoneNumber                string    `json:"phoneNumber,omitempty"`
	DOB                        string    `json:"dob,omitempty"`
	Gender                     string    `json:"gender,omitempty"`
	Height                     string    `json:"height,omitempty"`
	Weight                     string    `json:"weight,omitempty"`
	Age                        int       `json:"age,omitempty"`
	Timezone                   string    `json:"timezone,omitempty"`
	DietitianID                string    `json:"dietitianId,omitempty"`
	AdditionalRecordIdentifier string    `json:"additionalRecordIdentifier,omitempty"`
	BMIPercentile              float64   `json:"bmiPercentile,omitempty"`
	NextApptDate               string    `json:"nextApptDate,omitempty"`
	CreatedAt                  string    `json:"createdAt,omitempty"`
	UpdatedAt                  string    `json:"updatedAt,omitempty"`
	Location                   *Location `json:"location,omitempty"`
}

// Appointment is the normalized appointment record. The backend's nested
// provider and appointment type reads are flattened into top-level fields.
type Appointment struct {
	ID                  string `json:"id"`
	Date                string `json:"date,omitempty"`
	ContactType         string `json:"contactType,omitempty"`
	CreatedAt           string `json:"createdAt,omitempty"`
	Length              int    `json:"length,omitempty"`
	Location            string `json:"location,omitempty"`
	ProviderName        string `json:"providerName,omitempty"`
	AppointmentTypeName string `json:"appointmentTypeName,omitempty"`
	AppointmentTypeID   string `json:"appointmentTypeId,omitempty"`
}

// LabReportMetadata describes the lab order a result set belongs to.
type LabReportMetadata struct {
	Patient      string `json:"patient"`
	Age          int    `json:"age"`
	DateReported string `json:"dateReported"`
}

// LabBiomarker is one analyte result. Value and the range bounds stay
// untyped because the lab backend reports both numeric and qualitative
// results.
type LabBiomarker struct {
	Name            string `json:"name"`
	Value           any    `json:"value"`
	Unit            string `json:"unit"`
	MinRangeValue   any    `json:"minRangeValue"`
	MaxRangeValue   any    `json:"maxRangeValue"`
	IsAboveMaxRange bool   `json:"isAboveMaxRange"`
	IsBelowMinRange bool   `json:"isBelowMinRange"`
}

// LabResults is the normalized result set for one lab order.
type LabResults struct {
	Metadata LabReportMetadata `json:"metadata"`
	Results  []LabBiomarker    `json:"results"`
}

// Document summarizes an uploaded document.
type Document struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId,omitempty"`
	Success bool   `json:"success"`
}

// FormResponse is the sub-record returned by the TRT form write: both the
// success and the failure path populate it, with the submitted form's
// backend response under Data on success.
type FormResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// PatientResult is the write envelope for create/update patient.
type PatientResult struct {
	Patient *Patient `json:"patient"`
	Errors  []string `json:"errors"`
}

// UploadDocumentResult is the write envelope for document uploads.
type UploadDocumentResult struct {
	Document *Document `json:"document"`
	Errors   []string  `json:"errors"`
}

// CreateMetricEntryResult is the write envelope for metric entries.
type CreateMetricEntryResult struct {
	Success bool     `json:"success"`
	EntryID string   `json:"entryId,omitempty"`
	Errors  []string `json:"errors"`
}

// CreateInvoiceResult is the write envelope for invoices.
type CreateInvoiceResult struct {
	Success   bool     `json:"success"`
	InvoiceID string   `json:"invoiceId,omitempty"`
	Errors    []string `json:"errors"`
}

// CreateTrtFormResult is the write envelope for TRT intake forms.
type CreateTrtFormResult struct {
	Response *FormResponse `json:"response"`
	Errors   []string      `json:"errors"`
}
