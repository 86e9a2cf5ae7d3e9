package healthie

type graphQLRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

// FieldMessage is Healthie's per-field validation message attached to
// mutation payloads. A non-empty list means the mutation was rejected.
type FieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Location is a patient address.
type Location struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// InsurancePlan describes a payer attached to a patient policy.
type InsurancePlan struct {
	NameAndID string `json:"name_and_id"`
	PayerID   string `json:"payer_id"`
	PayerName string `json:"payer_name"`
}

// Policy is a patient insurance policy.
type Policy struct {
	ID              string         `json:"id"`
	InsurancePlan   *InsurancePlan `json:"insurance_plan"`
	InsurancePlanID string         `json:"insurance_plan_id"`
}

// Organization is a provider's parent organization.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is a Healthie provider. Different queries request different
// subsets of these fields; absent fields stay zero-valued.
type Provider struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	FullName     string        `json:"full_name"`
	Email        string        `json:"email"`
	NPI          string        `json:"npi"`
	Organization *Organization `json:"organization"`
}

// User is a Healthie user/patient record.
type User struct {
	ID                         string     `json:"id"`
	Name                       string     `json:"name"`
	FirstName                  string     `json:"first_name"`
	LastName                   string     `json:"last_name"`
	FullName                   string     `json:"full_name"`
	Email                      string     `json:"email"`
	PhoneNumber                string     `json:"phone_number"`
	DOB                        string     `json:"dob"`
	Gender                     string     `json:"gender"`
	Height                     string     `json:"height"`
	Weight                     string     `json:"weight"`
	Age                        int        `json:"age"`
	Timezone                   string     `json:"timezone"`
	NextApptDate               string     `json:"next_appt_date"`
	BMIPercentile              float64    `json:"bmi_percentile"`
	DietitianID                string     `json:"dietitian_id"`
	UserGroupID                string     `json:"user_group_id"`
	SkippedEmail               bool       `json:"skipped_email"`
	AdditionalRecordIdentifier string     `json:"additional_record_identifier"`
	CreatedAt                  string     `json:"created_at"`
	UpdatedAt                  string     `json:"updated_at"`
	Location                   *Location  `json:"location"`
	Providers                  []Provider `json:"providers"`
	Policies                   []Policy   `json:"policies"`
}

// AppointmentTypeRef is the nested appointment type on an appointment.
type AppointmentTypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequestedPayment is an invoice reference.
type RequestedPayment struct {
	ID string `json:"id"`
}

// Attendee is a participant on an appointment.
type Attendee struct {
	FullName string `json:"full_name"`
}

// Appointment is a Healthie appointment.
//
// AppointmentURL is not a Healthie field: it is derived locally from
// ExternalVideochatURL and the attending user, see GetAppointment.
type Appointment struct {
	ID                   string              `json:"id"`
	Date                 string              `json:"date"`
	ContactType          string              `json:"contact_type"`
	CreatedAt            string              `json:"created_at"`
	UpdatedAt            string              `json:"updated_at"`
	Length               int                 `json:"length"`
	Location             string              `json:"location"`
	PMStatus             string              `json:"pm_status"`
	UserID               string              `json:"user_id"`
	TimezoneAbbr         string              `json:"timezone_abbr"`
	ExternalVideochatURL string              `json:"external_videochat_url"`
	AppointmentURL       string              `json:"appointment_url,omitempty"`
	Provider             *Provider           `json:"provider"`
	AppointmentType      *AppointmentTypeRef `json:"appointment_type"`
	RequestedPayment     *RequestedPayment   `json:"requested_payment"`
	User                 *User               `json:"user"`
	Attendees            []Attendee          `json:"attendees"`
}

// AppointmentList is the result of a patient appointments query.
type AppointmentList struct {
	Count        int
	Appointments []Appointment
}

// ClientMutationPayload carries the user and validation messages returned
// by createClient/updateClient.
type ClientMutationPayload struct {
	User     *User          `json:"user"`
	Messages []FieldMessage `json:"messages"`
}

// Document is an uploaded document reference.
type Document struct {
	ID    string         `json:"id"`
	Owner *DocumentOwner `json:"owner"`
}

// DocumentOwner identifies the patient a document belongs to.
type DocumentOwner struct {
	ID string `json:"id"`
}

// DocumentPayload is the createDocument mutation payload.
type DocumentPayload struct {
	Document    *Document      `json:"document"`
	CurrentUser *User          `json:"currentUser"`
	Messages    []FieldMessage `json:"messages"`
}

// Entry is a created metric entry.
type Entry struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// EntryPayload is the createEntry mutation payload.
type EntryPayload struct {
	Entry    *Entry         `json:"entry"`
	Messages []FieldMessage `json:"messages"`
}

// RequestedPaymentPayload is the createRequestedPayment mutation payload.
type RequestedPaymentPayload struct {
	RequestedPayment *RequestedPayment `json:"requestedPayment"`
	Messages         []FieldMessage    `json:"messages"`
}

// FormAnswer is one answered question inside a form answer group.
type FormAnswer struct {
	Label           string `json:"label"`
	Answer          string `json:"answer"`
	DisplayedAnswer string `json:"displayed_answer"`
}

// FormAnswerGroup is a completed intake form.
type FormAnswerGroup struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Finished    bool         `json:"finished"`
	CreatedAt   string       `json:"created_at"`
	User        *User        `json:"user"`
	FormAnswers []FormAnswer `json:"form_answers"`
}

// CreateClientInput is the createClient mutation input.
type CreateClientInput struct {
	FirstName                  string `json:"first_name"`
	LastName                   string `json:"last_name"`
	Email                      string `json:"email"`
	PhoneNumber                string `json:"phone_number,omitempty"`
	DietitianID                string `json:"dietitian_id,omitempty"`
	UserGroupID                string `json:"user_group_id,omitempty"`
	AdditionalRecordIdentifier string `json:"additional_record_identifier,omitempty"`
	SkippedEmail               *bool  `json:"skipped_email,omitempty"`
	DontSendWelcome            *bool  `json:"dont_send_welcome,omitempty"`
}

// LocationInput is an address passed to updateClient.
type LocationInput struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// UpdateClientInput is the updateClient mutation input.
type UpdateClientInput struct {
	ID                         string         `json:"id"`
	DOB                        string         `json:"dob,omitempty"`
	Gender                     string         `json:"gender,omitempty"`
	Height                     string         `json:"height,omitempty"`
	AdditionalRecordIdentifier string         `json:"additional_record_identifier,omitempty"`
	Location                   *LocationInput `json:"location,omitempty"`
}

// CreateDocumentInput is the createDocument mutation input.
type CreateDocumentInput struct {
	FileString  string `json:"file_string"`
	DisplayName string `json:"display_name"`
	RelUserID   string `json:"rel_user_id"`
}

// CreateEntryInput holds createEntry variables. Sent flat, not nested.
type CreateEntryInput struct {
	Category   string `json:"category"`
	Type       string `json:"type"`
	MetricStat string `json:"metric_stat"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// CreateInvoiceInput holds createRequestedPayment variables. Sent flat.
type CreateInvoiceInput struct {
	RecipientID      string `json:"recipient_id"`
	Price            string `json:"price"`
	Status           string `json:"status,omitempty"`
	ServicesProvided string `json:"services_provided,omitempty"`
	OfferingID       string `json:"offering_id,omitempty"`
	InvoiceType      string `json:"invoice_type,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// Narrow response payloads for each API operation.
type userData struct {
	User *User `json:"user"`
}

type usersData struct {
	Users []User `json:"users"`
}

type createClientData struct {
	CreateClient *ClientMutationPayload `json:"createClient"`
}

type updateClientData struct {
	UpdateClient *ClientMutationPayload `json:"updateClient"`
}

type createDocumentData struct {
	CreateDocument *DocumentPayload `json:"createDocument"`
}

type createEntryData struct {
	CreateEntry *EntryPayload `json:"createEntry"`
}

type createRequestedPaymentData struct {
	CreateRequestedPayment *RequestedPaymentPayload `json:"createRequestedPayment"`
}

type appointmentsData struct {
	AppointmentsCount int           `json:"appointmentsCount"`
	Appointments      []Appointment `json:"appointments"`
}

type appointmentData struct {
	Appointment *Appointment `json:"appointment"`
}

type updateAppointmentData struct {
	UpdateAppointment struct {
		Appointment *Appointment `json:"appointment"`
	} `json:"updateAppointment"`
}

type formAnswerGroupData struct {
	FormAnswerGroup *FormAnswerGroup `json:"formAnswerGroup"`
}
