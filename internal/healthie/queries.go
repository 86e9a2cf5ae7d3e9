package healthie

// Fixed GraphQL documents for the Healthie API. Field selections mirror what
// the platform consumes; trimming them changes the wire contract.
const (
	queryGetUser = `query getUser($id: ID) {
  user(id: $id) {
    id
    name
    dob
    first_name
    last_name
    timezone
    height
    weight
    next_appt_date
    location {
      line1
      line2
      zip
      state
      city
      country
    }
    age
    created_at
    updated_at
    email
    bmi_percentile
    providers {
      id
      name
    }
    phone_number
    gender
    dietitian_id
    policies {
      id
      insurance_plan {
        name_and_id
        payer_id
        payer_name
      }
      insurance_plan_id
    }
  }
}`

	querySearchUsers = `query Users($keywords: String) {
  users(keywords: $keywords) {
    id
    name
    email
    first_name
    last_name
    phone_number
    dob
    gender
  }
}`

	mutationCreateClient = `mutation CreateClient($input: createClientInput!) {
  createClient(input: $input) {
    user {
      id
      first_name
      last_name
      email
      skipped_email
      phone_number
      dietitian_id
      user_group_id
      additional_record_identifier
    }
    messages {
      field
      message
    }
  }
}`

	mutationUpdateClient = `mutation UpdateClient($input: updateClientInput!) {
  updateClient(input: $input) {
    user {
      id
      dob
      gender
      height
      additional_record_identifier
      location {
        city
        line1
        line2
        state
        zip
        country
      }
    }
    messages {
      field
      message
    }
  }
}`

	mutationCreateDocument = `mutation CreateDocument($input: createDocumentInput!) {
  createDocument(input: $input) {
    document {
      id
      owner {
        id
      }
    }
    currentUser {
      id
      email
    }
    messages {
      field
      message
    }
  }
}`

	mutationCreateEntry = `mutation createEntry (
  $metric_stat: String,
  $category: String,
  $type: String,
  $user_id: String
  $created_at: String
) {
  createEntry (input:{
    category: $category,
    type: $type,
    metric_stat: $metric_stat,
    user_id: $user_id,
    created_at: $created_at,
  })
  {
    entry {
      id
      category
      type
    }
    messages {
      field
      message
    }
  }
}`

	mutationCreateRequestedPayment = `mutation createRequestedPayment(
  $recipient_id: ID,
  $offering_id: ID,
  $price: String,
  $invoice_type: String,
  $status: String,
  $notes: String,
  $services_provided: String
) {
  createRequestedPayment(input: {
    recipient_id: $recipient_id,
    offering_id: $offering_id,
    price: $price,
    invoice_type: $invoice_type,
    status: $status,
    notes: $notes,
    services_provided: $services_provided
  })
  {
    requestedPayment {
      id
    }
    messages {
      field
      message
    }
  }
}`

	queryAppointments = `query appointments($user_id: ID, $filter: String) {
  appointmentsCount(user_id: $user_id, filter: $filter)
  appointments(user_id: $user_id, filter: $filter) {
    id
    date
    contact_type
    created_at
    length
    location
    provider {
      full_name
    }
    appointment_type {
      name
      id
    }
    attendees {
      full_name
    }
  }
}`

	queryAppointment = `query Appointment($id: ID!) {
  appointment(id: $id) {
    id
    length
    date
    pm_status
    user_id
    updated_at
    timezone_abbr
    external_videochat_url
    provider {
      name
      id
      email
      npi
      organization {
        name
        id
      }
    }
    appointment_type {
      id
    }
    requested_payment {
      id
    }
    user {
      id
      first_name
      last_name
      full_name
      email
    }
  }
}`

	mutationUpdateAppointment = `mutation updateAppointment($input: updateAppointmentInput) {
  updateAppointment(input: $input) {
    appointment {
      id
      pm_status
    }
  }
}`

	queryFormAnswerGroup = `query formAnswerGroup($id: ID) {
  formAnswerGroup(id: $id) {
    id
    name
    finished
    created_at
    user {
      id
    }
    form_answers {
      label
      answer
      displayed_answer
    }
  }
}`
)
