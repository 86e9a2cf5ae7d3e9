package config

import (
	"fmt"
	"os"
)

// Environment selects which set of vendor endpoints and identifiers is used.
type Environment string

const (
	Staging    Environment = "staging"
	Production Environment = "production"
)

// Config holds credentials and the environment selector for all three
// vendor backends. Every URL and identifier below is derived from the
// environment; nothing besides the credentials is independently stored.
//
// Exactly one of HealthieAPIKey (Basic auth) or OpenLoopAPIKey (Bearer auth,
// optionally with HealthieAuthorizationShard) should be set for Healthie
// requests.
type Config struct {
	HealthieAPIKey             string
	HealthieAuthorizationShard string
	OpenLoopAPIKey             string
	VitalAPIKey                string
	Environment                Environment

	// Server settings, only used by cmd/api.
	Port     string
	LogLevel string
}

// New returns a blank configuration defaulting to staging.
func New() *Config {
	return &Config{Environment: Staging}
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		HealthieAPIKey:             getEnv("HEALTHIE_API_KEY", ""),
		HealthieAuthorizationShard: getEnv("HEALTHIE_AUTHORIZATION_SHARD", ""),
		OpenLoopAPIKey:             getEnv("OPENLOOP_API_KEY", ""),
		VitalAPIKey:                getEnv("VITAL_API_KEY", ""),
		Environment:                Environment(getEnv("OPENLOOP_ENV", string(Staging))),
		Port:                       getEnv("PORT", "8080"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
	}
}

// isProduction reports whether production endpoints apply. Any value other
// than "production" falls back to staging, matching the upstream services'
// historical behavior.
func (c *Config) isProduction() bool {
	return c.Environment == Production
}

// HealthieURL returns the Healthie GraphQL endpoint for the current environment.
func (c *Config) HealthieURL() string {
	if c.isProduction() {
		return "https://api.gethealthie.com/graphql"
	}
	return "https://staging-api.gethealthie.com/graphql"
}

// QuestionnaireURL returns the OpenLoop questionnaire API base URL.
func (c *Config) QuestionnaireURL() string {
	if c.isProduction() {
		return "https://api.questionnaire.solutions.openloophealth.com"
	}
	return "https://api.questionnaire.solutions-staging.openloophealth.com"
}

// BookingWidgetBaseURL returns the booking widget base URL.
func (c *Config) BookingWidgetBaseURL() string {
	if c.isProduction() {
		return "https://express.patientcare.openloophealth.com/book-appointment"
	}
	return "https://express.care-staging.openloophealth.com/book-appointment"
}

// VitalAPIURL returns the Vital (Junction) API base URL.
func (c *Config) VitalAPIURL() string {
	if c.isProduction() {
		return "https://api.tryvital.io/v3"
	}
	return "https://api.sandbox.tryvital.io/v3"
}

// OrgID returns the Healthie organization ID.
func (c *Config) OrgID() string {
	if c.isProduction() {
		return "93721"
	}
	return "167021"
}

// ProviderID returns the default provider ID.
func (c *Config) ProviderID() string {
	if c.isProduction() {
		return "9584181"
	}
	return "3483153"
}

// FormIDs maps symbolic form names to their Healthie form IDs.
func (c *Config) FormIDs() map[string]string {
	if c.isProduction() {
		return map[string]string{
			"trt_initial":           "2471727",
			"trt_refill":            "2471728",
			"labs_upload_completed": "2638349",
			"trt_encounter_note":    "2841159",
		}
	}
	return map[string]string{
		"trt_initial":           "2156890",
		"trt_refill":            "2156891",
		"labs_upload_completed": "2190741",
		"trt_encounter_note":    "2190742",
	}
}

// AppointmentTypeIDs maps {therapy type}_{visit type} keys to appointment
// type IDs used by the booking widget.
func (c *Config) AppointmentTypeIDs() map[string]string {
	if c.isProduction() {
		return map[string]string{
			"trt_initial":          "472535",
			"trt_refill":           "472536",
			"enclomiphene_initial": "472537",
			"enclomiphene_refill":  "472538",
		}
	}
	return map[string]string{
		"trt_initial":          "349681",
		"trt_refill":           "349682",
		"enclomiphene_initial": "349683",
		"enclomiphene_refill":  "349684",
	}
}

// BookingWidgetURL builds the booking widget URL for a known appointment
// type key. The second return is false when the key has no mapping.
func (c *Config) BookingWidgetURL(appointmentTypeKey string) (string, bool) {
	id, ok := c.AppointmentTypeIDs()[appointmentTypeKey]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s?appointmentTypeId=%s&providerId=%s", c.BookingWidgetBaseURL(), id, c.ProviderID()), true
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
