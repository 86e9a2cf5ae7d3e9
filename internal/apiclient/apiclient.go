// Package apiclient normalizes raw HTTP responses from the vendor backends
// into parsed data or a typed *APIError. All three backend clients route
// their responses through here so callers see one error contract.
package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError classifies a failed vendor response. The original response and
// body are retained for caller inspection.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
	Response   *http.Response
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError that did not originate from a response,
// such as a transport failure.
func NewAPIError(message string) *APIError {
	return &APIError{Message: message}
}

// CheckResponse classifies a response by status code. It returns nil for any
// 2xx status and a *APIError otherwise. The 401 message deliberately omits
// the body so credentials-adjacent payloads never end up in error strings.
func CheckResponse(resp *http.Response, body []byte) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusBadRequest:
		return &APIError{
			Message:    fmt.Sprintf("Bad Request: %s", body),
			StatusCode: code,
			Body:       string(body),
			Response:   resp,
		}
	case code == http.StatusUnauthorized:
		return &APIError{
			Message:    "Unauthorized: Check your API credentials",
			StatusCode: code,
			Body:       string(body),
			Response:   resp,
		}
	case code == http.StatusNotFound:
		return &APIError{
			Message:    fmt.Sprintf("Not Found: %s", body),
			StatusCode: code,
			Body:       string(body),
			Response:   resp,
		}
	case code >= 500 && code <= 599:
		return &APIError{
			Message:    fmt.Sprintf("Server Error: %s", body),
			StatusCode: code,
			Body:       string(body),
			Response:   resp,
		}
	default:
		return &APIError{
			Message:    fmt.Sprintf("Unexpected response code %d: %s", code, body),
			StatusCode: code,
			Body:       string(body),
			Response:   resp,
		}
	}
}

// DecodeResponse classifies the response and, on success, unmarshals the
// JSON body into out. A 2xx body that fails to parse is reported as an
// *APIError rather than a bare decoding error.
func DecodeResponse(resp *http.Response, body []byte, out any) error {
	if err := CheckResponse(resp, body); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Message:    fmt.Sprintf("Invalid JSON response: %s", err.Error()),
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Response:   resp,
		}
	}
	return nil
}
