package gateway

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
)

// ErrMissingCredentials is returned by NewBinanceRESTClient when the API key
// or secret is empty. Fatal: nothing works unsigned-only.
var ErrMissingCredentials = errors.New("api key and secret are required")

// Transport-level error codes. These carry StatusCode 0 because no HTTP
// response was received.
const (
	CodeTimeout         = "TIMEOUT"
	CodeConnectionError = "CONNECTION_ERROR"
	CodeRequestError    = "REQUEST_ERROR"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeUnknown         = "UNKNOWN"
)

// APIError is the single failure type the client produces, whether the
// failure came from the exchange (non-200 with {code,msg}), a malformed
// body, or the transport itself.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error %s: %s", e.Code, e.Message)
}

// classifyTransportError maps a failed http.Client.Do into the fixed
// transport taxonomy: timeouts, refused/reset connections, everything else.
func classifyTransportError(err error) *APIError {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &APIError{StatusCode: 0, Code: CodeTimeout, Message: "Request timed out"}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &APIError{StatusCode: 0, Code: CodeTimeout, Message: "Request timed out"}
	}
	var operr *net.OpError
	if errors.As(err, &operr) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return &APIError{StatusCode: 0, Code: CodeConnectionError, Message: err.Error()}
	}
	return &APIError{StatusCode: 0, Code: CodeRequestError, Message: err.Error()}
}
