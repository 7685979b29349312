package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Binance USDT-M futures endpoints (testnet by default).
const (
	DefaultBaseURL = "https://testnet.binancefuture.com"

	endpointServerTime   = "/fapi/v1/time"
	endpointExchangeInfo = "/fapi/v1/exchangeInfo"
	endpointAccount      = "/fapi/v2/account"
	endpointTickerPrice  = "/fapi/v1/ticker/price"
	endpointOrder        = "/fapi/v1/order"
	endpointOpenOrders   = "/fapi/v1/openOrders"

	requestTimeout = 30 * time.Second
)

// ErrPriceRequired is returned by PlaceOrder when a LIMIT order has no price.
var ErrPriceRequired = fmt.Errorf("price required for LIMIT orders")

// RequestObserver receives one observation per completed HTTP exchange.
// status is 0 when the request never produced a response.
type RequestObserver interface {
	ObserveRequest(endpoint, method string, status int, elapsed time.Duration)
}

// BinanceRESTClient is a signed futures REST client. The zero HTTPClient is
// replaced by a default with a fixed 30s timeout; an httptest client can be
// injected in tests. Safe for concurrent use: all fields are read-only after
// construction and the underlying http.Client pools connections itself.
type BinanceRESTClient struct {
	BaseURL    string
	APIKey     string
	Secret     string
	HTTPClient *http.Client
	Observer   RequestObserver

	log *zap.Logger
}

// NewBinanceRESTClient builds a client or fails with ErrMissingCredentials.
func NewBinanceRESTClient(baseURL, apiKey, secret string, log *zap.Logger) (*BinanceRESTClient, error) {
	if apiKey == "" || secret == "" {
		return nil, ErrMissingCredentials
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BinanceRESTClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Secret:     secret,
		HTTPClient: NewDefaultHTTPClient(),
		log:        log,
	}, nil
}

// NewDefaultHTTPClient provides an http.Client with the fixed request timeout.
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// ServerTime calls /fapi/v1/time (unsigned).
func (c *BinanceRESTClient) ServerTime() (map[string]any, error) {
	return c.object(http.MethodGet, endpointServerTime, nil, false)
}

// ExchangeInfo calls /fapi/v1/exchangeInfo (unsigned).
func (c *BinanceRESTClient) ExchangeInfo() (map[string]any, error) {
	return c.object(http.MethodGet, endpointExchangeInfo, nil, false)
}

// AccountInfo calls /fapi/v2/account (signed).
func (c *BinanceRESTClient) AccountInfo() (map[string]any, error) {
	return c.object(http.MethodGet, endpointAccount, nil, true)
}

// SymbolPrice calls /fapi/v1/ticker/price for one symbol (unsigned).
func (c *BinanceRESTClient) SymbolPrice(symbol string) (map[string]any, error) {
	params := &Params{}
	params.Set("symbol", symbol)
	return c.object(http.MethodGet, endpointTickerPrice, params, false)
}

// PlaceOrder submits a signed POST to /fapi/v1/order. Parameters are emitted
// in the exact order the signature is computed over: symbol, side, type,
// quantity, then price+timeInForce for LIMIT only, then reduceOnly only when
// set. price must be non-nil for LIMIT orders; timeInForce defaults to GTC.
func (c *BinanceRESTClient) PlaceOrder(symbol, side, orderType string, quantity float64, price *float64, timeInForce string, reduceOnly bool) (map[string]any, error) {
	params := &Params{}
	params.Set("symbol", symbol)
	params.Set("side", side)
	params.Set("type", orderType)
	params.Set("quantity", formatDecimal(quantity))
	if orderType == "LIMIT" {
		if price == nil {
			return nil, ErrPriceRequired
		}
		params.Set("price", formatDecimal(*price))
		if timeInForce == "" {
			timeInForce = "GTC"
		}
		params.Set("timeInForce", timeInForce)
	}
	if reduceOnly {
		params.Set("reduceOnly", "true")
	}

	c.log.Info("placing order",
		zap.String("symbol", symbol),
		zap.String("side", side),
		zap.String("type", orderType),
		zap.Float64("quantity", quantity))

	return c.object(http.MethodPost, endpointOrder, params, true)
}

// CancelOrder submits a signed DELETE for one order.
func (c *BinanceRESTClient) CancelOrder(symbol string, orderID int64) (map[string]any, error) {
	params := &Params{}
	params.Set("symbol", symbol)
	params.Set("orderId", strconv.FormatInt(orderID, 10))
	return c.object(http.MethodDelete, endpointOrder, params, true)
}

// OpenOrders lists open orders, optionally filtered by symbol (signed).
func (c *BinanceRESTClient) OpenOrders(symbol string) ([]map[string]any, error) {
	params := &Params{}
	if symbol != "" {
		params.Set("symbol", symbol)
	}
	data, err := c.doRequest(http.MethodGet, endpointOpenOrders, params, true)
	if err != nil {
		return nil, err
	}
	items, _ := data.([]any)
	orders := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			orders = append(orders, m)
		}
	}
	return orders, nil
}

// TestConnectivity probes the server-time endpoint and reports reachability
// only. Deliberately lossy: all error detail is discarded. Liveness probe
// only, never use this pattern where the failure reason matters.
func (c *BinanceRESTClient) TestConnectivity() bool {
	_, err := c.ServerTime()
	return err == nil
}

// object runs a request expected to return a JSON object. Success bodies are
// not schema-checked; a non-object success yields a nil map, and unknown
// extra fields pass through untouched.
func (c *BinanceRESTClient) object(method, endpoint string, params *Params, signed bool) (map[string]any, error) {
	data, err := c.doRequest(method, endpoint, params, signed)
	if err != nil {
		return nil, err
	}
	doc, _ := data.(map[string]any)
	return doc, nil
}

// doRequest executes one HTTP exchange: sign if requested (timestamp first,
// then signature over everything before it), dispatch with params in the
// query string for GET/DELETE or the form body for POST, decode JSON, and
// fold every failure mode into *APIError.
func (c *BinanceRESTClient) doRequest(method, endpoint string, params *Params, signed bool) (any, error) {
	if params == nil {
		params = &Params{}
	}
	if signed {
		params.Set("timestamp", strconv.FormatInt(timeNowMillis(), 10))
		params.Set("signature", Sign(params, c.Secret))
	}
	encoded := params.Encode()

	var (
		req *http.Request
		err error
	)
	switch method {
	case http.MethodGet, http.MethodDelete:
		u := c.BaseURL + endpoint
		if encoded != "" {
			u += "?" + encoded
		}
		req, err = http.NewRequest(method, u, nil)
	case http.MethodPost:
		req, err = http.NewRequest(method, c.BaseURL+endpoint, strings.NewReader(encoded))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-MBX-APIKEY", c.APIKey)

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("params", params.redacted()))

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		apiErr := classifyTransportError(err)
		c.observe(endpoint, method, 0, start)
		c.log.Error("request failed",
			zap.String("endpoint", endpoint),
			zap.String("code", apiErr.Code),
			zap.Error(err))
		return nil, apiErr
	}
	defer resp.Body.Close()
	c.observe(endpoint, method, resp.StatusCode, start)

	c.log.Debug("response", zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := classifyTransportError(err)
		c.log.Error("read response failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, apiErr
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.Error("invalid JSON response", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       CodeInvalidJSON,
			Message:    "Invalid JSON response from server",
		}
	}

	if resp.StatusCode != http.StatusOK {
		code, msg := CodeUnknown, "Unknown error"
		if doc, ok := data.(map[string]any); ok {
			if v, ok := doc["code"]; ok {
				code = formatErrorCode(v)
			}
			if v, ok := doc["msg"].(string); ok && v != "" {
				msg = v
			}
		}
		c.log.Error("API error",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("code", code),
			zap.String("msg", msg))
		return nil, &APIError{StatusCode: resp.StatusCode, Code: code, Message: msg}
	}

	return data, nil
}

func (c *BinanceRESTClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return NewDefaultHTTPClient()
}

func (c *BinanceRESTClient) observe(endpoint, method string, status int, start time.Time) {
	if c.Observer != nil {
		c.Observer.ObserveRequest(endpoint, method, status, time.Since(start))
	}
}

// formatDecimal renders a float the way the exchange expects: shortest exact
// decimal form, no exponent, no trailing zeros.
func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatErrorCode normalizes the wire-level code field, which arrives as a
// JSON number on API rejections but is a symbolic string for transport
// failures.
func formatErrorCode(v any) string {
	switch code := v.(type) {
	case string:
		if code == "" {
			return CodeUnknown
		}
		return code
	case float64:
		return strconv.FormatFloat(code, 'f', -1, 64)
	case json.Number:
		return code.String()
	default:
		return fmt.Sprintf("%v", code)
	}
}
