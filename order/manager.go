package order

import (
	"errors"

	"go.uber.org/zap"

	"futures-trader-go/gateway"
)

// Exchange is the gateway surface the manager drives. Satisfied by
// *gateway.BinanceRESTClient; a mock stands in for it in tests.
type Exchange interface {
	PlaceOrder(symbol, side, orderType string, quantity float64, price *float64, timeInForce string, reduceOnly bool) (map[string]any, error)
	CancelOrder(symbol string, orderID int64) (map[string]any, error)
	OpenOrders(symbol string) ([]map[string]any, error)
}

// Request carries raw caller-supplied order fields. Quantity and Price stay
// strings until validation coerces them.
type Request struct {
	Symbol      string
	Side        string
	Type        string
	Quantity    string
	Price       string
	TimeInForce string
	ReduceOnly  bool
}

// Manager orchestrates validation, signed submission and response
// normalization. It is the single boundary that converts every failure
// class into a Result; no error escapes its operations.
type Manager struct {
	exchange Exchange
	log      *zap.Logger
}

func NewManager(exchange Exchange, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{exchange: exchange, log: log}
}

// PlaceOrder validates the request and submits it. Validation failures never
// reach the network; API rejections and transport failures come back as
// API_ERROR with the exchange code; anything unexpected is demoted to
// UNKNOWN_ERROR rather than propagated.
func (m *Manager) PlaceOrder(req Request) Result {
	params, err := ValidateOrderParams(req.Symbol, req.Side, req.Type, req.Quantity, req.Price)
	if err != nil {
		m.log.Error("validation failed", zap.Error(err))
		return validationFailure(err)
	}

	m.log.Info("order request",
		zap.String("symbol", params.Symbol),
		zap.String("side", params.Side),
		zap.String("type", params.Type),
		zap.Float64("quantity", params.Quantity))

	raw, err := m.exchange.PlaceOrder(
		params.Symbol, params.Side, params.Type, params.Quantity,
		params.Price, req.TimeInForce, req.ReduceOnly)
	if err != nil {
		return m.failure("order failed", err)
	}

	result := newSuccessResult(raw)
	m.log.Info("order placed", zap.Int64("order_id", result.OrderID), zap.String("status", result.Status))
	return result
}

// CancelOrder passes straight through: an invalid order id is the exchange's
// concern and surfaces as an API error.
func (m *Manager) CancelOrder(symbol string, orderID int64) Result {
	raw, err := m.exchange.CancelOrder(symbol, orderID)
	if err != nil {
		return m.failure("cancel failed", err)
	}
	m.log.Info("order cancelled", zap.Int64("order_id", orderID))
	result := newSuccessResult(raw)
	return result
}

// OpenOrders lists open orders into Result.Orders.
func (m *Manager) OpenOrders(symbol string) Result {
	orders, err := m.exchange.OpenOrders(symbol)
	if err != nil {
		return m.failure("open orders query failed", err)
	}
	return Result{Success: true, Orders: orders}
}

// failure maps a gateway error into the uniform failure record.
func (m *Manager) failure(msg string, err error) Result {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		m.log.Error(msg,
			zap.String("code", apiErr.Code),
			zap.Int("status", apiErr.StatusCode),
			zap.String("error", apiErr.Message))
		return apiFailure(apiErr.Code, apiErr.Message)
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		m.log.Error(msg, zap.Error(err))
		return validationFailure(err)
	}
	m.log.Error(msg, zap.Error(err))
	return unknownFailure(err)
}
