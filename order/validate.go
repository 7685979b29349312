// Package order validates caller-supplied order fields, drives signed order
// placement through the exchange gateway, and normalizes responses into a
// uniform result record.
package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sides and order types the exchange accepts for this client.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	TypeMarket = "MARKET"
	TypeLimit  = "LIMIT"

	// quoteSuffix pins the quote asset; every tradable symbol here is
	// denominated in USDT.
	quoteSuffix = "USDT"
)

// ValidationError reports bad caller input. Recoverable: the manager turns it
// into a structured failure without touching the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// OrderParams is the canonical, type-normalized form of an order request,
// ready for signing and transmission. Price is nil for MARKET orders.
type OrderParams struct {
	Symbol      string
	Side        string
	Type        string
	Quantity    float64
	Price       *float64
	TimeInForce string
	ReduceOnly  bool
}

// ValidateSymbol trims, upper-cases and checks the USDT suffix. Idempotent on
// already-canonical input.
func ValidateSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", &ValidationError{Message: "Symbol is required"}
	}
	if !strings.HasSuffix(symbol, quoteSuffix) {
		return "", validationErrorf("Invalid symbol format: %s. Must end with %s", symbol, quoteSuffix)
	}
	return symbol, nil
}

// ValidateSide accepts BUY or SELL in any case.
func ValidateSide(side string) (string, error) {
	side = strings.ToUpper(strings.TrimSpace(side))
	if side == "" {
		return "", &ValidationError{Message: "Side is required"}
	}
	if side != SideBuy && side != SideSell {
		return "", validationErrorf("Invalid side: %s. Must be BUY or SELL", side)
	}
	return side, nil
}

// ValidateOrderType accepts MARKET or LIMIT in any case.
func ValidateOrderType(orderType string) (string, error) {
	orderType = strings.ToUpper(strings.TrimSpace(orderType))
	if orderType == "" {
		return "", &ValidationError{Message: "Order type is required"}
	}
	if orderType != TypeMarket && orderType != TypeLimit {
		return "", validationErrorf("Invalid order type: %s. Must be MARKET or LIMIT", orderType)
	}
	return orderType, nil
}

// ValidateQuantity parses a raw quantity string. Non-numeric input fails with
// a different message than a non-positive value.
func ValidateQuantity(quantity string) (float64, error) {
	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return 0, &ValidationError{Message: "Quantity is required"}
	}
	qty, err := strconv.ParseFloat(quantity, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, validationErrorf("Invalid quantity: %s", quantity)
	}
	if qty <= 0 {
		return 0, &ValidationError{Message: "Quantity must be greater than 0"}
	}
	return qty, nil
}

// ValidatePrice requires and checks a price exactly like a quantity, but only
// for LIMIT orders. For every other type the result is "no price" (nil),
// whatever the price argument holds.
func ValidatePrice(price, orderType string) (*float64, error) {
	if orderType != TypeLimit {
		return nil, nil
	}
	price = strings.TrimSpace(price)
	if price == "" {
		return nil, &ValidationError{Message: "Price is required for LIMIT orders"}
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, validationErrorf("Invalid price: %s", price)
	}
	if p <= 0 {
		return nil, &ValidationError{Message: "Price must be greater than 0"}
	}
	return &p, nil
}

// ValidateOrderParams composes the field validators and fails fast on the
// first violation, in order: symbol, side, order type, quantity, price.
func ValidateOrderParams(symbol, side, orderType, quantity, price string) (OrderParams, error) {
	var params OrderParams
	var err error

	if params.Symbol, err = ValidateSymbol(symbol); err != nil {
		return OrderParams{}, err
	}
	if params.Side, err = ValidateSide(side); err != nil {
		return OrderParams{}, err
	}
	if params.Type, err = ValidateOrderType(orderType); err != nil {
		return OrderParams{}, err
	}
	if params.Quantity, err = ValidateQuantity(quantity); err != nil {
		return OrderParams{}, err
	}
	if params.Price, err = ValidatePrice(price, params.Type); err != nil {
		return OrderParams{}, err
	}
	return params, nil
}
