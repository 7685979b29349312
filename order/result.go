package order

import (
	"fmt"
	"strings"
)

// Failure classes carried by Result.ErrorType.
const (
	ErrTypeValidation = "VALIDATION_ERROR"
	ErrTypeAPI        = "API_ERROR"
	ErrTypeUnknown    = "UNKNOWN_ERROR"
)

// Result is the uniform outcome of every manager operation. On success the
// typed fields are projected from the exchange response; Raw retains the
// untouched response document for auditing, including fields this client
// does not know about.
type Result struct {
	Success bool

	OrderID     int64
	Symbol      string
	Side        string
	Type        string
	Status      string
	Quantity    string
	ExecutedQty string
	Price       string
	AvgPrice    string
	TimeInForce string
	ReduceOnly  bool
	Timestamp   int64
	Raw         map[string]any

	// Orders is populated by open-order queries only.
	Orders []map[string]any

	Error     string
	ErrorType string
	ErrorCode string
}

// newSuccessResult projects the loose exchange document into the typed
// result. Absent fields become zero values; no field is required.
func newSuccessResult(raw map[string]any) Result {
	return Result{
		Success:     true,
		OrderID:     docInt64(raw, "orderId"),
		Symbol:      docString(raw, "symbol"),
		Side:        docString(raw, "side"),
		Type:        docString(raw, "type"),
		Status:      docString(raw, "status"),
		Quantity:    docString(raw, "origQty"),
		ExecutedQty: docString(raw, "executedQty"),
		Price:       docString(raw, "price"),
		AvgPrice:    docString(raw, "avgPrice"),
		TimeInForce: docString(raw, "timeInForce"),
		ReduceOnly:  docBool(raw, "reduceOnly"),
		Timestamp:   docInt64(raw, "updateTime"),
		Raw:         raw,
	}
}

func validationFailure(err error) Result {
	return Result{Success: false, Error: err.Error(), ErrorType: ErrTypeValidation}
}

func apiFailure(code, message string) Result {
	return Result{Success: false, Error: message, ErrorType: ErrTypeAPI, ErrorCode: code}
}

func unknownFailure(err error) Result {
	return Result{Success: false, Error: err.Error(), ErrorType: ErrTypeUnknown}
}

// Summary renders a fixed-width human-readable report. The exchange encodes
// "no price" on market orders as the string "0", not an absent field, so both
// the empty string and "0" suppress the price lines.
func (r Result) Summary() string {
	if !r.Success {
		return fmt.Sprintf("Order Failed: %s", r.Error)
	}

	rule := strings.Repeat("=", 50)
	lines := []string{
		rule,
		"ORDER EXECUTED SUCCESSFULLY",
		rule,
		fmt.Sprintf("%-14s%d", "Order ID:", r.OrderID),
		fmt.Sprintf("%-14s%s", "Symbol:", r.Symbol),
		fmt.Sprintf("%-14s%s", "Side:", r.Side),
		fmt.Sprintf("%-14s%s", "Type:", r.Type),
		fmt.Sprintf("%-14s%s", "Status:", r.Status),
		fmt.Sprintf("%-14s%s", "Quantity:", r.Quantity),
		fmt.Sprintf("%-14s%s", "Executed:", r.ExecutedQty),
	}

	if r.Price != "" && r.Price != "0" {
		lines = append(lines, fmt.Sprintf("%-14s%s", "Price:", r.Price))
	}
	if r.AvgPrice != "" && r.AvgPrice != "0" {
		lines = append(lines, fmt.Sprintf("%-14s%s", "Avg Price:", r.AvgPrice))
	}

	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// Document accessors. The exchange response is loosely typed; these pull the
// handful of shapes it actually uses (strings, JSON numbers, bools).

func docString(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func docInt64(doc map[string]any, key string) int64 {
	if v, ok := doc[key].(float64); ok {
		return int64(v)
	}
	return 0
}

func docBool(doc map[string]any, key string) bool {
	v, _ := doc[key].(bool)
	return v
}
