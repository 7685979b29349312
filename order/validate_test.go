package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSymbol(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr string
	}{
		{name: "lowercase", in: "btcusdt", want: "BTCUSDT"},
		{name: "whitespace", in: "  ethusdt ", want: "ETHUSDT"},
		{name: "already canonical", in: "BTCUSDT", want: "BTCUSDT"},
		{name: "empty", in: "", wantErr: "Symbol is required"},
		{name: "blank", in: "   ", wantErr: "Symbol is required"},
		{name: "wrong quote asset", in: "BTCBUSD", wantErr: "Invalid symbol format: BTCBUSD. Must end with USDT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateSymbol(tc.in)
			if tc.wantErr != "" {
				var valErr *ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Equal(t, tc.wantErr, valErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateSymbolIdempotent(t *testing.T) {
	once, err := ValidateSymbol(" solusdt ")
	require.NoError(t, err)
	twice, err := ValidateSymbol(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestValidateSide(t *testing.T) {
	for _, in := range []string{"BUY", "buy", " Buy "} {
		got, err := ValidateSide(in)
		require.NoError(t, err)
		assert.Equal(t, "BUY", got)
	}
	got, err := ValidateSide("sell")
	require.NoError(t, err)
	assert.Equal(t, "SELL", got)

	_, err = ValidateSide("HOLD")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid side: HOLD. Must be BUY or SELL", valErr.Message)

	_, err = ValidateSide("")
	require.ErrorAs(t, err, &valErr)
}

func TestValidateOrderType(t *testing.T) {
	got, err := ValidateOrderType("market")
	require.NoError(t, err)
	assert.Equal(t, "MARKET", got)

	got, err = ValidateOrderType(" LIMIT ")
	require.NoError(t, err)
	assert.Equal(t, "LIMIT", got)

	var valErr *ValidationError
	_, err = ValidateOrderType("STOP")
	require.ErrorAs(t, err, &valErr)
	_, err = ValidateOrderType("")
	require.ErrorAs(t, err, &valErr)
}

func TestValidateQuantity(t *testing.T) {
	qty, err := ValidateQuantity("0.001")
	require.NoError(t, err)
	assert.Equal(t, 0.001, qty)

	// Non-numeric input fails with a different message than <= 0.
	var valErr *ValidationError
	_, err = ValidateQuantity("abc")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid quantity: abc", valErr.Message)

	_, err = ValidateQuantity("NaN")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid quantity: NaN", valErr.Message)

	_, err = ValidateQuantity("0")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Quantity must be greater than 0", valErr.Message)

	_, err = ValidateQuantity("-1")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Quantity must be greater than 0", valErr.Message)

	_, err = ValidateQuantity("")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Quantity is required", valErr.Message)
}

func TestValidatePriceIgnoredForMarket(t *testing.T) {
	// Whatever the price argument holds, non-LIMIT types normalize to nil.
	for _, price := range []string{"", "50000", "garbage", "-3"} {
		p, err := ValidatePrice(price, TypeMarket)
		require.NoError(t, err)
		assert.Nil(t, p)
	}
}

func TestValidatePriceForLimit(t *testing.T) {
	p, err := ValidatePrice("50000.5", TypeLimit)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 50000.5, *p)

	var valErr *ValidationError
	_, err = ValidatePrice("", TypeLimit)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Price is required for LIMIT orders", valErr.Message)

	_, err = ValidatePrice("oops", TypeLimit)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid price: oops", valErr.Message)

	_, err = ValidatePrice("0", TypeLimit)
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Price must be greater than 0", valErr.Message)
}

func TestValidateOrderParamsMarket(t *testing.T) {
	params, err := ValidateOrderParams("btcusdt", "buy", "market", "0.001", "")
	require.NoError(t, err)
	assert.Equal(t, OrderParams{
		Symbol:   "BTCUSDT",
		Side:     "BUY",
		Type:     "MARKET",
		Quantity: 0.001,
		Price:    nil,
	}, params)
}

func TestValidateOrderParamsLimit(t *testing.T) {
	params, err := ValidateOrderParams("BTCUSDT", "SELL", "LIMIT", "0.001", "100000")
	require.NoError(t, err)
	require.NotNil(t, params.Price)
	assert.Equal(t, 100000.0, *params.Price)
}

func TestValidateOrderParamsFailFastOrder(t *testing.T) {
	// Everything wrong at once: the symbol error wins.
	_, err := ValidateOrderParams("", "hold", "stop", "x", "y")
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Symbol is required", valErr.Message)

	// Fix the symbol: the side error comes next.
	_, err = ValidateOrderParams("BTCUSDT", "hold", "stop", "x", "y")
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "Invalid side")
}
