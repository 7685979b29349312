package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserverCountsRequests(t *testing.T) {
	APIRequestsTotal.Reset()

	obs := Observer{}
	obs.ObserveRequest("/fapi/v1/order", "POST", 200, 30*time.Millisecond)
	obs.ObserveRequest("/fapi/v1/order", "POST", 200, 25*time.Millisecond)
	obs.ObserveRequest("/fapi/v1/time", "GET", 0, time.Second)

	got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("/fapi/v1/order", "POST", "200"))
	if got != 2 {
		t.Errorf("Expected 2 order requests, got %f", got)
	}

	got = testutil.ToFloat64(APIRequestsTotal.WithLabelValues("/fapi/v1/time", "GET", "0"))
	if got != 1 {
		t.Errorf("Expected 1 failed time request, got %f", got)
	}
}

func TestRecordOrderResult(t *testing.T) {
	OrdersPlaced.Reset()

	RecordOrderResult("success")
	RecordOrderResult("success")
	RecordOrderResult("api_error")

	if got := testutil.ToFloat64(OrdersPlaced.WithLabelValues("success")); got != 2 {
		t.Errorf("Expected 2 successes, got %f", got)
	}
	if got := testutil.ToFloat64(OrdersPlaced.WithLabelValues("api_error")); got != 1 {
		t.Errorf("Expected 1 api_error, got %f", got)
	}
}
