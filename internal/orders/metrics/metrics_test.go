package metrics

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestInitializeMetrics(t *testing.T) {
	t.Run("initializes all metric instruments successfully", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		if metrics.ordersCreatedTotal == nil {
			t.Error("ordersCreatedTotal is nil")
		}
		if metrics.orderCreationDuration == nil {
			t.Error("orderCreationDuration is nil")
		}
		if metrics.checkoutsTotal == nil {
			t.Error("checkoutsTotal is nil")
		}
		if metrics.paymentNotificationsTotal == nil {
			t.Error("paymentNotificationsTotal is nil")
		}
	})
}

func TestRecordOrderCreated(t *testing.T) {
	t.Run("records created orders with a status label", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		ctx := context.Background()
		metrics.RecordOrderCreated(ctx, true)
		metrics.RecordOrderCreated(ctx, true)
		metrics.RecordOrderCreated(ctx, false)

		rm := collect(t, reader)
		m, found := findMetric(rm, "orders_created_total")
		if !found {
			t.Fatal("orders_created_total metric not found")
		}

		sum, ok := m.Data.(metricdata.Sum[int64])
		if !ok {
			t.Fatal("Expected Sum[int64] data type")
		}
		if len(sum.DataPoints) != 2 {
			t.Errorf("Expected 2 data points (success and error), got %d", len(sum.DataPoints))
		}

		var total int64
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
		if total != 3 {
			t.Errorf("Expected 3 recorded orders, got %d", total)
		}
	})
}

func TestRecordCheckout(t *testing.T) {
	t.Run("records checkout attempts", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		metrics.RecordCheckout(context.Background(), true)

		rm := collect(t, reader)
		if _, found := findMetric(rm, "order_checkouts_total"); !found {
			t.Error("order_checkouts_total metric not found")
		}
	})
}

func TestRecordPaymentNotification(t *testing.T) {
	t.Run("records notifications with an outcome label", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		meter := mp.Meter("test")

		metrics, err := NewMetrics(meter)
		if err != nil {
			t.Fatalf("NewMetrics() failed: %v", err)
		}

		metrics.RecordPaymentNotification(context.Background(), "APPROVED")
		metrics.RecordPaymentNotification(context.Background(), "DENIED")

		rm := collect(t, reader)
		m, found := findMetric(rm, "payment_notifications_total")
		if !found {
			t.Fatal("payment_notifications_total metric not found")
		}

		sum, ok := m.Data.(metricdata.Sum[int64])
		if !ok {
			t.Fatal("Expected Sum[int64] data type")
		}
		if len(sum.DataPoints) != 2 {
			t.Errorf("Expected 2 data points, got %d", len(sum.DataPoints))
		}
	})
}
