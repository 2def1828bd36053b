package service

import (
	"time"

	"github.com/onenetwo/billing-services/callbackprocessor/internal/metrics"
)

// recordDBQuery guards the metrics sink so services can run without one in
// tests.
func recordDBQuery(m *metrics.Metrics, operation string, table string, status string, start time.Time) {
	if m == nil {
		return
	}
	m.RecordDBQuery(operation, table, status, time.Since(start))
}
