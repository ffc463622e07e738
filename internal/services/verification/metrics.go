package verification

import "time"

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordSubmission(string)                       {}
func (n *NoopMetricsCollector) RecordFulfillment(bool, int)                   {}
func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
