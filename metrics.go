package solr

import "context"

type Metrics interface {
	NewHistogram(name, desc string, buckets ...float64)
	RecordHistogram(ctx context.Context, name string, value float64, labels ...string)
}

// noopMetrics is installed by New so the client works without UseMetrics.
type noopMetrics struct{}

func (noopMetrics) NewHistogram(string, string, ...float64)                     {}
func (noopMetrics) RecordHistogram(context.Context, string, float64, ...string) {}
