package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry is the central telemetry facade
// Systems cache metric pointers at construction; update paths write the atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Strings.Count()
}

// Lines renders every metric as "key=value", grouped by type and sorted by key
// Dumped to the log when a session closes
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, key+"="+strconv.FormatInt(v.Load(), 10))
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", key, v.Load()))
	})
	r.Strings.Range(func(key string, v *AtomicString) {
		lines = append(lines, key+"="+v.Load())
	})
	return lines
}
