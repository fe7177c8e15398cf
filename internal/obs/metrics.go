package obs

import (
	"sort"
	"strings"
	"sync"

	"dqx0.com/go/webfx/webfx"
)

// MapMeter is an in-memory webfx.Meter: counters accumulate, histograms
// keep count and sum. Good enough for the demo binary and for asserting
// measurements in tests.
type MapMeter struct {
	mu       sync.Mutex
	counters map[string]float64
	hists    map[string]*histogram
}

type histogram struct {
	count uint64
	sum   float64
}

func NewMapMeter() *MapMeter {
	return &MapMeter{
		counters: make(map[string]float64),
		hists:    make(map[string]*histogram),
	}
}

func (m *MapMeter) Counter(name string, value float64, labels ...webfx.Label) {
	k := key(name, labels)
	m.mu.Lock()
	m.counters[k] += value
	m.mu.Unlock()
}

func (m *MapMeter) Histogram(name string, value float64, labels ...webfx.Label) {
	k := key(name, labels)
	m.mu.Lock()
	h := m.hists[k]
	if h == nil {
		h = &histogram{}
		m.hists[k] = h
	}
	h.count++
	h.sum += value
	m.mu.Unlock()
}

// CounterValue returns the accumulated counter for name+labels.
func (m *MapMeter) CounterValue(name string, labels ...webfx.Label) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[key(name, labels)]
}

// HistogramCount returns how many observations name+labels has seen.
func (m *MapMeter) HistogramCount(name string, labels ...webfx.Label) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h := m.hists[key(name, labels)]; h != nil {
		return h.count
	}
	return 0
}

// Snapshot returns a copy of all counters, keyed by name{k=v,...}.
func (m *MapMeter) Snapshot() map[string]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out
}

func key(name string, labels []webfx.Label) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l.Key + "=" + l.Value
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}
