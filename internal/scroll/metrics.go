package scroll

import (
	"math"
	"sync"
)

// Metrics is the geometry of a scroll target at one instant.
type Metrics struct {
	// Offset is the distance scrolled from the start of the content.
	Offset float64
	// ScrollExtent is the full size of the scrollable content.
	ScrollExtent float64
	// ViewportExtent is the size of the visible part.
	ViewportExtent float64
}

// Valid reports whether every field is finite and non-negative.
func (m Metrics) Valid() bool {
	return validExtent(m.Offset) && validExtent(m.ScrollExtent) && validExtent(m.ViewportExtent)
}

func validExtent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// MetricsProvider reads Metrics from a Host and falls back to the last good
// reading for a target whenever the host cannot measure it. Reads never
// fail; before the first good reading the fallback is zero Metrics.
type MetricsProvider struct {
	host Host

	mu   sync.Mutex
	last map[Target]Metrics
}

// NewMetricsProvider creates a provider over host.
func NewMetricsProvider(host Host) *MetricsProvider {
	return &MetricsProvider{
		host: host,
		last: make(map[Target]Metrics),
	}
}

// Read measures target, returning the last-known-safe value if the target is
// unavailable or reports invalid numbers.
func (p *MetricsProvider) Read(target Target) Metrics {
	m, ok := p.measure(target)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !ok || !m.Valid() {
		return p.last[target]
	}
	p.last[target] = m
	return m
}

func (p *MetricsProvider) measure(target Target) (m Metrics, ok bool) {
	if target.IsZero() || p.host == nil {
		return Metrics{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			m, ok = Metrics{}, false
		}
	}()
	return p.host.Measure(target)
}

// Offset returns the current scroll offset of target.
func (p *MetricsProvider) Offset(target Target) float64 {
	return p.Read(target).Offset
}

// ScrollExtent returns the full content size of target.
func (p *MetricsProvider) ScrollExtent(target Target) float64 {
	return p.Read(target).ScrollExtent
}

// ViewportExtent returns the visible size of target.
func (p *MetricsProvider) ViewportExtent(target Target) float64 {
	return p.Read(target).ViewportExtent
}

// Forget drops the remembered reading for target.
func (p *MetricsProvider) Forget(target Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.last, target)
}
