package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// series is one metric family in Prometheus text format. Counters and gauges
// keep a value per label set; histograms keep bucket counts.
type series struct {
	name       string
	help       string
	kind       string
	labelNames []string
	buckets    []float64

	mu     sync.RWMutex
	values map[string]float64
	hists  map[string]*histogram
}

type histogram struct {
	counts []uint64
	sum    float64
	total  uint64
}

type CounterVec struct{ s *series }
type GaugeVec struct{ s *series }
type HistogramVec struct{ s *series }

func newSeries(name, help, kind string, labels []string) *series {
	return &series{
		name:       name,
		help:       help,
		kind:       kind,
		labelNames: labels,
		values:     map[string]float64{},
		hists:      map[string]*histogram{},
	}
}

func NewCounterVec(name, help string, labels ...string) *CounterVec {
	return &CounterVec{s: newSeries(name, help, "counter", labels)}
}

func NewGaugeVec(name, help string, labels ...string) *GaugeVec {
	return &GaugeVec{s: newSeries(name, help, "gauge", labels)}
}

func NewHistogramVec(name, help string, buckets []float64, labels ...string) *HistogramVec {
	if len(buckets) == 0 {
		buckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	}
	s := newSeries(name, help, "histogram", labels)
	s.buckets = append([]float64(nil), buckets...)
	sort.Float64s(s.buckets)
	return &HistogramVec{s: s}
}

func (c *CounterVec) Inc(values ...string) { c.Add(1, values...) }

func (c *CounterVec) Add(v float64, values ...string) {
	if c == nil || v < 0 {
		return
	}
	c.s.add(v, values)
}

// Value reads one label set, mainly for tests.
func (c *CounterVec) Value(values ...string) float64 {
	if c == nil {
		return 0
	}
	return c.s.get(values)
}

func (g *GaugeVec) Set(v float64, values ...string) {
	if g == nil {
		return
	}
	lbl := labelString(g.s.labelNames, values)
	g.s.mu.Lock()
	g.s.values[lbl] = v
	g.s.mu.Unlock()
}

func (g *GaugeVec) Add(v float64, values ...string) {
	if g == nil {
		return
	}
	g.s.add(v, values)
}

func (g *GaugeVec) Value(values ...string) float64 {
	if g == nil {
		return 0
	}
	return g.s.get(values)
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	lbl := labelString(h.s.labelNames, values)
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	hist, ok := h.s.hists[lbl]
	if !ok {
		hist = &histogram{counts: make([]uint64, len(h.s.buckets))}
		h.s.hists[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range h.s.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
}

// Count is the number of observations for one label set.
func (h *HistogramVec) Count(values ...string) uint64 {
	if h == nil {
		return 0
	}
	lbl := labelString(h.s.labelNames, values)
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	if hist, ok := h.s.hists[lbl]; ok {
		return hist.total
	}
	return 0
}

func (s *series) add(v float64, values []string) {
	lbl := labelString(s.labelNames, values)
	s.mu.Lock()
	s.values[lbl] += v
	s.mu.Unlock()
}

func (s *series) get(values []string) float64 {
	lbl := labelString(s.labelNames, values)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[lbl]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *series) write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", s.name, s.help, s.name, s.kind); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kind != "histogram" {
		for _, k := range sortedKeys(s.values) {
			if _, err := fmt.Fprintf(w, "%s%s %g\n", s.name, k, s.values[k]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, k := range sortedKeys(s.hists) {
		h := s.hists[k]
		for i, b := range s.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", s.name, withLe(k, fmt.Sprintf("%g", b)), h.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n%s_sum%s %g\n%s_count%s %d\n",
			s.name, withLe(k, "+Inf"), h.total,
			s.name, k, h.sum,
			s.name, k, h.total,
		); err != nil {
			return err
		}
	}
	return nil
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range names {
		if i > 0 {
			b.WriteString(",")
		}
		val := "unknown"
		if i < len(values) && values[i] != "" {
			val = values[i]
		}
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeLabel(val))
		b.WriteString(`"`)
	}
	b.WriteString("}")
	return b.String()
}

func escapeLabel(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return strings.ReplaceAll(v, "\n", `\n`)
}

func withLe(labels, le string) string {
	if labels == "" {
		return `{le="` + le + `"}`
	}
	return strings.TrimSuffix(labels, "}") + `,le="` + le + `"}`
}
