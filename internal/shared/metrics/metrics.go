package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	riskCheckSubmittedTotal atomic.Uint64
	riskCheckRejectedTotal  atomic.Uint64

	riskCheckBandTotal = newLabeledCounter()

	riskScore = newHistogram([]float64{10, 20, 30, 45, 60, 80, 100})
)

// IncRiskCheckSubmitted increments the completed-submission counter.
func IncRiskCheckSubmitted() {
	riskCheckSubmittedTotal.Add(1)
}

// IncRiskCheckRejected increments the rejected-submission counter.
func IncRiskCheckRejected() {
	riskCheckRejectedTotal.Add(1)
}

// IncRiskBand increments the per-band counter.
func IncRiskBand(band string) {
	riskCheckBandTotal.Inc(strings.ToUpper(strings.TrimSpace(band)))
}

// ObserveRiskScore records a computed risk score.
func ObserveRiskScore(value float64) {
	if value < 0 {
		value = 0
	}
	riskScore.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "risk_check_submitted_total", "Total risk checks recorded", riskCheckSubmittedTotal.Load())
	writeCounter(&buf, "risk_check_rejected_total", "Total risk-check submissions rejected by validation", riskCheckRejectedTotal.Load())
	writeLabeledCounter(&buf, "risk_check_band_total", "Total risk checks by assessed band", "band", riskCheckBandTotal.Snapshot())
	writeHistogram(&buf, "risk_check_score", "Computed risk score distribution", riskScore.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{counts: make(map[string]uint64)}
}

func (c *labeledCounter) Inc(label string) {
	if label == "" {
		return
	}
	c.mu.Lock()
	c.counts[label]++
	c.mu.Unlock()
}

func (c *labeledCounter) Snapshot() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, counts map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	for _, key := range []string{"LOW", "MEDIUM", "HIGH"} {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, key, counts[key])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative = snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, formatBound(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %g\n", name, snap.sum)
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatBound(bound float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%g", bound), ".0")
}
