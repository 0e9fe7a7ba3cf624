// Package weights composes configured probability tables into valid
// categorical distributions.
package weights

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Table maps a category label to its selection probability. A resolved table
// is normalized: every weight is non-negative and the weights sum to 1.
type Table map[string]float64

// Resolve applies additive adjustments to a base table and normalizes the
// result. Missing labels default to a zero delta and an adjustment may
// introduce a label the base table does not know. Negative totals are clamped
// to zero before normalization. Addition is commutative, so the adjustment
// order does not change the distribution; callers still apply them in a fixed
// order (base, time-of-day, agent, segment, incident) to keep configuration
// diffs readable.
func Resolve(base map[string]float64, adjustments ...map[string]float64) Table {
	out := make(Table, len(base))
	for label, w := range base {
		out[label] = w
	}
	for _, adj := range adjustments {
		for label, delta := range adj {
			out[label] += delta
		}
	}
	return Normalize(out)
}

// Normalize clamps negative weights to zero and scales the table to sum to 1.
// An all-zero or empty table resolves to the uniform distribution over its
// labels; this is a recoverable configuration condition, logged as a warning.
func Normalize(t Table) Table {
	out := make(Table, len(t))
	var total float64
	for label, w := range t {
		if w < 0 {
			w = 0
		}
		out[label] = w
		total += w
	}
	if total <= 0 {
		if len(out) == 0 {
			return out
		}
		log.Warn().Int("labels", len(out)).Msg("Degenerate weight table, falling back to uniform")
		u := 1.0 / float64(len(out))
		for label := range out {
			out[label] = u
		}
		return out
	}
	for label := range out {
		out[label] /= total
	}
	return out
}

// Labels returns the table's labels in sorted order. Samplers iterate labels
// through this so cumulative draws are independent of map iteration order.
func (t Table) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
