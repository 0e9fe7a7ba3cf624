package features

import (
	"sort"

	"golang.org/x/exp/rand"

	"synthcall/internal/config"
	"synthcall/internal/weights"
)

// choose draws one label from a resolved table using a single uniform draw
// against cumulative probabilities, scanning labels in sorted order.
func choose(r *rand.Rand, t weights.Table) string {
	labels := t.Labels()
	if len(labels) == 0 {
		return ""
	}
	x := r.Float64()
	var cum float64
	for _, label := range labels {
		cum += t[label]
		if x <= cum {
			return label
		}
	}
	return labels[len(labels)-1]
}

// chooseInt is choose for integer-labelled tables (transfer counts, NPS base
// scores).
func chooseInt(r *rand.Rand, table map[int]float64) int {
	labels := make([]int, 0, len(table))
	var total float64
	for label, w := range table {
		labels = append(labels, label)
		if w > 0 {
			total += w
		}
	}
	if len(labels) == 0 {
		return 0
	}
	sort.Ints(labels)
	x := r.Float64()
	var cum float64
	for _, label := range labels {
		w := table[label]
		if w < 0 {
			w = 0
		}
		if total > 0 {
			cum += w / total
		} else {
			cum += 1.0 / float64(len(labels))
		}
		if x <= cum {
			return label
		}
	}
	return labels[len(labels)-1]
}

// intentTable composes the intent distribution for one call: base table plus
// time-of-day, agent, segment, and incident adjustments, in that order.
func intentTable(ctx *Context, cfg *config.Config) weights.Table {
	base := cfg.Table("intents.base", nil)
	adjs := []map[string]float64{
		cfg.Table("intents.time_of_day."+ctx.Bucket, nil),
		cfg.Table("intents.agent."+ctx.AgentName, nil),
		cfg.Table("intents.segment."+ctx.Segment, nil),
	}
	if ctx.OutageFlag {
		adjs = append(adjs, cfg.Table("intents.incident.outage", nil))
	}
	if ctx.AppIssueFlag {
		adjs = append(adjs, cfg.Table("intents.incident.app_issue", nil))
	}
	return weights.Resolve(base, adjs...)
}

// scenarioTable is conditioned on the call's primary intent only.
func scenarioTable(ctx *Context, primary string, cfg *config.Config) weights.Table {
	base := cfg.Table("scenarios.base", nil)
	adjs := []map[string]float64{
		cfg.Table("scenarios.agent."+ctx.AgentName, nil),
		cfg.Table("scenarios.intent."+primary, nil),
	}
	if ctx.OutageFlag {
		adjs = append(adjs, cfg.Table("scenarios.incident.outage", nil))
	}
	return weights.Resolve(base, adjs...)
}

func channelTable(ctx *Context, cfg *config.Config) weights.Table {
	return weights.Resolve(
		cfg.Table("channels.base", nil),
		cfg.Table("channels.time_of_day_adjustment."+ctx.Bucket, nil),
	)
}

// languageTable applies the premium language bias as a regular additive
// adjustment; other segments use the base distribution unchanged.
func languageTable(segment string, cfg *config.Config) weights.Table {
	base := cfg.Table("geo.language", nil)
	if segment == "Premium" {
		return weights.Resolve(base, cfg.Table("geo.premium_language_bias", nil))
	}
	return weights.Normalize(base)
}

func deviceTable(ctx *Context, cfg *config.Config) weights.Table {
	return weights.Resolve(
		cfg.Table("devices.base", nil),
		cfg.Table("devices.channel_overrides."+ctx.Channel, nil),
	)
}

func productTable(ctx *Context, cfg *config.Config) weights.Table {
	base := cfg.Table("products.base", nil)
	var adjs []map[string]float64
	if ctx.OutageFlag {
		adjs = append(adjs, cfg.Table("products.outage_adjustment", nil))
	}
	if ctx.HourBefore18 {
		adjs = append(adjs, cfg.Table("products.hour_lt_18_adjustment", nil))
	}
	return weights.Resolve(base, adjs...)
}
