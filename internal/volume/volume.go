// Package volume turns a day plan into an integer call count and splits it
// exactly across agents, shifts, and time-of-day buckets.
//
// Every split draws from a stream keyed with its full parent path
// (date → agent → shift), so each branch of the allocation tree is
// reproducible on its own and the cascade conserves counts at every level.
package volume

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"synthcall/internal/calendar"
	"synthcall/internal/config"
	"synthcall/internal/rng"
)

// DailyVolume is the configured base count and the estimate derived from it.
type DailyVolume struct {
	Base      int
	Estimated int
}

// incidentBoost draws the day's demand surge, uniform in the configured
// range, only when an incident affects the day. One draw per date.
func incidentBoost(day calendar.DayPlan, cfg *config.Config, mgr *rng.Manager) float64 {
	if !day.OutageFlag && !day.AppIssueFlag {
		return 0
	}
	lo := cfg.Float("volume.incident_boost_min", 0.25)
	hi := cfg.Float("volume.incident_boost_max", 0.40)
	r := mgr.Derive(rng.K("incident_boost", day.ISODate()))
	return distuv.Uniform{Min: lo, Max: hi, Src: r}.Rand()
}

// EstimateDaily computes the day's call count: weekday or weekend baseline,
// scaled by the weekday factor, the incident boost, and the global volume
// reduction factor, rounded to the nearest integer and floored at zero.
func EstimateDaily(day calendar.DayPlan, cfg *config.Config, mgr *rng.Manager) DailyVolume {
	basePath := "volume.base_weekday"
	if day.IsWeekend {
		basePath = "volume.base_weekend"
	}
	base := cfg.Int(basePath, 200)
	boost := incidentBoost(day, cfg, mgr)
	reduction := cfg.Float("meta.volume_reduction_factor", 0.2)
	estimated := int(math.Round(float64(base) * day.WeekdayFactor * (1.0 + boost) * reduction))
	if estimated < 0 {
		estimated = 0
	}
	return DailyVolume{Base: base, Estimated: estimated}
}

// SplitByAgent partitions the day total across agents using the weekday or
// weekend allocation table.
func SplitByAgent(day calendar.DayPlan, total int, cfg *config.Config, mgr *rng.Manager) map[string]int {
	allocPath := "agents.allocation.weekday"
	if day.IsWeekend {
		allocPath = "agents.allocation.weekend"
	}
	alloc := cfg.Table(allocPath, nil)
	r := mgr.Derive(rng.K("split_agent", day.ISODate()))
	return rng.MultinomialSplit(total, alloc, r)
}

// SplitByShift partitions one agent's daily count across that agent's shift
// profile.
func SplitByShift(day calendar.DayPlan, agent string, total int, cfg *config.Config, mgr *rng.Manager) map[string]int {
	profile := cfg.Table("agents.members."+agent+".shifts", nil)
	r := mgr.Derive(rng.K("split_shift", day.ISODate(), agent))
	return rng.MultinomialSplit(total, profile, r)
}

// SplitByBuckets partitions a shift block across the weekday or weekend
// time-of-day bucket profile.
func SplitByBuckets(day calendar.DayPlan, agent, shift string, total int, cfg *config.Config, mgr *rng.Manager) map[string]int {
	bucketPath := "buckets.weekday"
	if day.IsWeekend {
		bucketPath = "buckets.weekend"
	}
	profile := cfg.Table(bucketPath, nil)
	r := mgr.Derive(rng.K("split_bucket", day.ISODate(), agent, shift))
	return rng.MultinomialSplit(total, profile, r)
}
