// Package calendar derives per-day operating conditions for a date range:
// weekday factors, simulated outages and the app issues that trail them, and
// the static premium wait-time peaks.
package calendar

import (
	"sort"
	"time"

	"synthcall/internal/config"
	"synthcall/internal/rng"
)

// Weekdays are the three-letter labels used throughout records and
// configuration, Monday first.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayPlan captures one date's operating conditions. It is created once per
// date and never mutated afterwards.
type DayPlan struct {
	Date            time.Time
	Weekday         string
	IsWeekend       bool
	WeekdayFactor   float64
	OutageFlag      bool
	AppIssueFlag    bool
	PremiumWaitPeak bool
}

// ISODate is the date rendered as YYYY-MM-DD.
func (d DayPlan) ISODate() string {
	return d.Date.Format("2006-01-02")
}

// weekdayIndex maps Go's Sunday-first weekday to Monday-first (Mon=0..Sun=6).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Range lists every date from start through end inclusive, normalized to
// midnight UTC.
func Range(start, end time.Time) []time.Time {
	start = midnight(start)
	end = midnight(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SelectOutageDays draws the configured number of outage dates, without
// replacement, from the range's non-weekend days. The stream is keyed on the
// range bounds alone, so the outage set is stable for a given seed and range
// no matter what else the run generates. Requesting more outages than there
// are weekdays clamps to the available count.
func SelectOutageDays(start, end time.Time, count int, mgr *rng.Manager) map[time.Time]bool {
	out := map[time.Time]bool{}
	if count <= 0 {
		return out
	}
	var weekdays []time.Time
	for _, d := range Range(start, end) {
		if weekdayIndex(d) < 5 {
			weekdays = append(weekdays, d)
		}
	}
	if len(weekdays) == 0 {
		return out
	}
	if count > len(weekdays) {
		count = len(weekdays)
	}
	r := mgr.Derive(rng.K("outages", start.Format("2006-01-02"), end.Format("2006-01-02")))
	for _, idx := range r.Perm(len(weekdays))[:count] {
		out[weekdays[idx]] = true
	}
	return out
}

// Make builds the day plans for every date in [start, end].
func Make(start, end time.Time, cfg *config.Config, mgr *rng.Manager) []DayPlan {
	outagesCount := cfg.Int("calendar.incidents.outages_count", 0)
	appAfterDays := cfg.Int("calendar.incidents.app_issue_after_outage_days", 0)
	// Peak days are weekday labels, so the flag recurs weekly.
	peakDays := map[string]bool{}
	for _, wd := range cfg.Strings("calendar.incidents.premium_wait_peak_days", nil) {
		peakDays[wd] = true
	}

	outageDays := SelectOutageDays(start, end, outagesCount, mgr)

	// App issues trail each outage for the configured number of days; a date
	// can inherit the flag from more than one outage.
	appIssueDays := map[time.Time]bool{}
	endDay := midnight(end)
	ordered := make([]time.Time, 0, len(outageDays))
	for d := range outageDays {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })
	for _, d := range ordered {
		for k := 1; k <= appAfterDays; k++ {
			nd := d.AddDate(0, 0, k)
			if !nd.After(endDay) {
				appIssueDays[nd] = true
			}
		}
	}

	var days []DayPlan
	for _, d := range Range(start, end) {
		idx := weekdayIndex(d)
		wd := Weekdays[idx]
		days = append(days, DayPlan{
			Date:            d,
			Weekday:         wd,
			IsWeekend:       idx >= 5,
			WeekdayFactor:   cfg.Float("calendar.weekday_factors."+wd, 1.0),
			OutageFlag:      outageDays[d],
			AppIssueFlag:    appIssueDays[d],
			PremiumWaitPeak: peakDays[wd],
		})
	}
	return days
}
