// Package features samples the interdependent fields of one call.
//
// Samplers run in a fixed order (segment, channel, geo, intent, scenario,
// operational metrics, resolution, satisfaction, identity, silence, product,
// automation, compliance) because later fields' weight tables depend on
// earlier ones. Each categorical field draws from its own stream, keyed by
// the call's full path plus the field name; sequential numeric draws share
// the call's own stream.
package features

import (
	"golang.org/x/exp/rand"

	"synthcall/internal/calendar"
	"synthcall/internal/rng"
)

// Context carries one call's identity and its progressively sampled fields.
// Fields are written exactly once, in pipeline order.
type Context struct {
	Date    string // ISO date
	Weekday string
	Bucket  string

	AgentName string
	Team      string
	Shift     string
	Index     int

	Segment  string
	Channel  string
	Region   string
	Language string
	Device   string
	Intents  []string
	Scenario string

	OutageFlag      bool
	AppIssueFlag    bool
	PremiumWaitPeak bool
	HourBefore18    bool

	// R is the call's own stream, used for the sequential numeric draws.
	R *rand.Rand

	mgr *rng.Manager
}

// NewContext derives the call stream and seeds a context for one call slot.
func NewContext(mgr *rng.Manager, day calendar.DayPlan, agent, team, shift, bucket string, index int) *Context {
	date := day.ISODate()
	return &Context{
		Date:            date,
		Weekday:         day.Weekday,
		Bucket:          bucket,
		AgentName:       agent,
		Team:            team,
		Shift:           shift,
		Index:           index,
		OutageFlag:      day.OutageFlag,
		AppIssueFlag:    day.AppIssueFlag,
		PremiumWaitPeak: day.PremiumWaitPeak,
		HourBefore18:    bucket == "Morning" || bucket == "Afternoon",
		R:               mgr.Derive(rng.K(date, agent, shift, bucket, index)),
		mgr:             mgr,
	}
}

// PrimaryIntent is the first sampled intent, or the fallback topic when
// nothing has been sampled yet.
func (c *Context) PrimaryIntent() string {
	if len(c.Intents) > 0 {
		return c.Intents[0]
	}
	return "Online-Banking"
}

// fieldRand derives the per-field stream for this call. The key embeds the
// full call path so no two calls, and no two fields of one call, ever share
// a stream.
func (c *Context) fieldRand(field string, extra ...any) *rand.Rand {
	key := rng.K(c.Date, c.AgentName, c.Shift, c.Bucket, c.Index, field).With(extra...)
	return c.mgr.Derive(key)
}
