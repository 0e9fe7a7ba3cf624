package features

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"synthcall/internal/config"
)

// OpsMetrics are the operational measurements of one call.
type OpsMetrics struct {
	AWT           float64
	HoldTime      float64
	Transfers     int
	SilenceRatio  float64
	Interruptions int
	FCR           bool
}

// truncNormal draws from N(mean, sigma) floored at min.
func truncNormal(r *rand.Rand, mean, sigma, min float64) float64 {
	v := distuv.Normal{Mu: mean, Sigma: sigma, Src: r}.Rand()
	if v < min {
		return min
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// SampleOps draws the operational metrics from the call stream. Wait and
// hold times are truncated normals with additive context deltas applied on
// top of the draw; transfers are a weighted count; FCR is a Bernoulli draw
// whose probability accumulates outage, channel, and team penalties.
func SampleOps(ctx *Context, cfg *config.Config) OpsMetrics {
	r := ctx.R

	awt := truncNormal(r, cfg.Float("ops.awt_seconds.base_median", 90), cfg.Float("ops.awt_seconds.base_sigma", 25), 0)
	if ctx.OutageFlag {
		awt += cfg.Float("ops.awt_seconds.outage_delta", 0)
	}
	awt += cfg.Float("ops.awt_seconds.channel_deltas."+ctx.Channel, 0)
	awt += cfg.Float("ops.awt_seconds.team_deltas."+ctx.Team, 0)
	if ctx.PremiumWaitPeak {
		awt += cfg.Float("ops.awt_seconds.premium_wait_peak_delta", 0)
	}

	hold := truncNormal(r, cfg.Float("ops.hold_seconds.base_median", 45), cfg.Float("ops.hold_seconds.base_sigma", 20), 0)
	hold += cfg.Float("ops.hold_seconds.channel_deltas."+ctx.Channel, 0)

	defaultTransfers := map[int]float64{0: 0.7, 1: 0.2, 2: 0.08, 3: 0.02}
	transferProbs := cfg.IntTable("ops.transfers_count.channel_overrides."+ctx.Channel,
		cfg.IntTable("ops.transfers_count.base_probs", defaultTransfers))
	transfers := chooseInt(r, transferProbs)

	silence := truncNormal(r,
		cfg.Float("ops.silence_ratio.mean", 9.0)+cfg.Float("ops.silence_ratio.channel_deltas."+ctx.Channel, 0),
		cfg.Float("ops.silence_ratio.sigma", 4.0), 0)
	if silence > 100 {
		silence = 100
	}

	interruptions := truncNormal(r,
		cfg.Float("ops.interruptions_count.mean", 1.2)+cfg.Float("ops.interruptions_count.channel_deltas."+ctx.Channel, 0),
		cfg.Float("ops.interruptions_count.sigma", 0.8), 0)

	fcrProb := cfg.Float("ops.fcr_base_prob", 0.78)
	if ctx.OutageFlag {
		fcrProb += cfg.Float("ops.fcr_penalties.outage", -0.15)
	}
	fcrProb += cfg.Float("ops.fcr_penalties.channel."+ctx.Channel, 0)
	fcrProb += cfg.Float("ops.fcr_penalties.team."+ctx.Team, 0)
	fcr := r.Float64() < clamp01(fcrProb)

	return OpsMetrics{
		AWT:           round2(awt),
		HoldTime:      round2(hold),
		Transfers:     transfers,
		SilenceRatio:  round2(silence),
		Interruptions: int(math.Round(interruptions)),
		FCR:           fcr,
	}
}

// SampleSilenceTotal draws the call's total silence. The mean accumulates
// agent, team, channel, and scenario deltas plus a penalty growing with how
// far the NPS score fell below the configured low threshold.
func SampleSilenceTotal(ctx *Context, scenario string, npsScore int, cfg *config.Config) float64 {
	mean := cfg.Float("ops.silence_total_seconds.base_mean", 12.0)
	mean += cfg.Float("ops.silence_total_seconds.agent_deltas."+ctx.AgentName, 0)
	mean += cfg.Float("ops.silence_total_seconds.team_deltas."+ctx.Team, 0)
	mean += cfg.Float("ops.silence_total_seconds.channel_lifts."+ctx.Channel, 0)
	mean += cfg.Float("ops.silence_total_seconds.scenario_lifts."+scenario, 0)

	lowThreshold := cfg.Int("ops.silence_total_seconds.nps.low_threshold", 7)
	perPoint := cfg.Float("ops.silence_total_seconds.nps.per_point_below", 1.5)
	if below := lowThreshold - npsScore; below > 0 {
		mean += float64(below) * perPoint
	}

	sigma := cfg.Float("ops.silence_total_seconds.base_sigma", 6.0)
	return round2(truncNormal(ctx.R, mean, sigma, 0))
}
