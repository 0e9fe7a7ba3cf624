package features

import (
	"math"

	"synthcall/internal/config"
)

// Resolution captures the call's follow-up outcome.
type Resolution struct {
	RepeatCallWithin72h bool
	Escalation          string
	ComplaintCategory   string
}

// SampleResolution applies the rule-based resolution branching. Unresolved
// technical topics escalate straight to an IT ticket; other unresolved calls
// go to backoffice or a supervisor. The complaint category is fully
// determined by context except through FCR.
func SampleResolution(ctx *Context, fcr bool, cfg *config.Config) Resolution {
	r := ctx.R

	repeatProb := cfg.Float("ops.repeat_prob_fcr", 0.10)
	if !fcr {
		repeatProb = cfg.Float("ops.repeat_prob_no_fcr", 0.35)
	}
	repeat := r.Float64() < repeatProb

	primary := ctx.PrimaryIntent()
	var escalation string
	switch {
	case !fcr && (primary == "Online-Banking" || primary == "Technical Support"):
		escalation = "IT Ticket"
	case fcr:
		escalation = "None"
	case r.Float64() < cfg.Float("ops.backoffice_escalation_prob", 0.2):
		escalation = "Backoffice"
	default:
		escalation = "Supervisor"
	}

	complaint := "Fees"
	switch {
	case ctx.PremiumWaitPeak && ctx.Channel == "voice":
		complaint = "WaitTime"
	case !fcr:
		complaint = "TechnicalIssue"
	}

	return Resolution{
		RepeatCallWithin72h: repeat,
		Escalation:          escalation,
		ComplaintCategory:   complaint,
	}
}

// Satisfaction is the sampled NPS score and the sentiment derived from it.
type Satisfaction struct {
	NPSScore       int
	SentimentScore float64
}

// SampleSatisfaction draws a weighted base NPS score and applies additive
// corrections for long waits, unresolved calls, and premium wait peaks,
// clamped into [0, happy_cap]. Sentiment is a linear transform of the score
// plus small Gaussian noise, bounded to [-1, 1].
func SampleSatisfaction(ctx *Context, fcr bool, awt float64, cfg *config.Config) Satisfaction {
	r := ctx.R

	base := cfg.IntTable("nps.base_weights", map[int]float64{6: 0.15, 7: 0.2, 8: 0.25, 9: 0.25, 10: 0.15})
	score := chooseInt(r, base)

	correction := 0
	if awt > 120 {
		correction += cfg.Int("nps.corrections.awt_gt_120", -2)
	}
	if !fcr {
		correction += cfg.Int("nps.corrections.fcr_zero", -1)
	}
	if ctx.PremiumWaitPeak {
		correction += cfg.Int("nps.corrections.premium_waittime", -2)
	}
	score += correction
	if happyCap := cfg.Int("nps.corrections.happy_cap", 10); score > happyCap {
		score = happyCap
	}
	if score < 0 {
		score = 0
	}

	sentiment := float64(score-5)/5.0 + r.NormFloat64()*0.1
	sentiment = math.Max(-1, math.Min(1, sentiment))
	sentiment = math.Round(sentiment*1000) / 1000

	return Satisfaction{NPSScore: score, SentimentScore: sentiment}
}
