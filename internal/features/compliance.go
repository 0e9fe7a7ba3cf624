package features

import (
	"math"
	"sort"

	"synthcall/internal/config"
)

// ComplianceStages are the four scripted call stages checked for compliance.
var ComplianceStages = []string{"Greeting", "Empathy", "Summary", "Farewell"}

// Compliance holds the per-stage pass/fail flags and related QA fields.
type Compliance struct {
	Flags             map[string]string
	KBArticleUsed     bool
	LanguageSwitch    bool
	PIIDisclosureFlag bool
	ScriptAdherence   float64
}

// SampleCompliance performs four independent pass/fail draws per configured
// pass rate, adjusted by global, channel, and team deltas, an outage empathy
// penalty, and any per-agent bonus; each effective rate is clamped to
// [0, 0.999]. Stages are drawn in sorted order so the sequence of draws from
// the call stream is stable.
func SampleCompliance(ctx *Context, cfg *config.Config) Compliance {
	r := ctx.R

	defaults := map[string]float64{"Greeting": 0.97, "Empathy": 0.90, "Summary": 0.85, "Farewell": 0.95}
	rates := cfg.Table("compliance.pass_rates", defaults)

	globalDelta := cfg.Float("compliance.global_delta", 0)
	channelDelta := cfg.Float("compliance.channel_deltas."+ctx.Channel, 0)
	teamDelta := cfg.Float("compliance.team_deltas."+ctx.Team, 0)
	agentBonus := cfg.Float("compliance.agent_pass_bonus."+ctx.AgentName, 0)

	adjusted := make(map[string]float64, len(rates))
	for stage, rate := range rates {
		rate += globalDelta + channelDelta + teamDelta + agentBonus
		if stage == "Empathy" && ctx.OutageFlag {
			rate += cfg.Float("compliance.outage_empathy_penalty", -0.08)
		}
		adjusted[stage] = math.Max(0, math.Min(0.999, rate))
	}

	stages := make([]string, 0, len(adjusted))
	for stage := range adjusted {
		stages = append(stages, stage)
	}
	sort.Strings(stages)

	flags := make(map[string]string, len(stages))
	for _, stage := range stages {
		if r.Float64() < adjusted[stage] {
			flags[stage] = "pass"
		} else {
			flags[stage] = "fail"
		}
	}

	script := truncNormal(r, cfg.Float("compliance.script_adherence_mean", 86.0), cfg.Float("compliance.script_adherence_sigma", 6.0), 0)
	if script > 100 {
		script = 100
	}
	script = math.Round(script*10) / 10

	return Compliance{
		Flags:             flags,
		KBArticleUsed:     r.Float64() < cfg.Float("compliance.kb_article_prob", 0.5),
		LanguageSwitch:    r.Float64() < cfg.Float("compliance.language_switch_prob", 0.05),
		PIIDisclosureFlag: r.Float64() < cfg.Float("compliance.pii_disclosure_prob", 0.02),
		ScriptAdherence:   script,
	}
}
