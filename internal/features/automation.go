package features

import (
	"synthcall/internal/config"
	"synthcall/internal/weights"
)

// Automation describes the call's self-service assessment.
type Automation struct {
	SelfServicePotential string
	ActionPresent        bool
	ActionType           *string
}

// SampleAutomation draws the self-service potential for the primary intent
// and whether an automation action fired. Configured intents lift the action
// probability; outages suppress it. The action type is only drawn when an
// action is present.
func SampleAutomation(ctx *Context, cfg *config.Config) Automation {
	primary := ctx.PrimaryIntent()

	ssp := choose(ctx.fieldRand("ssp"), weights.Normalize(cfg.Table("automation.self_service_potential", nil)))

	p := cfg.Float("automation.action_present_base", 0.15)
	p += cfg.Float("automation.intent_lifts."+primary, 0)
	if ctx.OutageFlag {
		p += cfg.Float("automation.outage_penalty", -0.07)
	}
	present := ctx.R.Float64() < clamp01(p)

	var actionType *string
	if present {
		t := choose(ctx.fieldRand("action"), weights.Normalize(cfg.Table("automation.action_type", nil)))
		if t != "" {
			actionType = &t
		}
	}

	return Automation{
		SelfServicePotential: ssp,
		ActionPresent:        present,
		ActionType:           actionType,
	}
}
