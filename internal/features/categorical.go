package features

import (
	"synthcall/internal/config"
	"synthcall/internal/weights"
)

// SampleSegment draws the customer segment.
func SampleSegment(ctx *Context, cfg *config.Config) string {
	table := cfg.Table("segments.customer", map[string]float64{"Premium": 0.25, "Standard": 0.75})
	ctx.Segment = choose(ctx.fieldRand("segment"), weights.Normalize(table))
	return ctx.Segment
}

// SampleChannel draws the interaction channel, adjusted for time of day.
func SampleChannel(ctx *Context, cfg *config.Config) string {
	ctx.Channel = choose(ctx.fieldRand("channel"), channelTable(ctx, cfg))
	return ctx.Channel
}

// SampleGeo draws region, language, and device. Premium customers get a
// configured additive language bias; the device table depends on the channel
// sampled before this.
func SampleGeo(ctx *Context, cfg *config.Config) (region, language, device string) {
	region = choose(ctx.fieldRand("region"), weights.Normalize(cfg.Table("geo.region", nil)))

	language = choose(ctx.fieldRand("language"), languageTable(ctx.Segment, cfg))
	device = choose(ctx.fieldRand("device"), deviceTable(ctx, cfg))

	ctx.Region = region
	ctx.Language = language
	ctx.Device = device
	return region, language, device
}

// SampleIntents draws one to three distinct intents: one with 70%
// probability, two with 20%, three with 10%, decided by a single uniform
// draw. Picks are weighted and without replacement; each chosen label is
// removed before the next draw.
func SampleIntents(ctx *Context, cfg *config.Config) []string {
	table := intentTable(ctx, cfg)
	if len(table) == 0 {
		ctx.Intents = []string{"Online-Banking"}
		return ctx.Intents
	}

	p := ctx.fieldRand("intent_count").Float64()
	count := 1
	switch {
	case p < 0.70:
		count = 1
	case p < 0.90:
		count = 2
	default:
		count = 3
	}

	remaining := make(map[string]float64, len(table))
	for k, v := range table {
		remaining[k] = v
	}
	var chosen []string
	for len(chosen) < count && len(remaining) > 0 {
		pick := choose(ctx.fieldRand("intent", len(chosen)), weights.Normalize(remaining))
		chosen = append(chosen, pick)
		delete(remaining, pick)
	}
	ctx.Intents = chosen
	return chosen
}

// SampleScenario draws the operational scenario for the primary intent.
func SampleScenario(ctx *Context, cfg *config.Config) string {
	primary := ctx.PrimaryIntent()
	ctx.Scenario = choose(ctx.fieldRand("scenario"), scenarioTable(ctx, primary, cfg))
	return ctx.Scenario
}

// SampleProduct draws the product in context and, for monetary products, an
// amount bucket. Non-monetary products have no amount.
func SampleProduct(ctx *Context, cfg *config.Config) (product string, amountBucket *string) {
	product = choose(ctx.fieldRand("product"), productTable(ctx, cfg))
	switch product {
	case "Transfer", "Loan", "Hypothek":
		b := choose(ctx.fieldRand("amount", product), weights.Normalize(cfg.Table("products.amount_buckets", nil)))
		if b != "" {
			amountBucket = &b
		}
	}
	return product, amountBucket
}
