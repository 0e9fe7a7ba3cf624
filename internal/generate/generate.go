// Package generate orchestrates the full dataset pipeline: calendar, volume
// allocation, per-call feature sampling, record assembly, validation, and
// persistence.
//
// Days are generated in parallel with a bounded worker group. Because every
// random decision is keyed by its call path, the output is byte-identical to
// a serial run; the only shared state is the identity cache, and its entries
// are derived from the customer key alone, so the stored value is the same
// whichever goroutine wins the first write.
package generate

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"synthcall/internal/calendar"
	"synthcall/internal/config"
	"synthcall/internal/features"
	"synthcall/internal/record"
	"synthcall/internal/rng"
	"synthcall/internal/volume"
)

// Options bundle one run's parameters.
type Options struct {
	Start    time.Time
	End      time.Time
	OutDir   string
	Seed     int64
	Validate bool
	Workers  int
}

// Summary reports what a run produced. Schema failures are per-record: the
// affected record is not persisted, everything else is.
type Summary struct {
	Days              int
	Calls             int
	FailedValidations int
	Customers         int
}

// Run generates the complete dataset for the configured date range.
func Run(cfg *config.Config, opts Options) (*Summary, error) {
	if opts.End.Before(opts.Start) {
		return nil, fmt.Errorf("end date %s before start date %s",
			opts.End.Format("2006-01-02"), opts.Start.Format("2006-01-02"))
	}
	validator, err := record.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := record.WriteMeta(opts.OutDir, cfg); err != nil {
		return nil, fmt.Errorf("write run metadata: %w", err)
	}

	mgr := rng.New(opts.Seed)
	days := calendar.Make(opts.Start, opts.End, cfg, mgr)
	cache := features.NewIdentityCache()

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var calls, failed int64
	var g errgroup.Group
	g.SetLimit(workers)
	for _, day := range days {
		g.Go(func() error {
			c, f, err := generateDay(day, cfg, mgr, cache, validator, opts)
			if err != nil {
				return err
			}
			atomic.AddInt64(&calls, int64(c))
			atomic.AddInt64(&failed, int64(f))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Summary{
		Days:              len(days),
		Calls:             int(calls),
		FailedValidations: int(failed),
		Customers:         cache.Len(),
	}, nil
}

// generateDay produces and persists every call of one day.
func generateDay(day calendar.DayPlan, cfg *config.Config, mgr *rng.Manager, cache *features.IdentityCache, validator *record.Validator, opts Options) (calls, failed int, err error) {
	vol := volume.EstimateDaily(day, cfg, mgr)
	byAgent := volume.SplitByAgent(day, vol.Estimated, cfg, mgr)

	log.Debug().
		Str("date", day.ISODate()).
		Int("volume", vol.Estimated).
		Bool("outage", day.OutageFlag).
		Bool("appIssue", day.AppIssueFlag).
		Msg("Generating day")

	for _, agent := range sortedKeys(byAgent) {
		team := cfg.String("agents.members."+agent+".team", "Team A")
		byShift := volume.SplitByShift(day, agent, byAgent[agent], cfg, mgr)
		for _, shift := range sortedKeys(byShift) {
			byBucket := volume.SplitByBuckets(day, agent, shift, byShift[shift], cfg, mgr)
			for _, bucket := range sortedKeys(byBucket) {
				for i := 0; i < byBucket[bucket]; i++ {
					rec := buildCall(day, agent, team, shift, bucket, i, cfg, mgr, cache)

					// Text-channel records intentionally omit fields the
					// schema requires, so validation only covers voice.
					if opts.Validate && rec.Channel != "text" {
						if verr := validator.Validate(rec); verr != nil {
							failed++
							vErr := &record.ValidationError{
								CallID: rec.CallID,
								Date:   rec.Date,
								Agent:  agent,
								Bucket: bucket,
								Index:  i,
								Err:    verr,
							}
							log.Error().Err(vErr).Msg("Dropping record that failed validation")
							continue
						}
					}
					if _, werr := record.Write(opts.OutDir, rec); werr != nil {
						return calls, failed, werr
					}
					calls++
				}
			}
		}
	}
	return calls, failed, nil
}

// buildCall runs the sampling pipeline for one call slot and assembles the
// record. Sampler order is fixed: later samplers read fields the earlier
// ones wrote.
func buildCall(day calendar.DayPlan, agent, team, shift, bucket string, index int, cfg *config.Config, mgr *rng.Manager, cache *features.IdentityCache) *record.CallRecord {
	ctx := features.NewContext(mgr, day, agent, team, shift, bucket, index)

	callID := rng.UUID(ctx.R)
	segment := features.SampleSegment(ctx, cfg)
	channel := features.SampleChannel(ctx, cfg)
	_, _, device := features.SampleGeo(ctx, cfg)
	features.SampleIntents(ctx, cfg)
	scenario := features.SampleScenario(ctx, cfg)
	ops := features.SampleOps(ctx, cfg)
	resolution := features.SampleResolution(ctx, ops.FCR, cfg)
	satisfaction := features.SampleSatisfaction(ctx, ops.FCR, ops.AWT, cfg)

	// A repeat customer keeps one identity for the whole run. The candidate
	// is derived from the customer key, not from this call's draws, so the
	// cached value is the same regardless of which call stores it first.
	customerKey := features.CustomerKey(segment, channel, scenario)
	identity, _ := cache.LoadOrStore(customerKey, features.GenerateIdentity(mgr, cfg, customerKey, segment))

	silenceTotal := features.SampleSilenceTotal(ctx, scenario, satisfaction.NPSScore, cfg)
	product, amountBucket := features.SampleProduct(ctx, cfg)
	automation := features.SampleAutomation(ctx, cfg)
	compliance := features.SampleCompliance(ctx, cfg)

	holdTime := ops.HoldTime
	silenceRatio := ops.SilenceRatio
	interruptions := ops.Interruptions

	rec := &record.CallRecord{
		CallID:          callID,
		Date:            day.ISODate(),
		Weekday:         day.Weekday,
		TimeOfDayBucket: bucket,
		AgentName:       agent,
		Team:            team,
		AgentShift:      shift,

		CustomerSegment: segment,
		Channel:         channel,
		Language:        identity.Language,
		Region:          identity.Region,
		DeviceType:      device,

		Intent:   ctx.PrimaryIntent(),
		Scenario: scenario,

		AWT:                 ops.AWT,
		HoldTime:            &holdTime,
		TransfersCount:      ops.Transfers,
		SilenceRatio:        &silenceRatio,
		SilenceTotalSeconds: silenceTotal,
		InterruptionsCount:  &interruptions,
		FCR:                 ops.FCR,

		RepeatCallWithin72h: resolution.RepeatCallWithin72h,
		Escalation:          resolution.Escalation,
		ComplaintCategory:   resolution.ComplaintCategory,

		NPSScore:       satisfaction.NPSScore,
		SentimentScore: satisfaction.SentimentScore,

		SelfServicePotential:    automation.SelfServicePotential,
		AutomationActionPresent: automation.ActionPresent,
		AutomationActionType:    automation.ActionType,

		AmountBucket: amountBucket,

		ANI: identity.ANI,

		ComplianceFlags:   compliance.Flags,
		KBArticleUsed:     compliance.KBArticleUsed,
		LanguageSwitch:    compliance.LanguageSwitch,
		PIIDisclosureFlag: compliance.PIIDisclosureFlag,
		ScriptAdherence:   compliance.ScriptAdherence,
	}
	if product != "" {
		rec.Product = &product
	}
	if channel == "text" {
		rec.SuppressTextChannelFields()
	}
	return rec
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
