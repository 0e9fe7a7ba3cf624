package features

import (
	"strings"
	"sync"

	"synthcall/internal/config"
	"synthcall/internal/rng"
	"synthcall/internal/weights"
)

// Identity is a reusable customer identity: phone number plus the region and
// language pinned when the customer was first seen.
type Identity struct {
	ANI      string
	Region   string
	Language string
}

// IdentityCache memoizes identities per derived customer key for the lifetime
// of one generation run, so a repeat customer keeps the same ANI, region, and
// language. Writes are at-most-once per key, first writer wins; candidates
// must be a pure function of the key (see GenerateIdentity) so the stored
// value does not depend on which goroutine wins under concurrent day
// generation.
type IdentityCache struct {
	mu sync.Mutex
	m  map[string]Identity
}

// NewIdentityCache returns an empty cache.
func NewIdentityCache() *IdentityCache {
	return &IdentityCache{m: map[string]Identity{}}
}

// LoadOrStore returns the cached identity for key, or stores and returns the
// candidate when the key is new. The second result reports whether the value
// was already cached.
func (c *IdentityCache) LoadOrStore(key string, candidate Identity) (Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.m[key]; ok {
		return existing, true
	}
	c.m[key] = candidate
	return candidate, false
}

// Len reports the number of distinct customers seen so far.
func (c *IdentityCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// CustomerKey derives the repeat-customer key from segment, channel, and the
// scenario's leading topic word.
func CustomerKey(segment, channel, scenario string) string {
	topic := scenario
	if i := strings.IndexByte(scenario, ' '); i >= 0 {
		topic = scenario[:i]
	}
	return segment + "|" + channel + "|" + topic
}

// GenerateIdentity derives a customer's full identity from the customer key
// alone. Region and language use the same configured geo tables as the
// per-call draws, including the premium bias, but from streams keyed on the
// customer key, so every call that observes a new customer computes an
// identical candidate and the cache stores the same identity no matter which
// call stores it first.
func GenerateIdentity(mgr *rng.Manager, cfg *config.Config, customerKey, segment string) Identity {
	region := choose(mgr.Derive(rng.K("identity_region", customerKey)),
		weights.Normalize(cfg.Table("geo.region", nil)))
	language := choose(mgr.Derive(rng.K("identity_language", customerKey)),
		languageTable(segment, cfg))
	return Identity{
		ANI:      GenerateANI(mgr, customerKey),
		Region:   region,
		Language: language,
	}
}

// GenerateANI produces a German E.164 number (+49 followed by 9 to 12
// digits) from a stream keyed on the customer key, independent of which call
// first observed the customer.
func GenerateANI(mgr *rng.Manager, customerKey string) string {
	r := mgr.Derive(rng.K("ani", customerKey))
	length := 9 + r.Intn(4)
	var sb strings.Builder
	sb.WriteString("+49")
	for i := 0; i < length; i++ {
		sb.WriteByte(byte('0' + r.Intn(10)))
	}
	return sb.String()
}
