// Package rng provides hierarchical, hash-seeded random streams.
//
// Every random decision in the generator draws from a stream derived from the
// global seed plus a structured key describing the decision point. Streams for
// distinct keys are statistically independent, and a (seed, key) pair always
// yields the same stream regardless of execution or allocation order. This is
// what makes the whole pipeline replayable and safely parallelizable.
package rng

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Key identifies a single random decision point. Parts are primitives
// (strings, ints, bools); the canonical byte encoding is type-tagged and
// length-prefixed so two different keys can never serialize identically.
type Key []any

// K builds a Key from its parts.
func K(parts ...any) Key {
	return Key(parts)
}

// With returns a new Key with extra parts appended.
func (k Key) With(parts ...any) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	out = append(out, parts...)
	return out
}

// Bytes returns the canonical serialization of the key.
func (k Key) Bytes() []byte {
	buf := make([]byte, 0, 16*len(k))
	var scratch [8]byte
	for _, part := range k {
		switch v := part.(type) {
		case string:
			buf = append(buf, 's')
			binary.BigEndian.PutUint64(scratch[:], uint64(len(v)))
			buf = append(buf, scratch[:]...)
			buf = append(buf, v...)
		case int:
			buf = append(buf, 'i')
			binary.BigEndian.PutUint64(scratch[:], uint64(int64(v)))
			buf = append(buf, scratch[:]...)
		case int64:
			buf = append(buf, 'i')
			binary.BigEndian.PutUint64(scratch[:], uint64(v))
			buf = append(buf, scratch[:]...)
		case bool:
			buf = append(buf, 'b')
			if v {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case float64:
			buf = append(buf, 'f')
			binary.BigEndian.PutUint64(scratch[:], math.Float64bits(v))
			buf = append(buf, scratch[:]...)
		default:
			// Callers are expected to stick to primitives; anything else is
			// serialized through its string form.
			s := fmt.Sprintf("%v", v)
			buf = append(buf, 'v')
			binary.BigEndian.PutUint64(scratch[:], uint64(len(s)))
			buf = append(buf, scratch[:]...)
			buf = append(buf, s...)
		}
	}
	return buf
}

// Manager derives independent random streams from a global seed.
type Manager struct {
	seed int64
	root *rand.Rand
}

// New creates a Manager rooted at the given global seed.
func New(seed int64) *Manager {
	return &Manager{
		seed: seed,
		root: rand.New(rand.NewSource(uint64(seed))),
	}
}

// Seed returns the global seed the manager was created with.
func (m *Manager) Seed() int64 {
	return m.seed
}

// Root returns the bootstrap generator seeded directly from the global seed.
// It exists only for one-off draws that have no natural key; everything on the
// per-call path must go through Derive.
func (m *Manager) Root() *rand.Rand {
	return m.root
}

// Derive returns a fresh generator for the given key. The stream seed is the
// 64-bit BLAKE2b digest of the global seed's fixed-width encoding followed by
// the key's canonical bytes.
func (m *Manager) Derive(key Key) *rand.Rand {
	h, err := blake2b.New(8, nil)
	if err != nil {
		// Only reachable with an invalid digest size, which is constant here.
		panic(err)
	}
	var seedBytes [8]byte
	binary.BigEndian.PutUint64(seedBytes[:], uint64(m.seed))
	h.Write(seedBytes[:])
	h.Write(key.Bytes())
	digest := h.Sum(nil)
	return rand.New(rand.NewSource(binary.BigEndian.Uint64(digest)))
}

// MultinomialSplit partitions total across the ratio labels proportionally to
// their weights. The result always sums to total exactly. Labels are visited
// in sorted order so the draw sequence does not depend on map iteration; a
// degenerate ratio table (all zero or empty) falls back to a uniform split.
func MultinomialSplit(total int, ratios map[string]float64, r *rand.Rand) map[string]int {
	labels := make([]string, 0, len(ratios))
	for label := range ratios {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make(map[string]int, len(labels))
	if len(labels) == 0 {
		return out
	}

	probs := make([]float64, len(labels))
	var sum float64
	for i, label := range labels {
		p := ratios[label]
		if p < 0 {
			p = 0
		}
		probs[i] = p
		sum += p
	}
	if sum <= 0 {
		for i := range probs {
			probs[i] = 1
		}
		sum = float64(len(probs))
	}

	if total <= 0 {
		for _, label := range labels {
			out[label] = 0
		}
		return out
	}

	// Conditional binomial decomposition: drawing each count as
	// Binomial(remaining, p_i / remaining_mass) yields an exact multinomial
	// sample while conserving the total by construction.
	remaining := total
	mass := sum
	for i, label := range labels {
		if i == len(labels)-1 {
			out[label] = remaining
			break
		}
		if remaining == 0 || mass <= 0 {
			out[label] = 0
			mass -= probs[i]
			continue
		}
		p := probs[i] / mass
		var n int
		switch {
		case p <= 0:
			n = 0
		case p >= 1:
			n = remaining
		default:
			bin := distuv.Binomial{N: float64(remaining), P: p, Src: r}
			n = int(bin.Rand())
		}
		if n > remaining {
			n = remaining
		}
		out[label] = n
		remaining -= n
		mass -= probs[i]
	}
	return out
}

// UUID returns a deterministic identifier with the UUID v4 bit layout, built
// entirely from the supplied stream's bytes.
func UUID(r *rand.Rand) string {
	var b [16]byte
	r.Read(b[:])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		panic(err) // 16 bytes is always a valid UUID
	}
	return id.String()
}
