package rng

import (
	"regexp"
	"testing"
)

func TestDeriveSameKeySameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	key := K("2024-01-05", "Monika_Mueller", "Early", "Morning", 3, "segment")

	ra := a.Derive(key)
	rb := b.Derive(key)
	for i := 0; i < 64; i++ {
		if got, want := ra.Uint64(), rb.Uint64(); got != want {
			t.Fatalf("draw %d = %d, want %d", i, got, want)
		}
	}
}

func TestDeriveDistinctKeysDiverge(t *testing.T) {
	m := New(42)
	tests := []struct {
		name string
		a, b Key
	}{
		{"DifferentField", K("2024-01-05", "agent", "segment"), K("2024-01-05", "agent", "channel")},
		{"DifferentIndex", K("2024-01-05", "agent", 0), K("2024-01-05", "agent", 1)},
		{"IntVsString", K("2024-01-05", 1), K("2024-01-05", "1")},
		{"OrderMatters", K("a", "b"), K("b", "a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra := m.Derive(tt.a)
			rb := m.Derive(tt.b)
			same := true
			for i := 0; i < 8; i++ {
				if ra.Uint64() != rb.Uint64() {
					same = false
					break
				}
			}
			if same {
				t.Errorf("streams for %v and %v are identical", tt.a, tt.b)
			}
		})
	}
}

func TestDeriveSeedSensitivity(t *testing.T) {
	key := K("2024-01-05", "volume")
	ra := New(1).Derive(key)
	rb := New(2).Derive(key)
	same := true
	for i := 0; i < 8; i++ {
		if ra.Uint64() != rb.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestKeyWithDoesNotMutateParent(t *testing.T) {
	parent := K("2024-01-05", "agent")
	c1 := parent.With("segment")
	c2 := parent.With("channel")
	if string(c1.Bytes()) == string(c2.Bytes()) {
		t.Error("children of the same parent share bytes")
	}
	if string(parent.Bytes()) != string(K("2024-01-05", "agent").Bytes()) {
		t.Error("With() mutated the parent key")
	}
}

func TestMultinomialSplit(t *testing.T) {
	m := New(42)

	tests := []struct {
		name   string
		total  int
		ratios map[string]float64
	}{
		{"EvenThreeWay", 100, map[string]float64{"a": 1, "b": 1, "c": 1}},
		{"Skewed", 997, map[string]float64{"x": 0.9, "y": 0.09, "z": 0.01}},
		{"SingleLabel", 55, map[string]float64{"only": 3.0}},
		{"SmallTotal", 2, map[string]float64{"a": 0.5, "b": 0.3, "c": 0.2}},
		{"NegativeClamped", 40, map[string]float64{"a": -1.0, "b": 2.0}},
		{"AllZeroUniform", 30, map[string]float64{"a": 0, "b": 0, "c": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MultinomialSplit(tt.total, tt.ratios, m.Derive(K("split", tt.name)))
			sum := 0
			for label, n := range got {
				if n < 0 {
					t.Errorf("count[%s] = %d, want >= 0", label, n)
				}
				sum += n
			}
			if sum != tt.total {
				t.Errorf("sum = %d, want %d", sum, tt.total)
			}
			if len(got) != len(tt.ratios) {
				t.Errorf("labels = %d, want %d", len(got), len(tt.ratios))
			}
		})
	}
}

func TestMultinomialSplitZeroTotal(t *testing.T) {
	m := New(42)
	got := MultinomialSplit(0, map[string]float64{"a": 1, "b": 1}, m.Derive(K("zero")))
	for label, n := range got {
		if n != 0 {
			t.Errorf("count[%s] = %d, want 0", label, n)
		}
	}
}

func TestMultinomialSplitDeterministic(t *testing.T) {
	ratios := map[string]float64{"Early": 0.3, "Mid": 0.4, "Late": 0.3}
	a := MultinomialSplit(211, ratios, New(42).Derive(K("shift", "2024-01-05")))
	b := MultinomialSplit(211, ratios, New(42).Derive(K("shift", "2024-01-05")))
	for label, n := range a {
		if b[label] != n {
			t.Errorf("count[%s] = %d on rerun, want %d", label, b[label], n)
		}
	}
}

func TestUUID(t *testing.T) {
	m := New(42)
	v4 := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := UUID(m.Derive(K("call", i)))
		if !v4.MatchString(id) {
			t.Fatalf("UUID(%d) = %q, not a canonical v4 UUID", i, id)
		}
		if seen[id] {
			t.Fatalf("UUID(%d) = %q repeated", i, id)
		}
		seen[id] = true
	}

	a := UUID(New(42).Derive(K("call", 7)))
	b := UUID(New(42).Derive(K("call", 7)))
	if a != b {
		t.Errorf("UUID not deterministic: %q vs %q", a, b)
	}
}
