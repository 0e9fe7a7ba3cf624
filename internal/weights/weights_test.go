package weights

import (
	"math"
	"testing"
)

func almostOne(t Table) bool {
	sum := 0.0
	for _, v := range t {
		sum += v
	}
	return math.Abs(sum-1.0) < 1e-9
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		base        Table
		adjustments []map[string]float64
		want        Table
	}{
		{
			"NoAdjustments",
			Table{"a": 0.5, "b": 0.5},
			nil,
			Table{"a": 0.5, "b": 0.5},
		},
		{
			"AdditiveDelta",
			Table{"a": 0.5, "b": 0.5},
			[]map[string]float64{{"a": 0.5}},
			Table{"a": 2.0 / 3.0, "b": 1.0 / 3.0},
		},
		{
			"NewLabelIntroduced",
			Table{"a": 1.0},
			[]map[string]float64{{"b": 1.0}},
			Table{"a": 0.5, "b": 0.5},
		},
		{
			"NegativeClampedToZero",
			Table{"a": 0.5, "b": 0.5},
			[]map[string]float64{{"a": -2.0}},
			Table{"a": 0.0, "b": 1.0},
		},
		{
			"StackedAdjustments",
			Table{"a": 1.0, "b": 1.0},
			[]map[string]float64{{"a": 1.0}, {"b": 1.0}},
			Table{"a": 0.5, "b": 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.base, tt.adjustments...)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve() has %d labels, want %d", len(got), len(tt.want))
			}
			for label, want := range tt.want {
				if math.Abs(got[label]-want) > 1e-9 {
					t.Errorf("Resolve()[%s] = %v, want %v", label, got[label], want)
				}
			}
			if !almostOne(got) {
				t.Errorf("Resolve() does not sum to 1: %v", got)
			}
		})
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		in   Table
	}{
		{"AllZero", Table{"a": 0, "b": 0, "c": 0}},
		{"AllNegative", Table{"a": -1, "b": -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			want := 1.0 / float64(len(tt.in))
			for label, v := range got {
				if math.Abs(v-want) > 1e-9 {
					t.Errorf("Normalize()[%s] = %v, want uniform %v", label, v, want)
				}
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	got := Normalize(Table{})
	if len(got) != 0 {
		t.Errorf("Normalize(empty) = %v, want empty", got)
	}
}

func TestResolveDoesNotMutateBase(t *testing.T) {
	base := Table{"a": 1.0, "b": 1.0}
	Resolve(base, Table{"a": 5.0})
	if base["a"] != 1.0 || base["b"] != 1.0 {
		t.Errorf("base mutated: %v", base)
	}
}

func TestLabelsSorted(t *testing.T) {
	tab := Table{"c": 1, "a": 1, "b": 1}
	got := tab.Labels()
	want := []string{"a", "b", "c"}
	for i, label := range want {
		if got[i] != label {
			t.Fatalf("Labels() = %v, want %v", got, want)
		}
	}
}
