package stats

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		p        float64
		expected float64
	}{
		{"90th of three", []float64{10, 20, 5}, 0.9, 18},
		{"median odd", []float64{3, 1, 2}, 0.5, 2},
		{"median even", []float64{4, 1, 3, 2}, 0.5, 2.5},
		{"lower quartile", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"single value", []float64{7}, 0.9, 7},
		{"zero", []float64{9, 4}, 0, 4},
		{"one", []float64{9, 4}, 1, 9},
		{"clamped", []float64{9, 4}, 1.5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(tt.values, tt.p); !approx(got, tt.expected) {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.expected)
			}
		})
	}
}

func TestQuantile_DoesNotMutate(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)

	if diff := cmp.Diff([]float64{3, 1, 2}, values); diff != "" {
		t.Errorf("Quantile mutated input (-want +got):\n%s", diff)
	}
}

func TestQuantile_Empty(t *testing.T) {
	if got := Quantile(nil, 0.5); !math.IsNaN(got) {
		t.Errorf("Quantile(nil) = %v, want NaN", got)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})

	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}

	checks := map[string][2]float64{
		"mean":   {s.Mean, 2.5},
		"std":    {s.Std, math.Sqrt(5.0 / 3.0)},
		"min":    {s.Min, 1},
		"q25":    {s.Q25, 1.75},
		"median": {s.Median, 2.5},
		"q75":    {s.Q75, 3.25},
		"max":    {s.Max, 4},
	}

	for name, c := range checks {
		if !approx(c[0], c[1]) {
			t.Errorf("%s = %v, want %v", name, c[0], c[1])
		}
	}
}

func TestDescribe_Empty(t *testing.T) {
	s := Describe(nil)
	if s.Count != 0 || !math.IsNaN(s.Mean) || !math.IsNaN(s.Max) {
		t.Errorf("Describe(nil) = %+v, want zero count and NaN fields", s)
	}
}

func TestTopN(t *testing.T) {
	type row struct {
		name  string
		value float64
	}

	rows := []row{{"a", 5}, {"b", 9}, {"c", 5}, {"d", 1}}
	metric := func(r row) float64 { return r.value }

	got := TopN(rows, 3, metric)
	want := []row{{"b", 9}, {"a", 5}, {"c", 5}}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(row{})); diff != "" {
		t.Errorf("TopN mismatch (-want +got):\n%s", diff)
	}

	if all := TopN(rows, 0, metric); len(all) != 4 {
		t.Errorf("TopN(n=0) returned %d rows, want 4", len(all))
	}

	if rows[0].name != "a" {
		t.Error("TopN mutated its input")
	}
}

func TestValueCounts(t *testing.T) {
	got := ValueCounts([]string{"Pop", "Rock", "Pop", "", "Jazz", "Rock", "Pop"})
	want := []Count{{"Pop", 3}, {"Rock", 2}, {"Jazz", 1}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ValueCounts mismatch (-want +got):\n%s", diff)
	}

	if head := Head(got, 2); len(head) != 2 {
		t.Errorf("Head returned %d counts, want 2", len(head))
	}
}

func TestIntCounts(t *testing.T) {
	years, counts := IntCounts([]int{2020, 2019, 2020, 2021, 2020})

	if diff := cmp.Diff([]int{2019, 2020, 2021}, years); diff != "" {
		t.Errorf("years mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{1, 3, 1}, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}
