package position

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

func TestPAVA(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		weights []float64
		want    []float64
	}{
		{"pooled", []float64{5, 1, 3}, nil, []float64{3, 3, 3}},
		{"already sorted", []float64{1, 2, 3}, nil, []float64{1, 2, 3}},
		{"inner violation", []float64{1, 3, 2, 4}, nil, []float64{1, 2.5, 2.5, 4}},
		{"weighted", []float64{3, 1}, []float64{3, 1}, []float64{2.5, 2.5}},
		{"descending", []float64{4, 3, 2, 1}, nil, []float64{2.5, 2.5, 2.5, 2.5}},
		{"single", []float64{7}, nil, []float64{7}},
		{"empty", nil, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PAVA(tt.values, tt.weights); !slices.Equal(got, tt.want) {
				t.Errorf("PAVA(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

// bruteIsotonic enumerates every split of values into contiguous blocks,
// keeps the splits whose block means are non-decreasing, and returns the
// squared error of the best one. The optimal isotonic fit is always such a
// split.
func bruteIsotonic(values []float64) float64 {
	n := len(values)
	best := math.Inf(1)
	for mask := 0; mask < 1<<(n-1); mask++ {
		var sse, prev float64
		ok, start := true, 0
		prev = math.Inf(-1)
		for i := 1; i <= n && ok; i++ {
			if i < n && mask&(1<<(i-1)) == 0 {
				continue
			}
			block := values[start:i]
			var mean float64
			for _, v := range block {
				mean += v
			}
			mean /= float64(len(block))
			if mean < prev {
				ok = false
				break
			}
			for _, v := range block {
				sse += (v - mean) * (v - mean)
			}
			prev, start = mean, i
		}
		if ok && sse < best {
			best = sse
		}
	}
	return best
}

func TestPAVAOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		values := make([]float64, 1+rng.Intn(8))
		for j := range values {
			values[j] = float64(rng.Intn(21) - 10)
		}
		fit := PAVA(values, nil)

		var sse float64
		for j := range values {
			if j > 0 && fit[j] < fit[j-1] {
				t.Fatalf("PAVA(%v) = %v is not monotone", values, fit)
			}
			sse += (values[j] - fit[j]) * (values[j] - fit[j])
		}
		if want := bruteIsotonic(values); math.Abs(sse-want) > 1e-9 {
			t.Fatalf("PAVA(%v) error %g, brute force %g", values, sse, want)
		}
	}
}

func TestExcludeOutliers(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want []float64
	}{
		{"one outlier", []float64{10, 10, 10, 100}, []float64{10, 10, 10}},
		{"no outlier", []float64{10, 10, 10, 11}, []float64{10, 10, 10, 11}},
		{"two outliers", []float64{100, 10, 10, 90, 10}, []float64{10, 10, 10}},
		{"order kept", []float64{10, 100, 20, 10}, []float64{10, 20, 10}},
		{"too short", []float64{10, 100}, []float64{10, 100}},
		{"zero rest", []float64{0, 0, 5}, []float64{0, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.data)
			got := ExcludeOutliers(tt.data, 2, 2)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExcludeOutliers(%v) = %v, want %v", tt.data, got, tt.want)
			}
			if !slices.Equal(in, tt.data) {
				t.Error("input modified")
			}
		})
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("odd median = %g", got)
	}
	if got := median([]float64{-75, 75}); got != 0 {
		t.Errorf("even median = %g", got)
	}
}
