package position

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ExcludeOutliers returns data without its unusually large values. Only
// the topN largest values are candidates; a candidate is dropped when it
// exceeds threshold times the mean of the remaining values. Data with at
// most topN values is returned unchanged. The input is not modified and
// the relative order of kept values is preserved.
func ExcludeOutliers(data []float64, topN int, threshold float64) []float64 {
	out := slices.Clone(data)
	if topN <= 0 || len(data) <= topN {
		return out
	}

	sorted := slices.Clone(data)
	slices.SortFunc(sorted, func(a, b float64) int { return cmp.Compare(b, a) })
	top, rest := sorted[:topN], sorted[topN:]
	mean := stat.Mean(rest, nil)
	if mean <= 0 {
		return out
	}

	for _, v := range top {
		if v/mean > threshold {
			if i := slices.Index(out, v); i >= 0 {
				out = slices.Delete(out, i, i+1)
			}
		}
	}
	return out
}

// columnWidth reconciles the widths of one column into the width used to
// advance x.
func columnWidth(widths []float64, cfg Config) float64 {
	if len(widths) == 0 {
		return 0
	}
	if cfg.ExcludeOutliers {
		widths = ExcludeOutliers(widths, cfg.OutlierTopN, cfg.OutlierThreshold)
	}
	return floats.Max(widths)
}

// alignedWidth is the width every node of a column receives when
// SizeAlign is set.
func alignedWidth(colWidth float64, cfg Config) float64 {
	return min(max(colWidth, cfg.MinWidth), cfg.MaxWidth)
}

func median(values []float64) float64 {
	s := slices.Sorted(slices.Values(values))
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
