package position

// PAVA returns the non-decreasing sequence closest to values under
// weighted squared error (pool adjacent violators). A nil weights slice
// weighs every value equally; otherwise it must have the same length as
// values.
//
// Blocks are merged left to right; after each merge the previous boundary
// is re-checked, so a single pass suffices.
func PAVA(values, weights []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	type block struct {
		value, weight float64
		start, end    int // [start, end) into values
	}
	blocks := make([]block, 0, n)
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		blocks = append(blocks, block{value: v, weight: w, start: i, end: i + 1})
		for len(blocks) > 1 {
			a, b := blocks[len(blocks)-2], blocks[len(blocks)-1]
			if a.value <= b.value {
				break
			}
			tw := a.weight + b.weight
			blocks = blocks[:len(blocks)-2]
			blocks = append(blocks, block{
				value:  (a.value*a.weight + b.value*b.weight) / tw,
				weight: tw,
				start:  a.start,
				end:    b.end,
			})
		}
	}

	out := make([]float64, n)
	for _, b := range blocks {
		for i := b.start; i < b.end; i++ {
			out[i] = b.value
		}
	}
	return out
}
