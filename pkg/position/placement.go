package position

// Placement is the computed rectangle origin of one node. Y grows
// downwards, as in the workflow canvas.
type Placement struct {
	X, Y   float64
	Width  float64 // Width after column reconciliation
	Height float64 // Real height used for stacking
}

// Right returns the right edge.
func (p Placement) Right() float64 { return p.X + p.Width }

// Bottom returns the bottom edge.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// CenterY returns the vertical center.
func (p Placement) CenterY() float64 { return p.Y + p.Height/2 }

// Layout is the result of a placement run.
type Layout struct {
	Nodes       map[int]Placement
	ColumnX     []float64 // Left edge of each column
	ColumnWidth []float64 // Reconciled width of each column
}

// Bounds returns the extent covered by all placed nodes as (x, y, w, h).
func (l *Layout) Bounds() (x, y, w, h float64) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, p := range l.Nodes {
		if first {
			minX, minY, maxX, maxY = p.X, p.Y, p.Right(), p.Bottom()
			first = false
			continue
		}
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.Right())
		maxY = max(maxY, p.Bottom())
	}
	return minX, minY, maxX - minX, maxY - minY
}
