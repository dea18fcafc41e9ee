package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// PointID identifies a point within a Configuration. IDs are stable for the
// lifetime of the point; coordinates alone do not identify a point.
type PointID int64

// NoPoint is the PointID that never matches a stored point.
const NoPoint PointID = -1

// maxGridCells bounds the neighbour grid per axis.
const maxGridCells = 1024

var (
	// ErrOutsideWindow is returned when inserting or moving a point outside the window.
	ErrOutsideWindow = errors.New("point outside window")
	// ErrDuplicateID is returned when inserting a point under an ID already present.
	ErrDuplicateID = errors.New("duplicate point id")
	// ErrUnknownID is returned when an operation names an ID that is not present.
	ErrUnknownID = errors.New("unknown point id")
)

// Configuration is a mutable finite set of points inside a window.
//
// Insertion and removal are O(1) amortized. Neighbour queries scan only the
// grid cells overlapping the query disc, so their cost is proportional to
// the local point density when the cell size matches the interaction range.
//
// Thread-safety: NOT thread-safe. A configuration is owned by one sampler.
type Configuration struct {
	window   Window
	periodic bool
	cellSize float64

	nx, ny int
	cw, ch float64
	cells  [][]PointID

	ids    []PointID
	pts    []Point
	cellOf []int
	slot   map[PointID]int
	nextID PointID
}

// ConfigurationOption customizes a Configuration at construction.
type ConfigurationOption func(*Configuration)

// WithCellSize sets the neighbour-grid cell size, normally the interaction
// range of the model in use. Non-positive sizes disable the grid.
func WithCellSize(size float64) ConfigurationOption {
	return func(c *Configuration) {
		c.cellSize = size
	}
}

// WithPeriodic makes distances toroidal: opposite window edges are identified.
func WithPeriodic(periodic bool) ConfigurationOption {
	return func(c *Configuration) {
		c.periodic = periodic
	}
}

// NewConfiguration returns an empty configuration on w.
func NewConfiguration(w Window, opts ...ConfigurationOption) *Configuration {
	c := &Configuration{
		window: w,
		slot:   make(map[PointID]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.nx, c.ny = 1, 1
	if c.cellSize > 0 && !math.IsInf(c.cellSize, 0) && !math.IsNaN(c.cellSize) {
		c.nx = gridDim(w.Width(), c.cellSize)
		c.ny = gridDim(w.Height(), c.cellSize)
	}
	c.cw = w.Width() / float64(c.nx)
	c.ch = w.Height() / float64(c.ny)
	c.cells = make([][]PointID, c.nx*c.ny)
	return c
}

// gridDim picks the number of cells so that each cell is at least size wide.
func gridDim(extent, size float64) int {
	n := int(math.Floor(extent / size))
	if n < 1 {
		return 1
	}
	if n > maxGridCells {
		return maxGridCells
	}
	return n
}

// Window returns the window of the configuration.
func (c *Configuration) Window() Window { return c.window }

// Periodic reports whether distances are toroidal.
func (c *Configuration) Periodic() bool { return c.periodic }

// Len returns the number of points.
func (c *Configuration) Len() int { return len(c.ids) }

// At returns the i-th stored point, 0 <= i < Len(). The order is an
// implementation detail but is deterministic for a given operation history.
func (c *Configuration) At(i int) (PointID, Point) {
	return c.ids[i], c.pts[i]
}

// Get returns the point stored under id.
func (c *Configuration) Get(id PointID) (Point, bool) {
	s, ok := c.slot[id]
	if !ok {
		return Point{}, false
	}
	return c.pts[s], true
}

// Has reports whether id is present.
func (c *Configuration) Has(id PointID) bool {
	_, ok := c.slot[id]
	return ok
}

// Insert adds p under a fresh ID.
func (c *Configuration) Insert(p Point) (PointID, error) {
	id := c.nextID
	if err := c.InsertWithID(id, p); err != nil {
		return NoPoint, err
	}
	return id, nil
}

// InsertWithID adds p under the caller-chosen id.
func (c *Configuration) InsertWithID(id PointID, p Point) error {
	if id < 0 {
		return fmt.Errorf("insert id %d: %w", id, ErrUnknownID)
	}
	if _, ok := c.slot[id]; ok {
		return fmt.Errorf("insert id %d: %w", id, ErrDuplicateID)
	}
	if !c.window.Contains(p) {
		return fmt.Errorf("insert (%g, %g): %w", p.X, p.Y, ErrOutsideWindow)
	}
	cell := c.cellIndex(p)
	c.slot[id] = len(c.ids)
	c.ids = append(c.ids, id)
	c.pts = append(c.pts, p)
	c.cellOf = append(c.cellOf, cell)
	c.cells[cell] = append(c.cells[cell], id)
	if id >= c.nextID {
		c.nextID = id + 1
	}
	return nil
}

// Remove deletes the point stored under id and reports whether it was present.
func (c *Configuration) Remove(id PointID) bool {
	s, ok := c.slot[id]
	if !ok {
		return false
	}
	c.dropFromCell(c.cellOf[s], id)
	last := len(c.ids) - 1
	if s != last {
		c.ids[s] = c.ids[last]
		c.pts[s] = c.pts[last]
		c.cellOf[s] = c.cellOf[last]
		c.slot[c.ids[s]] = s
	}
	c.ids = c.ids[:last]
	c.pts = c.pts[:last]
	c.cellOf = c.cellOf[:last]
	delete(c.slot, id)
	return true
}

// Move relocates the point stored under id to p.
func (c *Configuration) Move(id PointID, p Point) error {
	s, ok := c.slot[id]
	if !ok {
		return fmt.Errorf("move id %d: %w", id, ErrUnknownID)
	}
	if !c.window.Contains(p) {
		return fmt.Errorf("move (%g, %g): %w", p.X, p.Y, ErrOutsideWindow)
	}
	cell := c.cellIndex(p)
	if cell != c.cellOf[s] {
		c.dropFromCell(c.cellOf[s], id)
		c.cells[cell] = append(c.cells[cell], id)
		c.cellOf[s] = cell
	}
	c.pts[s] = p
	return nil
}

func (c *Configuration) dropFromCell(cell int, id PointID) {
	members := c.cells[cell]
	for i, m := range members {
		if m == id {
			last := len(members) - 1
			members[i] = members[last]
			c.cells[cell] = members[:last]
			return
		}
	}
}

func (c *Configuration) cellIndex(p Point) int {
	ix := clampInt(int((p.X-c.window.XMin)/c.cw), 0, c.nx-1)
	iy := clampInt(int((p.Y-c.window.YMin)/c.ch), 0, c.ny-1)
	return iy*c.nx + ix
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance returns the distance between p and q, toroidal when periodic.
func (c *Configuration) Distance(p, q Point) float64 {
	dx := math.Abs(p.X - q.X)
	dy := math.Abs(p.Y - q.Y)
	if c.periodic {
		if w := c.window.Width(); dx > w/2 {
			dx = w - dx
		}
		if h := c.window.Height(); dy > h/2 {
			dy = h - dy
		}
	}
	return math.Hypot(dx, dy)
}

// Neighbours calls fn for every stored point within distance r of u (d <= r),
// skipping exclude. Iteration stops early when fn returns false.
func (c *Configuration) Neighbours(u Point, r float64, exclude PointID, fn func(id PointID, q Point, d float64) bool) {
	if len(c.ids) == 0 || r < 0 || math.IsNaN(r) {
		return
	}
	xs := c.axisCells(u.X-c.window.XMin, r, c.cw, c.nx)
	ys := c.axisCells(u.Y-c.window.YMin, r, c.ch, c.ny)
	for _, iy := range ys {
		for _, ix := range xs {
			for _, id := range c.cells[iy*c.nx+ix] {
				if id == exclude {
					continue
				}
				q := c.pts[c.slot[id]]
				d := c.Distance(u, q)
				if d <= r && !fn(id, q, d) {
					return
				}
			}
		}
	}
}

// axisCells lists the cell indices along one axis that overlap [off-r, off+r].
// Flat grids clamp to the border cells, which also hold points on the far
// edge; periodic grids pad by one cell against rounding at the seam.
func (c *Configuration) axisCells(off, r, width float64, n int) []int {
	if n == 1 {
		return []int{0}
	}
	lo := math.Floor((off - r) / width)
	hi := math.Floor((off + r) / width)
	if c.periodic {
		lo, hi = lo-1, hi+1
	}
	if math.IsInf(r, 1) || hi-lo+1 >= float64(n) {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if !c.periodic {
		lo = math.Max(lo, 0)
		hi = math.Min(hi, float64(n-1))
	}
	out := make([]int, 0, int(hi-lo)+1)
	for i := int(lo); i <= int(hi); i++ {
		out = append(out, ((i%n)+n)%n)
	}
	return out
}

// Points returns a copy of the stored coordinates in storage order.
func (c *Configuration) Points() []Point {
	out := make([]Point, len(c.pts))
	copy(out, c.pts)
	return out
}

// SortedPoints returns a copy of the stored coordinates ordered by PointID.
func (c *Configuration) SortedPoints() []Point {
	order := make([]int, len(c.ids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return c.ids[order[a]] < c.ids[order[b]] })
	out := make([]Point, len(order))
	for i, s := range order {
		out[i] = c.pts[s]
	}
	return out
}

// Clone returns an independent deep copy.
func (c *Configuration) Clone() *Configuration {
	out := &Configuration{
		window:   c.window,
		periodic: c.periodic,
		cellSize: c.cellSize,
		nx:       c.nx,
		ny:       c.ny,
		cw:       c.cw,
		ch:       c.ch,
		cells:    make([][]PointID, len(c.cells)),
		ids:      append([]PointID(nil), c.ids...),
		pts:      append([]Point(nil), c.pts...),
		cellOf:   append([]int(nil), c.cellOf...),
		slot:     make(map[PointID]int, len(c.slot)),
		nextID:   c.nextID,
	}
	for i, members := range c.cells {
		if len(members) > 0 {
			out.cells[i] = append([]PointID(nil), members...)
		}
	}
	for id, s := range c.slot {
		out.slot[id] = s
	}
	return out
}
