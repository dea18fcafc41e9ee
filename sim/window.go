package sim

import (
	"fmt"
	"math"
)

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Window is the axis-aligned rectangle [XMin, XMax] x [YMin, YMax] that
// bounds a simulation. It is immutable once validated.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// NewWindow returns a validated window.
func NewWindow(xmin, xmax, ymin, ymax float64) (Window, error) {
	w := Window{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// UnitSquare returns [0,1] x [0,1].
func UnitSquare() Window {
	return Window{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
}

// Validate checks that the bounds are finite and non-degenerate.
func (w Window) Validate() error {
	for _, v := range []float64{w.XMin, w.XMax, w.YMin, w.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("window bounds must be finite, got %+v: %w", w, ErrInvalidParameters)
		}
	}
	if w.XMin >= w.XMax || w.YMin >= w.YMax {
		return fmt.Errorf("window must have XMin < XMax and YMin < YMax, got %+v: %w", w, ErrInvalidParameters)
	}
	return nil
}

func (w Window) Width() float64  { return w.XMax - w.XMin }
func (w Window) Height() float64 { return w.YMax - w.YMin }
func (w Window) Area() float64   { return w.Width() * w.Height() }

// Contains reports whether p lies in the closed rectangle.
func (w Window) Contains(p Point) bool {
	return p.X >= w.XMin && p.X <= w.XMax && p.Y >= w.YMin && p.Y <= w.YMax
}

// Expand returns the window grown by d on every side.
func (w Window) Expand(d float64) Window {
	return Window{XMin: w.XMin - d, XMax: w.XMax + d, YMin: w.YMin - d, YMax: w.YMax + d}
}

// Wrap maps p onto the torus obtained by identifying opposite edges.
func (w Window) Wrap(p Point) Point {
	return Point{
		X: w.XMin + floorMod(p.X-w.XMin, w.Width()),
		Y: w.YMin + floorMod(p.Y-w.YMin, w.Height()),
	}
}

func floorMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

// Flatten returns the coordinates of pts as x0, y0, x1, y1, ...
func Flatten(pts []Point) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}
