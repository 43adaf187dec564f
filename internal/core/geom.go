// Package core provides the geometry and drawing primitives shared by the drag
// directive and its terminal host. It contains no external dependencies
// (especially no Bubble Tea) so the coordinate math stays pure and testable.
package core

import (
	"fmt"
	"math"
)

// Point is a coordinate in page space. Terminal hosts use cell units.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dimension is the size of an element, captured once per gesture.
type Dimension struct {
	Width, Height float64
}

// Bounds is an axis-aligned clamp region expressed by its edges.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

// Unbounded returns a region that never clamps anything.
func Unbounded() Bounds {
	return Bounds{
		Left:   math.Inf(-1),
		Top:    math.Inf(-1),
		Right:  math.Inf(1),
		Bottom: math.Inf(1),
	}
}

// IsUnbounded reports whether every edge is infinite.
func (b Bounds) IsUnbounded() bool {
	return math.IsInf(b.Left, -1) && math.IsInf(b.Top, -1) &&
		math.IsInf(b.Right, 1) && math.IsInf(b.Bottom, 1)
}

// Width returns the horizontal extent of the region.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the region.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Round applies a rounding policy to every edge. Infinite edges stay infinite.
func (b Bounds) Round(policy Rounding) Bounds {
	return Bounds{
		Left:   policy.Apply(b.Left),
		Top:    policy.Apply(b.Top),
		Right:  policy.Apply(b.Right),
		Bottom: policy.Apply(b.Bottom),
	}
}

// Translation is a 3D translation applied to an element's rendered position.
// Z is always zero; it exists so hosts can express the transform as translate3d.
type Translation struct {
	X, Y, Z float64
}

// TranslationOf returns the flat translation for a 2D offset.
func TranslationOf(p Point) Translation {
	return Translation{X: p.X, Y: p.Y}
}

// Point returns the 2D part of the translation.
func (t Translation) Point() Point {
	return Point{X: t.X, Y: t.Y}
}

// String formats the translation the way a stylesheet would.
func (t Translation) String() string {
	return fmt.Sprintf("translate3d(%gpx, %gpx, %g)", t.X, t.Y, t.Z)
}

// Rect represents an integer cell rectangle on a terminal screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Bounds converts the cell rectangle to edge form.
func (r Rect) Bounds() Bounds {
	return Bounds{
		Left:   float64(r.X),
		Top:    float64(r.Y),
		Right:  float64(r.Right()),
		Bottom: float64(r.Bottom()),
	}
}

// Dimension returns the size of the rectangle.
func (r Rect) Dimension() Dimension {
	return Dimension{Width: float64(r.W), Height: float64(r.H)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// CellIndex converts a page coordinate to the nearest cell index.
func CellIndex(v float64) int {
	return int(math.Round(v))
}
