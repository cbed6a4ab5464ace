package raster

import "fmt"

// Region is an axis-aligned box within an image. X and Y are the inclusive
// top-left corner; Width and Height are in pixels.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area is Width*Height, or 0 for an empty region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Clip intersects the region with a width x height image.
func (r Region) Clip(width, height int) Region {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, width), min(r.Y+r.Height, height)
	if x1 <= x0 || y1 <= y0 {
		return Region{X: x0, Y: y0}
	}
	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
