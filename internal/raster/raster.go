// Package raster defines the decoded pixel buffer the colour engine works on.
//
// An Image owns a row-major, non-premultiplied RGBA buffer. Callers decode and
// downscale their uploads before building one; see internal/imaging.
package raster

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage is returned for zero-sized images or empty buffers.
	ErrEmptyImage = errors.New("raster image is empty")

	// ErrBufferSize is returned when the buffer length is not width*height*4.
	ErrBufferSize = errors.New("raster buffer size does not match dimensions")
)

// Image is a row-major RGBA pixel buffer.
type Image struct {
	Pix    []uint8
	Width  int
	Height int
}

// New validates the dimensions against the buffer and wraps it. The buffer is
// not copied.
func New(width, height int, pix []uint8) (*Image, error) {
	img := &Image{Pix: pix, Width: width, Height: height}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// NewFilled returns an opaque image of the given size filled with one colour.
func NewFilled(width, height int, r, g, b uint8) *Image {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	return &Image{Pix: pix, Width: width, Height: height}
}

// Validate reports whether the image has pixel data consistent with its size.
func (m *Image) Validate() error {
	if m == nil || m.Width < 1 || m.Height < 1 || len(m.Pix) == 0 {
		return ErrEmptyImage
	}
	if len(m.Pix) != m.Width*m.Height*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d, want %d",
			ErrBufferSize, len(m.Pix), m.Width, m.Height, m.Width*m.Height*4)
	}
	return nil
}

// At returns the channels of the pixel at (x, y). Coordinates must be in bounds.
func (m *Image) At(x, y int) (r, g, b, a uint8) {
	i := (y*m.Width + x) * 4
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3]
}

// Set writes the pixel at (x, y). Coordinates must be in bounds.
func (m *Image) Set(x, y int, r, g, b, a uint8) {
	i := (y*m.Width + x) * 4
	m.Pix[i], m.Pix[i+1], m.Pix[i+2], m.Pix[i+3] = r, g, b, a
}

// FillRect paints a solid opaque rectangle, clipped to the image.
func (m *Image) FillRect(x, y, w, h int, r, g, b uint8) {
	for yy := max(0, y); yy < min(m.Height, y+h); yy++ {
		for xx := max(0, x); xx < min(m.Width, x+w); xx++ {
			m.Set(xx, yy, r, g, b, 255)
		}
	}
}

// Crop copies the pixels inside region into a new image. The region is
// clipped to the image bounds; an empty intersection yields ErrEmptyImage.
func (m *Image) Crop(region Region) (*Image, error) {
	region = region.Clip(m.Width, m.Height)
	if region.Empty() {
		return nil, fmt.Errorf("crop %v: %w", region, ErrEmptyImage)
	}

	out := &Image{
		Pix:    make([]uint8, region.Width*region.Height*4),
		Width:  region.Width,
		Height: region.Height,
	}
	rowBytes := region.Width * 4
	for y := 0; y < region.Height; y++ {
		src := ((region.Y+y)*m.Width + region.X) * 4
		copy(out.Pix[y*rowBytes:(y+1)*rowBytes], m.Pix[src:src+rowBytes])
	}
	return out, nil
}
