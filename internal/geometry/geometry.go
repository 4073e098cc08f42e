// Package geometry converts body-contour polygons between the pixel
// space of the image they were captured in and arbitrary viewports.
// Points are always stored in original pixel space; rescaling is done
// on demand so it stays lossless and repeatable.
package geometry

import (
	"errors"
	"math"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var ErrInvalidGeometry = errors.New("invalid geometry: image size has a zero dimension")

// Renderable reports whether a contour has enough points to draw.
// Degenerate polygons are not an error; callers simply skip rendering.
func Renderable(points []Point) bool {
	return len(points) > 2
}

// Normalize maps pixel-space points into the [0,1]x[0,1] unit square.
func Normalize(points []Point, imageSize Size) ([]Point, error) {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return nil, ErrInvalidGeometry
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X / imageSize.Width, Y: p.Y / imageSize.Height}
	}
	return out, nil
}

// Denormalize is the inverse of Normalize.
func Denormalize(points []Point, imageSize Size) ([]Point, error) {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return nil, ErrInvalidGeometry
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X * imageSize.Width, Y: p.Y * imageSize.Height}
	}
	return out, nil
}

// ScaleNormalized maps unit-square points straight into a viewport.
// Unlike ScaleToFit it stretches to fill: normalized points carry no
// aspect ratio of their own.
func ScaleNormalized(points []Point, viewSize Size) ([]Point, error) {
	return Denormalize(points, viewSize)
}

// FitTransform maps the pixel space of a reference image onto a
// viewport with aspect-fit semantics: uniform scale, centered.
type FitTransform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func Fit(imageSize, viewSize Size) (FitTransform, error) {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return FitTransform{}, ErrInvalidGeometry
	}
	scale := math.Min(viewSize.Width/imageSize.Width, viewSize.Height/imageSize.Height)
	scaledW := imageSize.Width * scale
	scaledH := imageSize.Height * scale
	return FitTransform{
		Scale:   scale,
		OffsetX: (viewSize.Width - scaledW) / 2,
		OffsetY: (viewSize.Height - scaledH) / 2,
	}, nil
}

func (t FitTransform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.OffsetX, Y: p.Y*t.Scale + t.OffsetY}
}

// ScaleToFit rescales pixel-space points captured against imageSize
// into the pixel space of viewSize. The rendered contour never exceeds
// the viewport and stays centered regardless of aspect-ratio mismatch.
func ScaleToFit(points []Point, imageSize, viewSize Size) ([]Point, error) {
	t, err := Fit(imageSize, viewSize)
	if err != nil {
		return nil, err
	}
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out, nil
}
