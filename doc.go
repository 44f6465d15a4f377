// Package sketch provides a stateful 2D vector drawing engine for plotter art.
//
// # Overview
//
// A Sketch accumulates polylines into numbered layers, one layer per pen.
// Drawing calls go through an affine transform stack, parametric shapes are
// tessellated at a chord tolerance that stays constant in page space, and
// the result is written as a layered SVG ready for a pen plotter.
//
// # Quick Start
//
//	import "github.com/gogpu/sketch"
//
//	s := sketch.New(sketch.WithSeed(1), sketch.WithPageSize(sketch.PageA4))
//	s.ScaleUnit(sketch.Centimeter)
//
//	for i := range 10 {
//		s.Push()
//		s.Translate(2, 2+float64(i))
//		s.Rotate(s.Random(0.3))
//		_ = s.Rect(0, 0, 5, 0.5)
//		_ = s.Pop()
//	}
//
//	if err := s.Save("out.svg"); err != nil {
//		log.Fatal(err)
//	}
//
// # Layers
//
// Stroke and Fill select the layers that subsequent shapes are drawn to.
// Closed shapes may be stroked on one layer and filled on another. Fills are
// converted to hatch lines spaced by the fill layer's pen width when the
// document is built.
//
// # Coordinate System
//
// Coordinates are in CSS pixels (96 per inch) unless a unit scale is pushed:
//   - Origin (0,0) at top-left of the page
//   - X increases right
//   - Y increases down
//   - Angles in radians, positive angles turn from +X towards +Y
//
// # Determinism
//
// Two sketches created with the same seed and driven by the same call
// sequence produce identical geometry and byte-identical SVG output.
//
// # Concurrency
//
// A Sketch is not safe for concurrent use. Independent sketches may be built
// in parallel; the only package-level state is the logger.
package sketch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
