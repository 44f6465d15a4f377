// Package stroke expands a single logical stroke into several parallel
// offset polylines, approximating a heavy pen with a thin one.
//
// # Algorithm Overview
//
// A stroke of weight n drawn with a pen of width w becomes n polylines
// offset from the source path by
//
//	(i - (n-1)/2) * w,  i = 0 .. n-1
//
// measured along the left normal of the travel direction, (x, y) -> (-y, x).
// Odd weights keep the source path itself as the middle line.
//
// # Line Joins
//
// At a vertex the two adjacent offset segments are connected according to
// the join style:
//   - JoinMiter: the offset lines are extended to their intersection while
//     the miter length stays within MiterLimit times the offset distance,
//     otherwise the join falls back to a bevel
//   - JoinRound: a circular arc around the vertex, sampled at the detail
//     tolerance
//   - JoinBevel: a straight line between the two offset end points
//
// The inner side of a turn always uses the intersection of the offset
// lines so that no small loops are drawn inside sharp corners.
//
// Closed polylines (first point equal to last) produce closed offset rings.
package stroke
