package stroke

import (
	"math"

	"github.com/gogpu/sketch/internal/geom"
)

// Join specifies the shape of the offset lines at direction changes.
type Join int

const (
	// JoinRound connects offset segments with a circular arc.
	JoinRound Join = iota
	// JoinMiter extends offset segments to a sharp corner.
	JoinMiter
	// JoinBevel connects offset segments with a straight line.
	JoinBevel
)

// String returns the join name.
func (j Join) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinMiter:
		return "miter"
	case JoinBevel:
		return "bevel"
	default:
		return "unknown"
	}
}

// MiterLimit is the maximum ratio between the miter length and the offset
// distance before a miter join is replaced by a bevel.
const MiterLimit = 4.0

// collinearThresh is the relative cross product below which two segments
// are considered collinear and no join geometry is emitted.
const collinearThresh = 1e-9

// Style defines how a stroke is expanded.
type Style struct {
	Weight  int     // number of parallel lines, >= 1
	Spacing float64 // distance between adjacent lines (the pen width)
	Join    Join
	Detail  float64 // chord tolerance for round joins
}

// Expand returns the Weight parallel polylines representing line.
// The input is never modified; each returned polyline is freshly allocated.
func Expand(line geom.Polyline, style Style) []geom.Polyline {
	if style.Weight <= 1 {
		return []geom.Polyline{line.Clone()}
	}
	out := make([]geom.Polyline, 0, style.Weight)
	mid := float64(style.Weight-1) / 2
	for i := range style.Weight {
		d := (float64(i) - mid) * style.Spacing
		if d == 0 {
			out = append(out, line.Clone())
			continue
		}
		out = append(out, Offset(line, d, style.Join, style.Detail))
	}
	return out
}

// Offset returns the polyline at signed distance d along the left normal of
// line. Consecutive duplicate points are ignored.
func Offset(line geom.Polyline, d float64, join Join, detail float64) geom.Polyline {
	pts := dedupe(line)
	if len(pts) < 2 {
		return line.Clone()
	}
	closed := pts[0] == pts[len(pts)-1] && len(pts) > 2
	if closed {
		pts = pts[:len(pts)-1]
	}

	b := offsetBuilder{d: d, join: join, detail: detail}
	n := len(pts)
	if closed {
		for j := range n {
			prev := pts[(j-1+n)%n]
			next := pts[(j+1)%n]
			b.vertex(prev, pts[j], next)
		}
		if len(b.out) > 0 {
			b.out = append(b.out, b.out[0])
		}
		return b.out
	}

	b.out = append(b.out, pts[0].Add(normal(pts[0], pts[1]).Mul(d)))
	for j := 1; j < n-1; j++ {
		b.vertex(pts[j-1], pts[j], pts[j+1])
	}
	b.out = append(b.out, pts[n-1].Add(normal(pts[n-2], pts[n-1]).Mul(d)))
	return b.out
}

type offsetBuilder struct {
	d      float64
	join   Join
	detail float64
	out    geom.Polyline
}

func (b *offsetBuilder) add(p geom.Point) {
	if len(b.out) == 0 || b.out[len(b.out)-1] != p {
		b.out = append(b.out, p)
	}
}

// vertex emits the offset geometry around v, the corner between segments
// prev->v and v->next.
func (b *offsetBuilder) vertex(prev, v, next geom.Point) {
	ta := v.Sub(prev)
	tb := next.Sub(v)
	na := ta.Normalize().Perp()
	nb := tb.Normalize().Perp()

	cross := ta.Cross(tb)
	dot := ta.Dot(tb)
	hypot := math.Hypot(cross, dot)

	pa := v.Add(na.Mul(b.d))
	pb := v.Add(nb.Mul(b.d))

	if dot > 0 && math.Abs(cross) < hypot*collinearThresh {
		b.add(pb)
		return
	}

	// The left side (d > 0) is on the outside of a right turn (cross < 0).
	outer := cross*b.d < 0
	denom := 1 + na.Dot(nb)

	if !outer {
		if denom > 1e-9 {
			m := na.Add(nb).Mul(b.d / denom)
			b.add(v.Add(m))
			return
		}
		b.add(pa)
		b.add(pb)
		return
	}

	switch b.join {
	case JoinMiter:
		if denom > 1e-9 {
			m := na.Add(nb).Mul(1 / denom)
			if m.Length() <= MiterLimit {
				b.add(v.Add(m.Mul(b.d)))
				return
			}
		}
		b.add(pa)
		b.add(pb)
	case JoinBevel:
		b.add(pa)
		b.add(pb)
	default:
		b.roundJoin(v, na, nb)
	}
}

// roundJoin samples the arc of radius |d| around v from normal na to nb.
func (b *offsetBuilder) roundJoin(v, na, nb geom.Point) {
	angle := math.Atan2(na.Cross(nb), na.Dot(nb))
	steps := 1
	if b.detail > 0 {
		steps = max(1, int(math.Ceil(math.Abs(angle)*math.Abs(b.d)/b.detail)))
	}
	for i := 0; i <= steps; i++ {
		a := angle * float64(i) / float64(steps)
		cos, sin := math.Cos(a), math.Sin(a)
		n := geom.Point{X: na.X*cos - na.Y*sin, Y: na.X*sin + na.Y*cos}
		b.add(v.Add(n.Mul(b.d)))
	}
}

func normal(a, b geom.Point) geom.Point {
	return b.Sub(a).Normalize().Perp()
}

func dedupe(line geom.Polyline) geom.Polyline {
	out := make(geom.Polyline, 0, len(line))
	for _, p := range line {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	return out
}
