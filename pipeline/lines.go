package pipeline

import (
	"math"

	"github.com/gogpu/sketch"
)

// mergeLines joins lines whose end points lie within tol of each other,
// reversing lines where needed. Input order decides which line a chain
// grows from.
func mergeLines(lines []sketch.Polyline, tol float64) []sketch.Polyline {
	used := make([]bool, len(lines))
	out := make([]sketch.Polyline, 0, len(lines))
	for i, l := range lines {
		if used[i] || len(l) == 0 {
			continue
		}
		used[i] = true
		cur := l.Clone()
		for !cur.IsClosed() {
			j, reverse, front := findNeighbor(lines, used, cur, tol)
			if j < 0 {
				break
			}
			used[j] = true
			next := lines[j]
			if reverse {
				next = next.Reversed()
			}
			if front {
				cur = joinLines(next, cur)
			} else {
				cur = joinLines(cur, next)
			}
		}
		out = append(out, cur)
	}
	return out
}

// findNeighbor returns the unused line closest to either end of cur,
// whether it must be reversed, and whether it goes in front of cur.
func findNeighbor(lines []sketch.Polyline, used []bool, cur sketch.Polyline, tol float64) (idx int, reverse, front bool) {
	head, tail := cur[0], cur[len(cur)-1]
	idx = -1
	best := tol
	consider := func(j int, d float64, rev, fr bool) {
		if d <= best && (idx < 0 || d < best) {
			idx, best, reverse, front = j, d, rev, fr
		}
	}
	for j, l := range lines {
		if used[j] || len(l) == 0 {
			continue
		}
		start, end := l[0], l[len(l)-1]
		consider(j, tail.Distance(start), false, false)
		consider(j, tail.Distance(end), true, false)
		consider(j, head.Distance(end), false, true)
		consider(j, head.Distance(start), true, true)
	}
	return idx, reverse, front
}

func joinLines(a, b sketch.Polyline) sketch.Polyline {
	out := make(sketch.Polyline, 0, len(a)+len(b))
	out = append(out, a...)
	if len(b) > 0 && b[0] == a[len(a)-1] {
		b = b[1:]
	}
	return append(out, b...)
}

// sortLines orders lines greedily by nearest start point, beginning at the
// origin. With flip, a line may be reversed when its end is nearer.
func sortLines(lines []sketch.Polyline, flip bool) []sketch.Polyline {
	remaining := make([]sketch.Polyline, 0, len(lines))
	for _, l := range lines {
		if len(l) > 0 {
			remaining = append(remaining, l)
		}
	}
	out := make([]sketch.Polyline, 0, len(remaining))
	pos := sketch.Pt(0, 0)
	for len(remaining) > 0 {
		bestIdx, bestDist, bestRev := 0, math.Inf(1), false
		for i, l := range remaining {
			if d := pos.Distance(l[0]); d < bestDist {
				bestIdx, bestDist, bestRev = i, d, false
			}
			if flip {
				if d := pos.Distance(l[len(l)-1]); d < bestDist {
					bestIdx, bestDist, bestRev = i, d, true
				}
			}
		}
		l := remaining[bestIdx]
		if bestRev {
			l = l.Reversed()
		}
		out = append(out, l)
		pos = l[len(l)-1]
		remaining[bestIdx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}
	return out
}

// reloop rotates a closed line to start at a random vertex. Lines whose
// ends are further apart than tol are returned unchanged.
func reloop(l sketch.Polyline, tol float64, intN func(int) int) sketch.Polyline {
	if len(l) < 4 || l[0].Distance(l[len(l)-1]) > tol {
		return l
	}
	ring := l[:len(l)-1]
	k := intN(len(ring))
	out := make(sketch.Polyline, 0, len(l))
	out = append(out, ring[k:]...)
	out = append(out, ring[:k]...)
	return append(out, ring[k])
}

// simplify removes vertices using the Ramer-Douglas-Peucker algorithm.
// End points are always kept.
func simplify(l sketch.Polyline, tol float64) sketch.Polyline {
	if len(l) < 3 || tol <= 0 {
		return l
	}
	keep := make([]bool, len(l))
	keep[0], keep[len(l)-1] = true, true
	type span struct{ a, b int }
	stack := []span{{0, len(l) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		maxD, maxI := -1.0, -1
		for i := s.a + 1; i < s.b; i++ {
			if d := segmentDistance(l[i], l[s.a], l[s.b]); d > maxD {
				maxD, maxI = d, i
			}
		}
		if maxI >= 0 && maxD > tol {
			keep[maxI] = true
			stack = append(stack, span{s.a, maxI}, span{maxI, s.b})
		}
	}
	out := make(sketch.Polyline, 0, len(l))
	for i, p := range l {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func segmentDistance(p, a, b sketch.Point) float64 {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return p.Distance(a)
	}
	t := min(1, max(0, p.Sub(a).Dot(ab)/den))
	return p.Distance(a.Add(ab.Mul(t)))
}

// multipass extends l so the pen traces it n times, going back and forth
// for open lines and around again for closed ones.
func multipass(l sketch.Polyline, n int) sketch.Polyline {
	if n <= 1 || len(l) < 2 {
		return l
	}
	closed := l.IsClosed()
	out := make(sketch.Polyline, 0, n*len(l))
	out = append(out, l...)
	rev := l.Reversed()
	for pass := 1; pass < n; pass++ {
		next := l
		if !closed && pass%2 == 1 {
			next = rev
		}
		out = append(out, next[1:]...)
	}
	return out
}
