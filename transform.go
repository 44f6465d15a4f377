package sketch

import "math"

// Push saves the current transform on the stack.
func (s *Sketch) Push() {
	s.stack = append(s.stack, s.matrix)
}

// Pop restores the transform saved by the matching Push.
func (s *Sketch) Pop() error {
	n := len(s.stack)
	if n == 0 {
		return &UnbalancedStackError{Op: "Pop"}
	}
	s.matrix = s.stack[n-1]
	s.stack = s.stack[:n-1]
	return nil
}

// PushMatrix saves the current transform and returns a function that
// restores it. Intended for use with defer:
//
//	defer s.PushMatrix()()
func (s *Sketch) PushMatrix() func() {
	saved, depth := s.matrix, len(s.stack)
	s.Push()
	return func() { s.restore(depth, saved) }
}

// WithMatrix runs fn between a Push and its matching Pop. The transform is
// restored however fn returns, including by panic.
func (s *Sketch) WithMatrix(fn func() error) error {
	defer s.PushMatrix()()
	return fn()
}

// WithResetMatrix runs fn with the identity transform and restores the
// current transform afterwards.
func (s *Sketch) WithResetMatrix(fn func() error) error {
	defer s.PushMatrix()()
	s.ResetMatrix()
	return fn()
}

// restore truncates the stack to depth and reinstates m. Pushes left
// unbalanced inside a scope are discarded, and a Pop inside the scope that
// consumed the scope's own entry does not leak the body's transform.
func (s *Sketch) restore(depth int, m Matrix) {
	if len(s.stack) > depth {
		s.stack = s.stack[:depth]
	}
	s.matrix = m
}

// Translate moves the origin of the local frame by (dx, dy).
func (s *Sketch) Translate(dx, dy float64) {
	s.ApplyMatrix(TranslateMatrix(dx, dy))
}

// Rotate rotates the local frame by angle radians.
func (s *Sketch) Rotate(angle float64) {
	s.ApplyMatrix(RotateMatrix(angle))
}

// RotateDegrees rotates the local frame by angle degrees.
func (s *Sketch) RotateDegrees(angle float64) {
	s.Rotate(angle * math.Pi / 180)
}

// Scale scales the local frame uniformly.
func (s *Sketch) Scale(factor float64) {
	s.ApplyMatrix(ScaleMatrix(factor, factor))
}

// ScaleXY scales the local frame by sx horizontally and sy vertically.
func (s *Sketch) ScaleXY(sx, sy float64) {
	s.ApplyMatrix(ScaleMatrix(sx, sy))
}

// ScaleUnit scales the local frame so that one unit of drawing equals one u.
func (s *Sketch) ScaleUnit(u Unit) {
	s.Scale(float64(u))
}

// ScaleLength scales the local frame by a length string such as "1cm".
func (s *Sketch) ScaleLength(length string) error {
	px, err := ParseLength(length)
	if err != nil {
		return err
	}
	s.Scale(px)
	return nil
}

// ApplyMatrix composes m into the current transform. Subsequent drawing
// coordinates are transformed by m first.
func (s *Sketch) ApplyMatrix(m Matrix) {
	s.matrix = s.matrix.Multiply(m)
}

// ResetMatrix sets the current transform to identity. The stack is kept.
func (s *Sketch) ResetMatrix() {
	s.matrix = Identity()
}

// Transform returns the current transform.
func (s *Sketch) Transform() Matrix {
	return s.matrix
}

// StackDepth returns the number of saved transforms.
func (s *Sketch) StackDepth() int {
	return len(s.stack)
}
