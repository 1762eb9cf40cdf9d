package mesh

import "github.com/go-gl/mathgl/mgl32"

// Selection is a fixed-capacity list of vertex indices gathered per triangle.
// Indices shared between triangles appear once per triangle.
type Selection struct {
	indices []uint32
}

// NewSelection allocates a selection that holds up to capacity indices.
func NewSelection(capacity int) *Selection {
	return &Selection{indices: make([]uint32, 0, capacity)}
}

// Clear empties the selection without releasing storage.
func (s *Selection) Clear() {
	s.indices = s.indices[:0]
}

// Len returns the number of stored indices.
func (s *Selection) Len() int {
	return len(s.indices)
}

// Cap returns the fixed capacity.
func (s *Selection) Cap() int {
	return cap(s.indices)
}

// Indices returns the stored indices. The slice is reused by the next query.
func (s *Selection) Indices() []uint32 {
	return s.indices
}

// At returns the i-th stored index.
func (s *Selection) At(i int) uint32 {
	return s.indices[i]
}

func (s *Selection) pushTriangle(a, b, c uint32) bool {
	if len(s.indices)+3 > cap(s.indices) {
		return false
	}
	s.indices = append(s.indices, a, b, c)
	return true
}

// TrianglesInRadius selects every triangle whose centroid lies strictly
// within radius of center. sel is cleared first. If sel fills up the
// gathered triangles are kept and ErrSelectionFull is returned.
func (m *Mesh) TrianglesInRadius(center mgl32.Vec3, radius float32, sel *Selection) error {
	return m.trianglesInRadius(center, radius, sel, false)
}

// TrianglesInRadiusIgnoreHeight is TrianglesInRadius measured on the XZ plane,
// so the selection stays stable while heights change under it.
func (m *Mesh) TrianglesInRadiusIgnoreHeight(center mgl32.Vec3, radius float32, sel *Selection) error {
	return m.trianglesInRadius(center, radius, sel, true)
}

func (m *Mesh) trianglesInRadius(center mgl32.Vec3, radius float32, sel *Selection, ignoreHeight bool) error {
	sel.Clear()
	radiusSqr := radius * radius

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		sum := m.Positions[a].Add(m.Positions[b]).Add(m.Positions[c])
		centroid := mgl32.Vec3{sum[0] / 3, sum[1] / 3, sum[2] / 3}

		d := centroid.Sub(center)
		if ignoreHeight {
			d[1] = 0
		}
		if d.Dot(d) >= radiusSqr {
			continue
		}
		if !sel.pushTriangle(a, b, c) {
			return ErrSelectionFull
		}
	}
	return nil
}
