package mesh

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/terrasculpt/internal/logger"
)

// LineError describes an OBJ line that was skipped during import.
type LineError struct {
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("obj line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// IndexRangeError is returned when a face references an attribute that does not exist.
type IndexRangeError struct {
	Line  int
	Kind  string // "position", "uv" or "normal"
	Index int    // As written in the file
	Count int    // Number of attributes of that kind
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("obj line %d: %s index %d out of range [1, %d]", e.Line, e.Kind, e.Index, e.Count)
}

// ImportReport summarizes an OBJ import.
type ImportReport struct {
	Positions int // v statements
	UVs       int // vt statements
	Normals   int // vn statements
	Triangles int // After fan triangulation
	Vertices  int // Unique (position, uv, normal) combinations

	// Skipped aggregates a *LineError per malformed line, nil if none.
	Skipped error
}

// SkippedLines returns the individual line errors.
func (r ImportReport) SkippedLines() []error {
	return multierr.Errors(r.Skipped)
}

// vertexKey identifies one output vertex by its 0-based source attribute
// indices. -1 marks an attribute the corner did not specify.
type vertexKey struct {
	pos, uv, normal int
}

type objCorner struct {
	key  vertexKey
	line int
	// Written form of each index, kept for error reporting.
	raw [3]int
}

// LoadOBJFile reads and imports an OBJ file, logging every skipped line.
func LoadOBJFile(path string) (*Mesh, ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("read obj: %w", err)
	}

	m, report, err := ParseOBJ(data)
	if err != nil {
		return nil, report, fmt.Errorf("import %s: %w", path, err)
	}

	log := logger.Named("mesh")
	for _, skipped := range report.SkippedLines() {
		log.Warn("skipped obj line", zap.String("file", path), zap.Error(skipped))
	}
	log.Info("imported obj",
		zap.String("file", path),
		zap.Int("vertices", report.Vertices),
		zap.Int("triangles", report.Triangles),
		zap.Int("skipped", len(report.SkippedLines())))

	return m, report, nil
}

// ParseOBJ imports v, vt, vn and f statements from OBJ text. Face corners
// sharing the same (position, uv, normal) triple become one output vertex;
// output vertices are numbered in first-seen order. Polygons are fan
// triangulated. Malformed lines are skipped and listed in the report; a face
// referencing a missing attribute fails the import with *IndexRangeError.
func ParseOBJ(data []byte) (*Mesh, ImportReport, error) {
	var report ImportReport
	lines := splitLines(data)

	// Pass 1: size the raw attribute buffers.
	var nPos, nUV, nNormal, nFace int
	for _, line := range lines {
		switch keyword(line) {
		case "v":
			nPos++
		case "vt":
			nUV++
		case "vn":
			nNormal++
		case "f":
			nFace++
		}
	}

	positions := make([]mgl32.Vec3, 0, nPos)
	uvs := make([]mgl32.Vec2, 0, nUV)
	normals := make([]mgl32.Vec3, 0, nNormal)
	corners := make([]objCorner, 0, nFace*3)

	// Pass 2: parse attributes and face corners.
	for i, line := range lines {
		lineNo := i + 1
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var lineErr error
		switch fields[0] {
		case "v":
			var v []float32
			if v, lineErr = parseFloats(fields[1:], 3); lineErr == nil {
				positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
			}
		case "vt":
			var v []float32
			if v, lineErr = parseFloats(fields[1:], 2); lineErr == nil {
				uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
			}
		case "vn":
			var v []float32
			if v, lineErr = parseFloats(fields[1:], 3); lineErr == nil {
				normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
			}
		case "f":
			var face []objCorner
			face, lineErr = parseFace(fields[1:], lineNo, len(positions), len(uvs), len(normals))
			if lineErr == nil {
				for k := 1; k+1 < len(face); k++ {
					corners = append(corners, face[0], face[k], face[k+1])
				}
			}
		}

		if lineErr != nil {
			report.Skipped = multierr.Append(report.Skipped, &LineError{
				Line:   lineNo,
				Text:   strings.TrimSpace(line),
				Reason: lineErr.Error(),
			})
		}
	}

	report.Positions = len(positions)
	report.UVs = len(uvs)
	report.Normals = len(normals)
	report.Triangles = len(corners) / 3

	for _, c := range corners {
		if err := checkCorner(c, len(positions), len(uvs), len(normals)); err != nil {
			return nil, report, err
		}
	}

	// Assign output vertices in first-seen order and resolve indices.
	unique := make(map[vertexKey]uint32, len(corners))
	order := make([]vertexKey, 0, len(corners))
	indices := make([]uint32, 0, len(corners))
	hasUV, hasNormal := false, false

	for _, c := range corners {
		idx, ok := unique[c.key]
		if !ok {
			idx = uint32(len(order))
			unique[c.key] = idx
			order = append(order, c.key)
		}
		indices = append(indices, idx)
		hasUV = hasUV || c.key.uv >= 0
		hasNormal = hasNormal || c.key.normal >= 0
	}

	outPos := make([]mgl32.Vec3, len(order))
	var outUV []mgl32.Vec2
	var outNormal []mgl32.Vec3
	if hasUV {
		outUV = make([]mgl32.Vec2, len(order))
	}
	if hasNormal {
		outNormal = make([]mgl32.Vec3, len(order))
	}

	for i, k := range order {
		outPos[i] = positions[k.pos]
		if k.uv >= 0 {
			outUV[i] = uvs[k.uv]
		}
		if k.normal >= 0 {
			outNormal[i] = normals[k.normal]
		}
	}
	report.Vertices = len(order)

	m := &Mesh{}
	m.reset(outPos, outUV, outNormal, indices)
	return m, report, nil
}

func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func keyword(line string) string {
	line = strings.TrimLeft(line, " \t")
	if end := strings.IndexAny(line, " \t"); end >= 0 {
		return line[:end]
	}
	return line
}

// parseFloats reads at least n floats; extra components (such as w) are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFace reads the corners of one f statement. Negative indices are
// relative to the attributes defined so far.
func parseFace(fields []string, line, nPos, nUV, nNormal int) ([]objCorner, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs at least 3 corners, got %d", len(fields))
	}

	face := make([]objCorner, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) > 3 || parts[0] == "" {
			return nil, fmt.Errorf("corner %q is not p, p/uv, p//n or p/uv/n", field)
		}

		c := objCorner{line: line}
		counts := [3]int{nPos, nUV, nNormal}
		resolved := [3]int{-1, -1, -1}
		for k, part := range parts {
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("corner %q: %w", field, err)
			}
			if n == 0 {
				return nil, fmt.Errorf("corner %q: indices start at 1", field)
			}
			c.raw[k] = n
			if n > 0 {
				resolved[k] = n - 1
			} else {
				resolved[k] = counts[k] + n
			}
		}
		if len(parts) == 3 && parts[2] == "" {
			return nil, fmt.Errorf("corner %q has an empty normal index", field)
		}

		c.key = vertexKey{pos: resolved[0], uv: resolved[1], normal: resolved[2]}
		face = append(face, c)
	}
	return face, nil
}

func checkCorner(c objCorner, nPos, nUV, nNormal int) error {
	checks := []struct {
		kind  string
		index int
		count int
		raw   int
	}{
		{"position", c.key.pos, nPos, c.raw[0]},
		{"uv", c.key.uv, nUV, c.raw[1]},
		{"normal", c.key.normal, nNormal, c.raw[2]},
	}
	for _, chk := range checks {
		if chk.raw == 0 {
			continue // Not specified
		}
		if chk.index < 0 || chk.index >= chk.count {
			return &IndexRangeError{Line: c.line, Kind: chk.kind, Index: chk.raw, Count: chk.count}
		}
	}
	return nil
}
