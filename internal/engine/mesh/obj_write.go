package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteOBJ writes the mesh as OBJ text. Every output vertex gets its own
// v, vt and vn lines so a face corner uses the same index for all three.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)

	hasUV := len(m.UVs) == len(m.Positions) && len(m.UVs) > 0
	hasNormal := len(m.Normals) == len(m.Positions) && len(m.Normals) > 0

	fmt.Fprintf(bw, "# terrasculpt mesh: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	if hasUV {
		for _, t := range m.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", formatFloat(t[0]), formatFloat(t[1]))
		}
	}
	if hasNormal {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n[0]), formatFloat(n[1]), formatFloat(n[2]))
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for _, idx := range m.Indices[i : i+3] {
			n := idx + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", n, n, n)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", n, n)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", n, n)
			default:
				fmt.Fprintf(bw, " %d", n)
			}
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// SaveOBJFile writes the mesh to path.
func (m *Mesh) SaveOBJFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj: %w", err)
	}
	if err := m.WriteOBJ(f); err != nil {
		f.Close()
		return fmt.Errorf("write obj: %w", err)
	}
	return f.Close()
}

// formatFloat uses the shortest representation that parses back to the same float32.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
