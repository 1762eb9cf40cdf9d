package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrasculpt/internal/engine/mesh"
)

func TestBoundsWireframe(t *testing.T) {
	b := mesh.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 1, 3}}
	verts := BoundsWireframe(b, 0.5)
	require.Len(t, verts, BoundsWireframeVertexCount)

	// Every vertex is a padded corner and every edge is axis aligned.
	for _, v := range verts {
		assert.Contains(t, []float32{-0.5, 2.5}, v.X())
		assert.Contains(t, []float32{-0.5, 1.5}, v.Y())
		assert.Contains(t, []float32{-0.5, 3.5}, v.Z())
	}
	for i := 0; i < len(verts); i += 2 {
		d := verts[i+1].Sub(verts[i])
		nonZero := 0
		for _, c := range d {
			if c != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero, "edge %d", i/2)
	}
}

func TestBrushRing(t *testing.T) {
	center := mgl32.Vec3{5, 2, -5}
	verts := BrushRing(center, 3, 16)
	require.Len(t, verts, 32)

	for _, v := range verts {
		assert.InDelta(t, 3, v.Sub(center).Len(), 1e-4)
		assert.Equal(t, center.Y(), v.Y())
	}
	// Segments join up into a closed loop.
	for i := 1; i+1 < len(verts); i += 2 {
		assert.Equal(t, verts[i], verts[i+1])
	}
	assert.InDelta(t, 0, verts[len(verts)-1].Sub(verts[0]).Len(), 1e-4)

	assert.Nil(t, BrushRing(center, 3, 2))
	assert.Nil(t, BrushRing(center, 0, 16))
}

func TestCaptureFromPixelsFlips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "sculpt")
	sc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	// Two rows, bottom row first: red then blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sculpt_2026-03-04_05-06-07.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{B: 255, A: 255}), color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{R: 255, A: 255}), color.RGBAModel.Convert(img.At(0, 1)))
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	_, err := sc.CaptureFromPixels([]byte{1, 2, 3}, 1, 1)
	assert.ErrorContains(t, err, "size mismatch")
}
