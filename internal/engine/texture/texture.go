// Package texture loads terrain textures into RGBA pixels ready for upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/Faultbox/terrasculpt/internal/logger"
	"github.com/Faultbox/terrasculpt/pkg/noise"
)

// MaxSize bounds the longest texture side.
const MaxSize = 2048

// LoadFile decodes an image file into RGBA. Images larger than maxSize
// on either side are scaled down to fit.
func LoadFile(path string, maxSize int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	var img *image.RGBA
	format := "tga"
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, format, err = Decode(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	img = FitMax(img, maxSize)
	logger.Info("texture loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Int("uploadWidth", img.Bounds().Dx()))
	return img, nil
}

// Decode decodes any registered image format (png, jpeg, bmp, webp) into RGBA.
func Decode(data []byte) (*image.RGBA, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return ToRGBA(img), format, nil
}

// ToRGBA converts img to *image.RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// FitMax scales img down so neither side exceeds maxSize, keeping the aspect
// ratio. Smaller images and maxSize <= 0 return img unchanged.
func FitMax(img *image.RGBA, maxSize int) *image.RGBA {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}

	w, h := maxSize, maxSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSize/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSize/b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Checker colors.
var (
	CheckerLight = color.RGBA{R: 112, G: 146, B: 78, A: 255}
	CheckerDark  = color.RGBA{R: 86, G: 116, B: 60, A: 255}
)

// Checker generates a size x size checkerboard with cells x cells squares,
// mottled with noise so tiling repeats are less obvious. The same arguments
// always produce the same pixels.
func Checker(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}
	cells = max(cells, 1)
	cell := max(size/cells, 1)

	for y := range size {
		for x := range size {
			c := CheckerDark
			if (x/cell+y/cell)%2 == 0 {
				c = CheckerLight
			}
			n := noise.Perlin01(float32(x)/16, float32(y)/16)
			shade := 0.85 + 0.3*n
			img.SetRGBA(x, y, color.RGBA{
				R: scale(c.R, shade),
				G: scale(c.G, shade),
				B: scale(c.B, shade),
				A: 255,
			})
		}
	}
	return img
}

func scale(v uint8, f float32) uint8 {
	s := float32(v) * f
	if s > 255 {
		return 255
	}
	return uint8(s)
}
