// Package noise provides deterministic gradient noise for procedural terrain.
package noise

import "github.com/chewxy/math32"

// permutation is Ken Perlin's reference permutation. Using a fixed table keeps
// every height sample reproducible across runs and machines.
var permutation = [256]uint8{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// perm is the permutation table doubled to avoid index wrapping.
var perm [512]uint8

func init() {
	for i := range perm {
		perm[i] = permutation[i&255]
	}
}

// Perlin2 returns improved Perlin noise at (x, y).
// The result lies roughly in [-1, 1] and is exactly 0 on integer lattice points.
func Perlin2(x, y float32) float32 {
	fx := math32.Floor(x)
	fy := math32.Floor(y)

	xi := int(fx) & 255
	yi := int(fy) & 255

	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	aa := perm[int(perm[xi])+yi]
	ab := perm[int(perm[xi])+yi+1]
	ba := perm[int(perm[xi+1])+yi]
	bb := perm[int(perm[xi+1])+yi+1]

	return lerp(v,
		lerp(u, grad(aa, x, y), grad(ba, x-1, y)),
		lerp(u, grad(ab, x, y-1), grad(bb, x-1, y-1)),
	)
}

// Perlin01 remaps Perlin2 into [0, 1].
func Perlin01(x, y float32) float32 {
	n := (Perlin2(x, y) + 1) * 0.5
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}

// grad picks one of the 12 edge gradients of Perlin's improved noise, with z = 0.
func grad(hash uint8, x, y float32) float32 {
	switch hash & 15 {
	case 0, 12:
		return x + y
	case 1, 14:
		return -x + y
	case 2, 13:
		return x - y
	case 3, 15:
		return -x - y
	case 4, 6:
		return x
	case 5, 7:
		return -x
	case 8, 10:
		return y
	case 9, 11:
		return -y
	}
	return 0
}
