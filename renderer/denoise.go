package renderer

import "github.com/achilleasa/pathview/types"

// 3x3 gaussian kernel weights; they sum to 16.
var denoiseKernel = [3][3]float32{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

// Apply a 3x3 gaussian filter to a frameW x frameH buffer. Pixels outside the
// frame are ignored and the kernel is renormalized at the edges.
func denoise(src []types.Vec3, frameW, frameH int) []types.Vec3 {
	out := make([]types.Vec3, len(src))
	for y := 0; y < frameH; y++ {
		for x := 0; x < frameW; x++ {
			var sum types.Vec3
			var weight float32
			for ky := -1; ky <= 1; ky++ {
				sy := y + ky
				if sy < 0 || sy >= frameH {
					continue
				}
				for kx := -1; kx <= 1; kx++ {
					sx := x + kx
					if sx < 0 || sx >= frameW {
						continue
					}
					w := denoiseKernel[ky+1][kx+1]
					sum = sum.Add(src[sy*frameW+sx].Mul(w))
					weight += w
				}
			}
			out[y*frameW+x] = sum.Mul(1.0 / weight)
		}
	}
	return out
}
