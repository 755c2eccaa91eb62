package glfw

import (
	"errors"

	"github.com/go-gl/gl/v2.1/gl"
)

var errTextureAlloc = errors.New("glfw: could not allocate display texture")

// TextureUploader implements display.Uploader by drawing frames as a
// textured quad covering the viewport. It requires a current GL context.
type TextureUploader struct{}

func (TextureUploader) CreateTexture() (uint32, error) {
	var texture uint32
	gl.GenTextures(1, &texture)
	if texture == 0 {
		return 0, errTextureAlloc
	}

	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture, nil
}

func (TextureUploader) Draw(texture uint32, width, height int, pixels []uint32) {
	w, h := int32(width), int32(height)

	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Setup ortho projection; pixel rows are stored bottom first
	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, w, h)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, 1, 0, 1, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Enable(gl.TEXTURE_2D)
	gl.Color3f(1, 1, 1)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex3f(0, 0, 0)
	gl.TexCoord2f(0, 1)
	gl.Vertex3f(0, 1, 0)
	gl.TexCoord2f(1, 1)
	gl.Vertex3f(1, 1, 0)
	gl.TexCoord2f(1, 0)
	gl.Vertex3f(1, 0, 0)
	gl.End()
	gl.Disable(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (TextureUploader) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}
