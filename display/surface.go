package display

import "fmt"

// The Uploader interface is implemented by graphics backends that can
// display a pixel buffer.
type Uploader interface {
	// Allocate a texture for displaying frames.
	CreateTexture() (uint32, error)

	// Upload a width x height buffer of packed RGBA8 pixels (bottom row
	// first) to the texture and draw it over the whole viewport.
	Draw(texture uint32, width, height int, pixels []uint32)

	// Release a texture allocated by CreateTexture.
	DeleteTexture(texture uint32)
}

// Surface owns the displayable pixel buffer. The buffer is sized to the
// drawable area of the window and presented once per frame.
type Surface struct {
	uploader Uploader

	width, height int
	pixels        []uint32

	texture    uint32
	hasTexture bool

	// Screenshot settings.
	screenshotDir    string
	screenshotFormat string
	clock            func() string
}

// Create a new surface. The surface is empty until the first call to Resize.
func NewSurface(uploader Uploader) *Surface {
	return &Surface{
		uploader:         uploader,
		screenshotDir:    ".",
		screenshotFormat: "png",
		clock:            timestamp,
	}
}

// Reallocate the pixel buffer to width x height pixels. Zero dimensions are
// allowed and result in an empty surface.
func (s *Surface) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	if width == s.width && height == s.height && len(s.pixels) == width*height {
		return nil
	}

	s.width, s.height = width, height
	s.pixels = make([]uint32, width*height)
	return nil
}

// Get the surface size.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Get the pixel buffer. Renderers download frames directly into it.
func (s *Surface) Pixels() []uint32 {
	return s.pixels
}

// Upload the pixel buffer to the display. The display texture is created on
// first use. Presenting an empty surface is a no-op.
func (s *Surface) Present() error {
	if len(s.pixels) == 0 {
		return nil
	}

	if !s.hasTexture {
		texture, err := s.uploader.CreateTexture()
		if err != nil {
			return err
		}
		s.texture, s.hasTexture = texture, true
	}

	s.uploader.Draw(s.texture, s.width, s.height, s.pixels)
	return nil
}

// Release the display texture.
func (s *Surface) Release() {
	if s.hasTexture {
		s.uploader.DeleteTexture(s.texture)
		s.texture, s.hasTexture = 0, false
	}
}
