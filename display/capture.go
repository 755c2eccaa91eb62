package display

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

type encoderFn func(io.Writer, image.Image) error

var encoders = map[string]encoderFn{
	"png": png.Encode,
	"bmp": bmp.Encode,
	"tga": tga.Encode,
	"webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
}

func timestamp() string {
	return time.Now().Format("20060102-150405.000")
}

// Set the directory and image format (png, webp, tga or bmp) used by
// Screenshot.
func (s *Surface) SetScreenshotOptions(dir, format string) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if _, ok := encoders[format]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if dir == "" {
		dir = "."
	}

	s.screenshotDir, s.screenshotFormat = dir, format
	return nil
}

// Get a copy of the pixel buffer as an image. The buffer stores the bottom
// row first so rows are flipped.
func (s *Surface) Image() (*image.RGBA, error) {
	if len(s.pixels) == 0 {
		return nil, ErrEmptySurface
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		srcRow := s.pixels[(s.height-1-y)*s.width : (s.height-y)*s.width]
		dstOffset := y * img.Stride
		for x, pix := range srcRow {
			img.Pix[dstOffset+4*x+0] = uint8(pix)
			img.Pix[dstOffset+4*x+1] = uint8(pix >> 8)
			img.Pix[dstOffset+4*x+2] = uint8(pix >> 16)
			img.Pix[dstOffset+4*x+3] = uint8(pix >> 24)
		}
	}
	return img, nil
}

// Encode the surface contents to the file at path. The image format is
// selected by the file extension.
func (s *Surface) Capture(path string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	encode, ok := encoders[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	img, err := s.Image()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("display: could not encode %s: %w", path, err)
	}
	return f.Close()
}

// Capture the surface contents to a timestamped file in the screenshot
// directory and return its path.
func (s *Surface) Screenshot() (string, error) {
	if err := os.MkdirAll(s.screenshotDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(s.screenshotDir, fmt.Sprintf("screenshot-%s.%s", s.clock(), s.screenshotFormat))
	if err := s.Capture(path); err != nil {
		return "", err
	}
	return path, nil
}
