package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image renders a w*h cell buffer into an RGBA image, one pixel per cell.
func Image(cells []uint8, w, h int, palette []color.RGBA) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("render: %d cells do not fill %dx%d", len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(img.Pix, cells, palette)
	return img, nil
}

// Encode writes img in the named format: png, bmp or tiff.
func Encode(out io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(out, img)
	case "bmp":
		return bmp.Encode(out, img)
	case "tiff":
		return tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// FormatFor maps a file extension to an encoder name.
func FormatFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return "png", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// WriteFile encodes img to path, picking the format from the extension. A
// failed write removes the partial file.
func WriteFile(path string, img image.Image) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close image: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
