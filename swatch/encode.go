package swatch

import (
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// Extensions lists the supported output file types.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// Encode writes img to w in the format matching the file extension.
// An empty extension defaults to PNG.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		// JPEG has no alpha channel, flatten the strip over a white background.
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White.C)
		bg = imaging.Overlay(bg, img, image.Point{}, 1.0)
		return jpeg.Encode(w, bg, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return errors.New("unsupported image format")
	}
}
