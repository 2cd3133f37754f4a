package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder
var ErrUnsupportedFormat = errors.New("output: unsupported image format")

type encodeFunc func(w io.Writer, img image.Image) error

var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Formats returns the supported file extensions
func Formats() []string {
	return []string{".png", ".bmp", ".tif", ".tiff"}
}

// Encode writes img to w in the format named by ext (".png", ".bmp", ".tif" or ".tiff")
func Encode(w io.Writer, img image.Image, ext string) error {
	encode, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return encode(w, img)
}

// Save writes img to path, picking the encoder from the file extension.
// Missing parent directories are created.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	if _, ok := encoders[strings.ToLower(ext)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := Encode(file, img, ext); err != nil {
		file.Close()
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return file.Close()
}

// DefaultPath returns output/<scene>/render_<timestamp>.png.
// Only the last path element of sceneName is used, so the result stays under output/.
func DefaultPath(sceneName string, now time.Time) string {
	dir := filepath.Base(filepath.Clean(string(filepath.Separator) + sceneName))
	if dir == string(filepath.Separator) {
		dir = "scene"
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", timestamp))
}
