// Package source loads scene images. A scene normally points at a
// raster file; slide-style stories may point at a page of a PDF using
// the form "deck.pdf#3" (1-based page numbers).
package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"
)

// Load decodes the image a scene reference points at.
func Load(ref string) (image.Image, error) {
	path, page, isPDF := splitPDFRef(ref)
	if isPDF {
		return renderPDFPage(path, page)
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return img, nil
}

// Dimensions reports the pixel size of a scene reference without
// decoding the full image.
func Dimensions(ref string) (int, int, error) {
	path, page, isPDF := splitPDFRef(ref)
	if isPDF {
		img, err := renderPDFPage(path, page)
		if err != nil {
			return 0, 0, err
		}
		b := img.Bounds()
		return b.Dx(), b.Dy(), nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// splitPDFRef parses "path.pdf#N" into its parts. A bare "path.pdf"
// means page 1.
func splitPDFRef(ref string) (path string, page int, isPDF bool) {
	path = ref
	page = 1
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		if n, err := strconv.Atoi(ref[i+1:]); err == nil && n >= 1 {
			path = ref[:i]
			page = n
		}
	}
	return path, page, strings.HasSuffix(strings.ToLower(path), ".pdf")
}
