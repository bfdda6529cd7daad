package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the rasterization density for PDF pages. 300 keeps
// enough resolution for the working canvas oversize at 1080p targets.
const renderDPI = 300

func renderPDFPage(path string, page int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if page < 1 || page > doc.NumPage() {
		return nil, fmt.Errorf("pdf %s has %d pages, requested page %d", path, doc.NumPage(), page)
	}

	img, err := doc.ImageDPI(page-1, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("render pdf page %d of %s: %w", page, path, err)
	}
	return img, nil
}
