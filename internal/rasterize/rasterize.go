// Package rasterize renders document receipts to raster images. The
// vision service only accepts image input, so PDF receipts go through
// pdftoppm before extraction; the original document, not the raster,
// is what ends up in the archive.
package rasterize

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"hsaledger/internal/fileutils"
	"hsaledger/internal/logging"
)

// rasterDPI is the render resolution. Receipts are text-dense, so a
// mid-range DPI keeps the upload small without losing legibility.
const rasterDPI = 200

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// renderFirstPageToPNG is a variable holding the pdftoppm invocation so
// tests can swap it out.
var renderFirstPageToPNG = func(pdfFile, outPrefix string) error {
	cmd := exec.Command("pdftoppm", "-singlefile", "-png", "-r", strconv.Itoa(rasterDPI), "-f", "1", "-l", "1", pdfFile, outPrefix)
	if err := cmd.Run(); err != nil {
		log.WithError(err).Error("Failed to run pdftoppm command")
		return fmt.Errorf("error running pdftoppm: %w", err)
	}
	return nil
}

// Renderer renders the first page of a document receipt to a PNG.
type Renderer interface {
	// RenderFirstPage returns the path of the rendered PNG and a cleanup
	// function releasing the temporary files behind it. The cleanup
	// function is non-nil exactly when err is nil, and must be called on
	// every exit path once the raster is no longer needed.
	RenderFirstPage(pdfPath string) (pngPath string, cleanup func(), err error)
}

// PopplerRenderer implements Renderer with the pdftoppm command from
// poppler-utils, which must be installed on the host.
type PopplerRenderer struct{}

// NewPopplerRenderer creates a new PopplerRenderer.
func NewPopplerRenderer() *PopplerRenderer {
	return &PopplerRenderer{}
}

// RenderFirstPage renders page one of a PDF into a scoped temporary
// directory. The temporary directory is removed by the returned cleanup
// function, or before returning when rendering fails.
func (r *PopplerRenderer) RenderFirstPage(pdfPath string) (string, func(), error) {
	tempDir, err := os.MkdirTemp("", "hsaledger-raster-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithError(err).Warn("Failed to remove temp directory")
		}
	}

	outPrefix := filepath.Join(tempDir, "page")
	if err := renderFirstPageToPNG(pdfPath, outPrefix); err != nil {
		cleanup()
		return "", nil, err
	}

	pngPath := outPrefix + ".png"
	if !fileutils.FileExists(pngPath) {
		cleanup()
		return "", nil, fmt.Errorf("pdftoppm produced no output for %s", pdfPath)
	}

	log.WithFields(
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: "raster", Value: pngPath},
	).Debug("Rendered document to raster")
	return pngPath, cleanup, nil
}

// MockRenderer implements Renderer for testing purposes.
type MockRenderer struct {
	PNGPath string
	Err     error

	Calls        int
	CleanupCalls int
}

// RenderFirstPage returns the predefined raster path or error.
func (m *MockRenderer) RenderFirstPage(pdfPath string) (string, func(), error) {
	m.Calls++
	if m.Err != nil {
		return "", nil, m.Err
	}
	return m.PNGPath, func() { m.CleanupCalls++ }, nil
}
