// Package raster decodes single-band grids into row-major float64 values.
package raster

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported raster format")
	ErrEmptyGrid         = errors.New("raster has no cells")
)

// Grid is a rectangular single-band raster.
type Grid struct {
	Width  int
	Height int
	// Values is row-major, top row first.
	Values []float64
	// NoData marks cells without a measurement; nil when the format has none.
	NoData *float64

	// Georeferencing, kept so ASCII grids round-trip. Zero for image formats.
	XLLCorner float64
	YLLCorner float64
	CellSize  float64

	Source string
}

func (g *Grid) Len() int { return len(g.Values) }

// At returns the value in column col of row row.
func (g *Grid) At(col, row int) float64 { return g.Values[row*g.Width+col] }

// IsNoData reports whether v is the grid's NoData value. NaN always counts.
func (g *Grid) IsNoData(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return g.NoData != nil && v == *g.NoData
}

func (g *Grid) SameShape(o *Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

func (g *Grid) check() error {
	if g.Width <= 0 || g.Height <= 0 {
		return ErrEmptyGrid
	}
	if len(g.Values) != g.Width*g.Height {
		return fmt.Errorf("raster: %d values for a %dx%d grid", len(g.Values), g.Width, g.Height)
	}
	return nil
}

// Open decodes the file at path, choosing the decoder by extension.
func Open(path string) (*Grid, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		g   *Grid
		err error
	)
	switch ext {
	case ".xlsx":
		g, err = ReadXLSX(path)
	case ".asc", ".txt", ".csv", ".tif", ".tiff", ".png":
		f, oerr := os.Open(path)
		if oerr != nil {
			return nil, oerr
		}
		defer f.Close()
		switch ext {
		case ".asc", ".txt":
			g, err = ReadASCII(f)
		case ".csv":
			g, err = ReadCSV(f)
		case ".tif", ".tiff":
			g, err = ReadTIFF(f)
		default:
			g, err = ReadPNG(f)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("reading raster %s: %w", path, err)
	}
	g.Source = path
	return g, nil
}
