package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxCells bounds the number of cells ReadASCII accepts.
const MaxCells = 1 << 28

// ReadASCII decodes an ESRI ASCII grid.
func ReadASCII(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	g := &Grid{}
	var pending string
	for sc.Scan() {
		key := sc.Text()
		if _, err := strconv.ParseFloat(key, 64); err == nil {
			pending = key
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("ascii grid: header %q has no value", key)
		}
		val := sc.Text()
		if err := g.setHeader(strings.ToLower(key), val); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("ascii grid: missing ncols/nrows")
	}
	if g.Width > MaxCells/g.Height {
		return nil, fmt.Errorf("ascii grid: %dx%d exceeds %d cells", g.Width, g.Height, MaxCells)
	}

	g.Values = make([]float64, 0, g.Width*g.Height)
	push := func(tok string) error {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("ascii grid: cell %d: %w", len(g.Values), err)
		}
		g.Values = append(g.Values, v)
		return nil
	}
	if pending != "" {
		if err := push(pending); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		if err := push(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) setHeader(key, val string) error {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("ascii grid: header %s: %w", key, err)
	}
	switch key {
	case "ncols":
		g.Width, err = dimension(key, f)
	case "nrows":
		g.Height, err = dimension(key, f)
	case "xllcorner", "xllcenter":
		g.XLLCorner = f
	case "yllcorner", "yllcenter":
		g.YLLCorner = f
	case "cellsize":
		g.CellSize = f
	case "nodata_value":
		g.NoData = &f
	default:
		return fmt.Errorf("ascii grid: unknown header %q", key)
	}
	return err
}

// dimension accepts whole numbers in [1, MaxCells]; NaN fails every check.
func dimension(key string, f float64) (int, error) {
	if !(f >= 1 && f <= MaxCells) || f != math.Trunc(f) {
		return 0, fmt.Errorf("ascii grid: %s %v is not a valid dimension", key, f)
	}
	return int(f), nil
}

// WriteASCII encodes g as an ESRI ASCII grid.
func WriteASCII(w io.Writer, g *Grid) error {
	if err := g.check(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	cell := g.CellSize
	if cell == 0 {
		cell = 1
	}
	fmt.Fprintf(bw, "ncols %d\nnrows %d\nxllcorner %g\nyllcorner %g\ncellsize %g\n",
		g.Width, g.Height, g.XLLCorner, g.YLLCorner, cell)
	if g.NoData != nil {
		fmt.Fprintf(bw, "NODATA_value %g\n", *g.NoData)
	}
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			v := g.At(col, row)
			if math.IsNaN(v) && g.NoData != nil {
				v = *g.NoData
			}
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteASCIIFile writes g to path, creating parent directories.
func WriteASCIIFile(path string, g *Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteASCII(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
