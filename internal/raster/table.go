package raster

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV decodes a numeric matrix, one raster row per record. Empty cells
// become NaN.
func ReadCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

// ReadXLSX decodes the first sheet of a workbook as a numeric matrix.
func ReadXLSX(path string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*Grid, error) {
	// trailing blank rows are dropped, short rows padded
	for len(rows) > 0 && blank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g := &Grid{Width: width, Height: len(rows), Values: make([]float64, 0, width*len(rows))}
	for i, row := range rows {
		for j := 0; j < width; j++ {
			v := math.NaN()
			if j < len(row) {
				if s := strings.TrimSpace(row[j]); s != "" {
					f, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return nil, fmt.Errorf("row %d col %d: %w", i+1, j+1, err)
					}
					v = f
				}
			}
			g.Values = append(g.Values, v)
		}
	}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

func blank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
