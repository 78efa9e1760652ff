package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{
	"model", "name", "equation", "slope", "intercept", "r", "r_squared", "p_value", "std_err", "selected",
}

// WriteCSV writes one row per candidate, in model order.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range r.Candidates {
		rec := []string{
			c.Model, c.Name, c.Equation,
			c.Slope.String(), c.Intercept.String(), c.R.String(),
			c.RSquared.String(), c.PValue.String(), c.StdErr.String(),
			strconv.FormatBool(c.Selected),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func SaveCSV(path string, r Report) error {
	return save(path, func(w io.Writer) error { return WriteCSV(w, r) })
}

func SaveJSON(path string, r Report) error {
	return save(path, func(w io.Writer) error { return WriteJSON(w, r) })
}

func save(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
