package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/grid"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// Places is the number of decimals written to CSV cells.
const Places = 4

// WriteJSON writes v, indented, to outdir/name.json.
func WriteJSON(v any, outdir, name string) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "encoding %s", name)
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating %s", outdir)
	}
	path := filepath.Join(outdir, name+".json")
	if err := os.WriteFile(path, b, 0644); err != nil {
		return "", errors.Wrapf(err, "writing %s", path)
	}
	return path, nil
}

// WriteGridCSV writes one file per side, <metric>_call.csv and
// <metric>_put.csv. The first row holds the spot axis, the first column the
// volatility axis.
func WriteGridCSV(g *grid.Grid, outdir string) ([]string, error) {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", outdir)
	}

	var paths []string
	for _, side := range []pricing.Side{pricing.Call, pricing.Put} {
		path := filepath.Join(outdir, string(g.Metric)+"_"+side.String()+".csv")
		if err := writeMatrix(path, g, side); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeMatrix(path string, g *grid.Grid, side pricing.Side) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, g.Cols()+1)
	header = append(header, "vol\\spot")
	for _, s := range g.SpotAxis {
		header = append(header, cell(s))
	}
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	for i, row := range g.Matrix(side) {
		record := make([]string, 0, len(row)+1)
		record = append(record, cell(g.VolAxis[i]))
		for _, v := range row {
			record = append(record, cell(v))
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}

	w.Flush()
	return errors.Wrapf(w.Error(), "flushing %s", path)
}

func cell(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(Places)
}
