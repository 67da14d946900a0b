package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/chaosmap/internal/iterate"
)

// ExportData is the JSON form of a run. Non-finite states become null.
type ExportData struct {
	Run    RunMetadata  `json:"run"`
	Params []float64    `json:"params"`
	Start  int          `json:"start"`
	States [][]*float64 `json:"states"`
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ExportJSON writes a run and its table to w.
func ExportJSON(w io.Writer, meta RunMetadata, table *iterate.Table) error {
	data := ExportData{Run: meta}
	if table != nil {
		data.Params = table.Params.Clone()
		data.Start = table.Start
		data.States = make([][]*float64, table.NumRows())
		for i := range data.States {
			row := table.Row(i)
			data.States[i] = make([]*float64, len(row))
			for k, v := range row {
				data.States[i][k] = finitePtr(v)
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes a table in wide form: one row per recorded iteration,
// one column per parameter value.
func ExportCSV(w io.Writer, table *iterate.Table) error {
	cw := csv.NewWriter(w)

	header := []string{"index"}
	for _, r := range table.Params {
		header = append(header, strconv.FormatFloat(r, 'g', -1, 64))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < table.NumRows(); i++ {
		row := []string{strconv.Itoa(table.Start + i)}
		for _, v := range table.Row(i) {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
