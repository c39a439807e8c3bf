package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/mzhv/oscil/internal/motion"
)

// ExportData is the JSON shape of a full run: metadata plus the sampled
// series.
type ExportData struct {
	RunMetadata
	Times      []float64 `json:"times"`
	Positions  []float64 `json:"positions"`
	Velocities []float64 `json:"velocities"`
}

// ExportJSON writes a run with its trace to a file.
func ExportJSON(path string, meta RunMetadata, trace *motion.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSONTo(file, meta, trace)
}

// ExportJSONTo writes a run with its trace to a writer.
func ExportJSONTo(w io.Writer, meta RunMetadata, trace *motion.Trace) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       trace.Times,
		Positions:   trace.Positions,
		Velocities:  trace.Velocities,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes a trace as t,x,v rows. Floats are formatted shortest
// round-trippable, so a load reproduces the samples exactly.
func WriteCSV(w io.Writer, trace *motion.Trace) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"t", "x", "v"}); err != nil {
		return err
	}

	for i := range trace.Times {
		row := []string{
			strconv.FormatFloat(trace.Times[i], 'g', -1, 64),
			strconv.FormatFloat(trace.Positions[i], 'g', -1, 64),
			strconv.FormatFloat(trace.Velocities[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
