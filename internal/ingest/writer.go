package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/meds2dtc/internal/core"
)

// DateLayout is the timestamp format of the date column in written event tables.
// Fractional seconds are written only when present.
const DateLayout = "2006-01-02 15:04:05.999999999"

// OutputNames are the file names of the three written tables.
type OutputNames struct {
	Static       string
	Descriptions string
	Events       string
}

// DefaultOutputNames returns the standard output file names.
func DefaultOutputNames() OutputNames {
	return OutputNames{
		Static:       "constant.csv",
		Descriptions: "constant_description.csv",
		Events:       "events.csv",
	}
}

// WriteOutputs writes the three tables of res as CSV files into dir,
// creating dir if needed.
func WriteOutputs(dir string, names OutputNames, res *core.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	writes := []struct {
		name  string
		write func(io.Writer) error
	}{
		{names.Static, func(w io.Writer) error { return WriteStatic(w, res.Static) }},
		{names.Descriptions, func(w io.Writer) error { return WriteDescriptions(w, res.Descriptions) }},
		{names.Events, func(w io.Writer) error { return WriteEvents(w, res.Events) }},
	}

	for _, out := range writes {
		if err := writeFile(filepath.Join(dir, out.name), out.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteStatic writes the static table. Null cells are written empty.
func WriteStatic(w io.Writer, t core.StaticTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDescriptions writes the variable/comment lookup.
func WriteDescriptions(w io.Writer, rows []core.DescriptionRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{core.ColVariable, core.ColComment}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Variable, r.Comment}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEvents writes the long-format event table. meta_data is written empty
// unless set.
func WriteEvents(w io.Writer, rows []core.EventRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(core.EventColumns); err != nil {
		return err
	}
	for _, r := range rows {
		meta := ""
		if r.MetaData.Valid {
			meta = r.MetaData.String
		}
		record := []string{
			r.PatientID,
			r.Date.Format(DateLayout),
			r.EventName,
			r.EventValue,
			r.EventCategory,
			r.EventDescriptiveName,
			meta,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
