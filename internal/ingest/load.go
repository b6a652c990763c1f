package ingest

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/meds2dtc/internal/core"
	"github.com/JonMunkholm/meds2dtc/internal/core/tables"
	"github.com/JonMunkholm/meds2dtc/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Paths locates the three input files.
type Paths struct {
	Codes string
	Data  string
	Split string
	Sheet string // worksheet for .xlsx inputs; empty selects the first sheet
}

// LoadInputs reads the code dictionary, event log and split table
// concurrently. The first failure cancels the other reads.
func LoadInputs(ctx context.Context, p Paths) (core.Inputs, error) {
	sources := []struct {
		key  string
		path string
	}{
		{tables.KeyCodes, p.Codes},
		{tables.KeyData, p.Data},
		{tables.KeySplit, p.Split},
	}

	defs := make([]core.TableDefinition, len(sources))
	for i, src := range sources {
		def, ok := core.Get(src.key)
		if !ok {
			return core.Inputs{}, fmt.Errorf("unknown table: %s", src.key)
		}
		defs[i] = def
	}

	loaded := make([]*RawTable, len(sources))
	g, ctx := errgroup.WithContext(ctx)

	for i, src := range sources {
		i, src := i, src
		def := defs[i]
		g.Go(func() error {
			t, err := ReadTable(ctx, src.path, def, p.Sheet)
			if err != nil {
				return fmt.Errorf("load %s: %w", def.Info.Label, err)
			}
			logging.WithFields(ctx, "table", src.key, "path", src.path).
				Debug("input table loaded", "rows", len(t.Rows))
			loaded[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return core.Inputs{}, err
	}

	return Assemble(loaded[0], loaded[1], loaded[2])
}

// Assemble turns built raw tables into the typed conversion inputs.
func Assemble(codes, data, split *RawTable) (core.Inputs, error) {
	in := core.Inputs{
		Codes:  make([]core.Code, 0, len(codes.Rows)),
		Events: make([]core.Event, 0, len(data.Rows)),
		Split: core.SplitTable{
			Columns: tables.SplitColumns(split.Header),
			Rows:    make([]core.SplitRow, 0, len(split.Rows)),
		},
	}

	for _, r := range codes.Rows {
		c, ok := r.(core.Code)
		if !ok {
			return core.Inputs{}, fmt.Errorf("%s: unexpected row type %T", codes.Path, r)
		}
		in.Codes = append(in.Codes, c)
	}
	for _, r := range data.Rows {
		e, ok := r.(core.Event)
		if !ok {
			return core.Inputs{}, fmt.Errorf("%s: unexpected row type %T", data.Path, r)
		}
		in.Events = append(in.Events, e)
	}
	for _, r := range split.Rows {
		s, ok := r.(core.SplitRow)
		if !ok {
			return core.Inputs{}, fmt.Errorf("%s: unexpected row type %T", split.Path, r)
		}
		in.Split.Rows = append(in.Split.Rows, s)
	}

	return in, nil
}
