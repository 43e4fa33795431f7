package core

// loader.go reads dataset files into records.
//
// Each file is a comma-separated table whose first row is the header. Cells
// are kept as raw text. Quotes are parsed leniently and rows may carry more
// or fewer cells than the header; both are input defects the loader does
// not correct. Any open, read, encoding, or header failure aborts the load.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/ContentExplorer/internal/logging"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyFile is returned for a file without a header row.
	ErrEmptyFile = errors.New("empty file: no header row")

	// ErrMissingColumns is returned when a header lacks contract columns.
	ErrMissingColumns = errors.New("missing required column")
)

// ReadCSV parses one dataset from r.
func ReadCSV(ctx context.Context, def Definition, r io.Reader) (*Dataset, error) {
	src, counter := WrapForLoading(r)

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	headerRow, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", def.File, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: invalid csv header: %w", def.File, err)
	}

	header := NewHeader(headerRow)
	if err := ValidateHeader(header, def.RequiredColumns); err != nil {
		return nil, fmt.Errorf("%s: %w", def.File, err)
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: invalid csv: %w", def.File, err)
		}
		records = append(records, NewRecord(header, row))
	}

	ds := NewDataset(def, header, records)
	ds.bytesRead = counter.BytesRead
	return ds, nil
}

// ValidateHeader checks that every required column is present.
func ValidateHeader(h *Header, required []string) error {
	var missing []string
	for _, col := range required {
		if !h.Has(col) {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// LoadFile reads dir/def.File.
func LoadFile(ctx context.Context, dir string, def Definition) (*Dataset, error) {
	path := filepath.Join(dir, def.File)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", def.Key, err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, def, f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", def.Key, err)
	}
	return ds, nil
}

// LoadAll reads every registered dataset from dir. Files are read
// concurrently; the first failure cancels the rest and no partial
// collection is returned.
func LoadAll(ctx context.Context, dir string, reg *Registry) (*Collection, error) {
	defs := reg.All()
	loaded := make([]*Dataset, len(defs))

	g, gctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		g.Go(func() error {
			ds, err := LoadFile(gctx, dir, def)
			if err != nil {
				return err
			}
			loaded[i] = ds

			logging.WithFields(gctx, "dataset", def.Key).Debug("dataset loaded",
				"file", def.File,
				"rows", ds.Len(),
				"columns", len(ds.Columns()),
				"bytes", ds.BytesRead(),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewCollection(loaded...), nil
}
