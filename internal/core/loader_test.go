package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/JonMunkholm/ContentExplorer/internal/logging"
	"github.com/google/go-cmp/cmp"
)

func TestReadCSV(t *testing.T) {
	def := Definition{Key: "ships", File: "ships.csv"}
	input := "brm_code,ship_name,note\n" +
		"S1,Alpha,\"quoted, with comma\"\n" +
		"\n" +
		"S2,Beta,plain\n"

	ds, err := ReadCSV(context.Background(), def, strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if diff := cmp.Diff([]string{"brm_code", "ship_name", "note"}, ds.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	for i, r := range ds.Records() {
		if diff := cmp.Diff(ds.Columns(), r.Columns()); diff != "" {
			t.Errorf("record %d key set mismatch (-want +got):\n%s", i, diff)
		}
	}
	if got := ds.Records()[0].Value("note"); got != "quoted, with comma" {
		t.Errorf("note = %q", got)
	}
	if got := ds.Records()[1].Value("brm_code"); got != "S2" {
		t.Errorf("second record brm_code = %q, want S2", got)
	}
	if ds.BytesRead() != int64(len(input)) {
		t.Errorf("BytesRead() = %d, want %d", ds.BytesRead(), len(input))
	}
}

func TestReadCSV_RowCountMatchesDataRows(t *testing.T) {
	for name, content := range fixtureFiles {
		t.Run(name, func(t *testing.T) {
			ds, err := ReadCSV(context.Background(), Definition{Key: name, File: name}, strings.NewReader(content))
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
			if ds.Len() != len(lines)-1 {
				t.Errorf("Len() = %d, want %d", ds.Len(), len(lines)-1)
			}
		})
	}
}

func TestReadCSV_NoTypeCoercion(t *testing.T) {
	input := "n,flag,date\n007,True,2024-01-02\n"
	ds, err := ReadCSV(context.Background(), Definition{File: "x.csv"}, strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	want := map[string]string{"n": "007", "flag": "True", "date": "2024-01-02"}
	if diff := cmp.Diff(want, ds.Records()[0].Map()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV_MalformedRowsPassThrough(t *testing.T) {
	input := "a,b,c\n1\n1,2,3,4\n"
	ds, err := ReadCSV(context.Background(), Definition{File: "x.csv"}, strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if _, ok := ds.Records()[0].Get("b"); ok {
		t.Error("short row should have no value for b")
	}
	if got := ds.Records()[1].Value("c"); got != "3" {
		t.Errorf("long row c = %q, want 3", got)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		def      Definition
		input    string
		sentinel error
		contains string
	}{
		{
			name:     "empty file",
			def:      Definition{File: "ships.csv"},
			input:    "",
			sentinel: ErrEmptyFile,
		},
		{
			name:     "BOM only",
			def:      Definition{File: "ships.csv"},
			input:    "\xEF\xBB\xBF",
			sentinel: ErrEmptyFile,
		},
		{
			name:     "missing contract columns",
			def:      Definition{File: "ships.csv", RequiredColumns: []string{"brm_code", "ship_name"}},
			input:    "code,name\nS1,Alpha\n",
			sentinel: ErrMissingColumns,
			contains: "brm_code, ship_name",
		},
		{
			name:     "invalid UTF-8",
			def:      Definition{File: "ports.csv"},
			input:    "port_name\nBerg\xffen\n",
			sentinel: ErrInvalidUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), tt.def, strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadCSV() expected error")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("err = %v, want %v", err, tt.sentinel)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("err = %v, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestReadCSV_ReadFailure(t *testing.T) {
	src := io.MultiReader(
		strings.NewReader("port_name\nBergen\n"),
		iotest.ErrReader(errors.New("disk gone")),
	)

	_, err := ReadCSV(context.Background(), Definition{File: "ports.csv"}, src)
	if err == nil || !strings.Contains(err.Error(), "disk gone") {
		t.Fatalf("err = %v, want the read failure", err)
	}
	if !strings.Contains(err.Error(), "ports.csv") {
		t.Errorf("err = %v, want it to name the file", err)
	}
}

func TestReadCSV_BOMStrippedFromHeader(t *testing.T) {
	input := "\xEF\xBB\xBFbrm_code,ship_name,has_contentful_content\nS1,Alpha,True\n"
	def := Definition{File: "ships.csv", RequiredColumns: []string{ColShipCode}}

	ds, err := ReadCSV(context.Background(), def, strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if got := ds.Records()[0].Value(ColShipCode); got != "S1" {
		t.Errorf("brm_code = %q, want S1", got)
	}
}

func TestReadCSV_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadCSV(ctx, Definition{File: "x.csv"}, strings.NewReader("a\n1\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := writeFixtures(t, nil)

	c, err := LoadAll(context.Background(), dir, DefaultRegistry())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	var keys []string
	for _, ds := range c.All() {
		keys = append(keys, ds.Key())
	}
	if diff := cmp.Diff(DefaultRegistry().Keys(), keys); diff != "" {
		t.Errorf("dataset order mismatch (-want +got):\n%s", diff)
	}
	if c.Get(KeyCabins).Len() != 3 {
		t.Errorf("cabins Len() = %d, want 3", c.Get(KeyCabins).Len())
	}
}

func TestLoadAll_LogsEachDataset(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var logs bytes.Buffer
	logging.Setup(&logs, "debug", "json")

	dir := writeFixtures(t, nil)
	if _, err := LoadAll(context.Background(), dir, DefaultRegistry()); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	out := logs.String()
	if got := strings.Count(out, `"msg":"dataset loaded"`); got != len(DefaultRegistry().All()) {
		t.Errorf("dataset loaded entries = %d, want %d\n%s", got, len(DefaultRegistry().All()), out)
	}
	for _, key := range DefaultRegistry().Keys() {
		if !strings.Contains(out, `"dataset":"`+key+`"`) {
			t.Errorf("no log entry for dataset %q", key)
		}
	}
}

func TestLoadAll_MissingFileIsFatal(t *testing.T) {
	dir := writeFixtures(t, nil, "bookings.csv")

	c, err := LoadAll(context.Background(), dir, DefaultRegistry())
	if err == nil {
		t.Fatal("LoadAll() expected error for missing file")
	}
	if c != nil {
		t.Error("LoadAll() must not return a partial collection")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "bookings") {
		t.Errorf("err = %v, want it to name the dataset", err)
	}
}

func TestLoadAll_EmptyDirectory(t *testing.T) {
	_, err := LoadAll(context.Background(), t.TempDir(), DefaultRegistry())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLoadAll_ContractViolationIsFatal(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"cabins.csv": "ship_code,cabin_category\nS1,Balcony\n",
	})

	_, err := LoadAll(context.Background(), dir, DefaultRegistry())
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("err = %v, want ErrMissingColumns", err)
	}
	if !strings.Contains(err.Error(), ColCabinShipCode) {
		t.Errorf("err = %v, want it to name %s", err, ColCabinShipCode)
	}
}
