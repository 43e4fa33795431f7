package core

import (
	"bytes"
	"encoding/json"
)

// Header is the ordered column list of a dataset, taken from the first row
// of its file.
type Header struct {
	columns []string
	index   map[string]int
}

// NewHeader builds a header from column names. When a name repeats, the
// last occurrence wins for lookups.
func NewHeader(columns []string) *Header {
	h := &Header{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range h.columns {
		h.index[col] = i
	}
	return h
}

// Columns returns a copy of the column names in file order.
func (h *Header) Columns() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.columns...)
}

// Has reports whether the header defines col.
func (h *Header) Has(col string) bool {
	if h == nil {
		return false
	}
	_, ok := h.index[col]
	return ok
}

// Len returns the number of columns.
func (h *Header) Len() int {
	if h == nil {
		return 0
	}
	return len(h.columns)
}

// Record is one data row: an ordered mapping from column name to raw cell
// text. Records share their dataset's header.
type Record struct {
	header *Header
	values []string
}

// NewRecord pairs row cells with a header. Cells beyond the header are
// dropped; a short row leaves its trailing columns without a value.
func NewRecord(h *Header, cells []string) Record {
	n := len(cells)
	if n > h.Len() {
		n = h.Len()
	}
	return Record{header: h, values: append([]string(nil), cells[:n]...)}
}

// Get returns the value for col, and false when the header has no such
// column or the row was too short to carry it.
func (r Record) Get(col string) (string, bool) {
	if r.header == nil {
		return "", false
	}
	i, ok := r.header.index[col]
	if !ok || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Value returns the value for col, or "" when it has none.
func (r Record) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Columns returns the record's key set, which is always its header.
func (r Record) Columns() []string {
	return r.header.Columns()
}

// Map returns the present values keyed by column name.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for _, col := range r.header.Columns() {
		if v, ok := r.Get(col); ok {
			m[col] = v
		}
	}
	return m
}

// MarshalJSON encodes the record as an object in header order. Columns the
// row did not carry encode as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.header.Columns() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v, ok := r.Get(col)
		if !ok {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is one loaded input file.
type Dataset struct {
	Definition Definition
	header     *Header
	records    []Record
	bytesRead  int64
}

// NewDataset assembles a dataset from an already parsed header and records.
func NewDataset(def Definition, h *Header, records []Record) *Dataset {
	return &Dataset{Definition: def, header: h, records: records}
}

// Key returns the dataset's registry key.
func (d *Dataset) Key() string {
	if d == nil {
		return ""
	}
	return d.Definition.Key
}

// Columns returns the header columns in file order.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	return d.header.Columns()
}

// Records returns the rows in file order. The slice is shared; callers
// must not modify it.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// BytesRead returns the size of the source file as read.
func (d *Dataset) BytesRead() int64 {
	if d == nil {
		return 0
	}
	return d.bytesRead
}

// Collection holds every loaded dataset in registry order.
type Collection struct {
	order []*Dataset
	byKey map[string]*Dataset
}

// NewCollection indexes datasets by key, keeping the given order.
func NewCollection(datasets ...*Dataset) *Collection {
	c := &Collection{
		order: make([]*Dataset, 0, len(datasets)),
		byKey: make(map[string]*Dataset, len(datasets)),
	}
	for _, d := range datasets {
		c.order = append(c.order, d)
		c.byKey[d.Key()] = d
	}
	return c
}

// Get returns the dataset for key, or nil. Dataset accessors are nil-safe,
// so an absent dataset reads as empty.
func (c *Collection) Get(key string) *Dataset {
	if c == nil {
		return nil
	}
	return c.byKey[key]
}

// All returns the datasets in registry order.
func (c *Collection) All() []*Dataset {
	if c == nil {
		return nil
	}
	return append([]*Dataset(nil), c.order...)
}
