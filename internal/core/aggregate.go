package core

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Stats is the fixed summary shown at the top of the dashboard.
type Stats struct {
	Ships          int `json:"ships"`
	Cabins         int `json:"cabins"`
	Excursions     int `json:"excursions"`
	Ports          int `json:"ports"`
	VoyageProducts int `json:"voyage_products"`
	Locales        int `json:"locales"`
	Bookings       int `json:"bookings"`

	CabinCategories  int               `json:"cabin_categories"`
	ShipsWithContent int               `json:"ships_with_content"`
	ExcursionTypes   []string          `json:"excursion_types"`
	VoyageCategories []string          `json:"voyage_categories"`
	ShipsByCode      map[string]string `json:"ships_by_code"`
}

// Summary is everything derived from the datasets.
type Summary struct {
	Stats        Stats
	CabinsByShip *Grouping
}

// Aggregate derives the summary from the loaded datasets. It is a pure
// function of its input.
func Aggregate(c *Collection) Summary {
	ships := c.Get(KeyShips).Records()
	cabins := c.Get(KeyCabins).Records()

	stats := Stats{
		Ships:          c.Get(KeyShips).Len(),
		Cabins:         c.Get(KeyCabins).Len(),
		Excursions:     c.Get(KeyExcursions).Len(),
		Ports:          c.Get(KeyPorts).Len(),
		VoyageProducts: c.Get(KeyVoyageProducts).Len(),
		Locales:        c.Get(KeyLocales).Len(),
		Bookings:       c.Get(KeyBookings).Len(),

		CabinCategories:  CountDistinct(cabins, ColCabinCategory),
		ShipsWithContent: CountEqual(ships, ColShipHasContent, ContentSentinel),
		ExcursionTypes:   SortedDistinct(c.Get(KeyExcursions).Records(), ColExcursionType),
		VoyageCategories: SortedDistinct(c.Get(KeyVoyageProducts).Records(), ColVoyageCategory),
		ShipsByCode:      Lookup(ships, ColShipCode, ColShipName),
	}

	return Summary{
		Stats:        stats,
		CabinsByShip: GroupBy(cabins, ColCabinShipCode),
	}
}

// CountDistinct returns the number of distinct non-empty values of col.
func CountDistinct(records []Record, col string) int {
	return len(distinct(records, col))
}

// CountEqual returns the number of records whose col is exactly sentinel.
func CountEqual(records []Record, col, sentinel string) int {
	n := 0
	for _, r := range records {
		if v, ok := r.Get(col); ok && v == sentinel {
			n++
		}
	}
	return n
}

// SortedDistinct returns the distinct non-empty values of col in ascending
// byte order. The result is never nil.
func SortedDistinct(records []Record, col string) []string {
	set := distinct(records, col)
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func distinct(records []Record, col string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range records {
		if v := r.Value(col); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

// Lookup maps each record's keyCol to its valCol. Records are visited in
// file order, so the last occurrence of a key wins. Empty keys are kept.
func Lookup(records []Record, keyCol, valCol string) map[string]string {
	m := make(map[string]string, len(records))
	for _, r := range records {
		m[r.Value(keyCol)] = r.Value(valCol)
	}
	return m
}

// Grouping buckets records by a key column. Keys keep first-occurrence
// order and each bucket keeps file order.
type Grouping struct {
	keys   []string
	groups map[string][]Record
}

// GroupBy buckets records by col. Every record lands in exactly one group;
// records without a value for col share the "" group.
func GroupBy(records []Record, col string) *Grouping {
	g := &Grouping{groups: make(map[string][]Record)}
	for _, r := range records {
		key := r.Value(col)
		if _, seen := g.groups[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.groups[key] = append(g.groups[key], r)
	}
	return g
}

// Keys returns the group keys in first-occurrence order.
func (g *Grouping) Keys() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.keys...)
}

// Group returns the records for key, or nil when no record has that key.
func (g *Grouping) Group(key string) []Record {
	if g == nil {
		return nil
	}
	return g.groups[key]
}

// Len returns the number of groups.
func (g *Grouping) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Size returns the total number of grouped records.
func (g *Grouping) Size() int {
	n := 0
	for _, key := range g.Keys() {
		n += len(g.groups[key])
	}
	return n
}

// MarshalJSON encodes the grouping as an object in key order.
func (g *Grouping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g.groups[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
