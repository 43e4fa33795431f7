package templates

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/ContentExplorer/internal/core"
	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
)

// dataset parses inline CSV into a dataset registered under def.
func dataset(t *testing.T, def core.Definition, input string) *core.Dataset {
	t.Helper()

	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", def.Key, err)
	}

	h := core.NewHeader(rows[0])
	records := make([]core.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, core.NewRecord(h, row))
	}
	return core.NewDataset(def, h, records)
}

func testSnapshot(t *testing.T) *core.Snapshot {
	t.Helper()

	reg := core.DefaultRegistry()
	def := func(key string) core.Definition {
		d, ok := reg.Get(key)
		if !ok {
			t.Fatalf("no definition for %s", key)
		}
		return d
	}

	c := core.NewCollection(
		dataset(t, def(core.KeyShips), "brm_code,ship_name,has_contentful_content\nS1,Alpha <One>,True\nS2,Beta,False\n"),
		dataset(t, def(core.KeyCabins), "ship_brm_code,cabin_code,cabin_category\nS1,K1,Balcony\nS1,K2,Suite\nXX,K9,Inside\n"),
		dataset(t, def(core.KeyExcursions), "name,type\nHusky,Active\nMuseum,Culture\n"),
		dataset(t, def(core.KeyPorts), "port_code,port_name,slug\nBGO,Bergen\n"),
		dataset(t, def(core.KeyVoyageProducts), "product_code,category\nP1,Expedition\n"),
		dataset(t, def(core.KeyLocales), "code\n"),
		dataset(t, def(core.KeyBookings), "booking_id,ship_code\nB1,S1\nB2,S2\nB1,S1\n"),
	)

	snap, err := core.NewSnapshot(c)
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	return snap
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestDashboard_ContainsEverySection(t *testing.T) {
	snap := testSnapshot(t)
	page := render(t, Dashboard(snap))

	want := []string{
		"<title>" + PageTitle + "</title>",
		`id="ships"`,
		`id="cabins"`,
		`id="excursions"`,
		`id="ports"`,
		`id="voyage-products"`,
		`id="locales"`,
		`id="bookings"`,
		`id="search-ships"`,
		`id="filter-excursions"`,
		`id="filter-voyage-products"`,
		`id="lookup-booking-id"`,
		`id="lookup-results"`,
		snap.ID.String(),
	}
	for _, s := range want {
		if !strings.Contains(page, s) {
			t.Errorf("page missing %q", s)
		}
	}
}

func TestDashboard_EmbedsDatasetJSON(t *testing.T) {
	snap := testSnapshot(t)
	page := render(t, Dashboard(snap))

	for _, ds := range snap.Datasets().All() {
		block := `<script type="application/json" id="data-` + ds.Key() + `">` + string(snap.JSON(ds.Key())) + `</script>`
		if !strings.Contains(page, block) {
			t.Errorf("page missing data block for %s", ds.Key())
		}
	}
	if !strings.Contains(page, `id="data-locales">[]</script>`) {
		t.Error("empty dataset should embed []")
	}
}

func TestDashboard_EscapesCellText(t *testing.T) {
	page := render(t, Dashboard(testSnapshot(t)))

	if strings.Contains(page, "Alpha <One>") {
		t.Error("cell text must be escaped")
	}
	if !strings.Contains(page, "Alpha &lt;One&gt;") {
		t.Error("escaped ship name not found")
	}
}

func TestDatasetSection_FilterColumn(t *testing.T) {
	def := core.Definition{Key: "excursions", Section: "excursions", Label: "Excursions", FilterColumn: "type"}
	ds := dataset(t, def, "name,type\nHusky,Active\nMuseum\n")

	html := render(t, DatasetSection(ds, []string{"Active"}))

	for _, s := range []string{
		`<tr data-filter="Active"><td>Husky</td><td>Active</td></tr>`,
		`<tr data-filter=""><td>Museum</td><td class="missing"></td></tr>`,
		`<option value="Active">Active</option>`,
		`<span class="count" id="count-excursions">2</span>`,
	} {
		if !strings.Contains(html, s) {
			t.Errorf("section missing %q\n%s", s, html)
		}
	}
}

func TestDatasetSection_NoFilterWithoutOptions(t *testing.T) {
	def := core.Definition{Key: "ports", Section: "ports", Label: "Ports"}
	ds := dataset(t, def, "port_code\nBGO\n")

	html := render(t, DatasetSection(ds, nil))
	if strings.Contains(html, "<select") {
		t.Error("section without a filter column should not render a select")
	}
	if strings.Contains(html, "data-filter") {
		t.Error("rows should not carry data-filter")
	}
}

func TestDatasetSection_EmptyDataset(t *testing.T) {
	def := core.Definition{Key: "locales", Section: "locales", Label: "Locales"}
	ds := dataset(t, def, "code,name\n")

	html := render(t, DatasetSection(ds, nil))
	if !strings.Contains(html, `<th>code</th><th>name</th>`) {
		t.Error("header columns should render for an empty dataset")
	}
	if !strings.Contains(html, `colspan="2">No rows`) {
		t.Error("empty dataset should render a placeholder row")
	}
}

func TestCabinsByShip(t *testing.T) {
	snap := testSnapshot(t)
	html := render(t, CabinsByShip(snap.Dataset(core.KeyCabins), snap.Summary().CabinsByShip, snap.Stats().ShipsByCode))

	for _, s := range []string{
		`<button type="button" class="ship-tab active" data-ship="all">All ships <span class="count">3</span></button>`,
		`data-ship="S1">Alpha &lt;One&gt; <span class="count">2</span>`,
		`data-ship="XX">XX <span class="count">1</span>`,
		`<div class="cabin-ship-group" data-ship="S1">`,
		`<div class="cabin-ship-group" data-ship="XX">`,
	} {
		if !strings.Contains(html, s) {
			t.Errorf("cabins section missing %q", s)
		}
	}

	if strings.Index(html, `data-ship="S1"`) > strings.Index(html, `data-ship="XX"`) {
		t.Error("ship tabs should follow first-occurrence order")
	}
}

func TestShipLabel(t *testing.T) {
	names := map[string]string{"S1": "Alpha", "S2": ""}

	tests := []struct {
		code string
		want string
	}{
		{"S1", "Alpha"},
		{"S2", "S2"},
		{"ZZ", "ZZ"},
		{"", "(no ship code)"},
	}
	for _, tt := range tests {
		if got := shipLabel(tt.code, names); got != tt.want {
			t.Errorf("shipLabel(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestQuickPicks(t *testing.T) {
	def := core.Definition{Key: "bookings"}
	ds := dataset(t, def, "booking_id,ship_code\nB1,S1\n,S1\nB2,S2\nB1,S1\nB3,S1\nB4,S2\n")

	got := quickPicks(ds.Records(), 3)
	if diff := cmp.Diff([]string{"B1", "B2", "B3"}, got); diff != "" {
		t.Errorf("quickPicks() mismatch (-want +got):\n%s", diff)
	}

	noID := dataset(t, def, "ship_code\nS1\n")
	if got := quickPicks(noID.Records(), 3); len(got) != 0 {
		t.Errorf("quickPicks() without booking_id = %v, want none", got)
	}
}

func TestBookingLookup_QuickPicks(t *testing.T) {
	snap := testSnapshot(t)
	html := render(t, BookingLookup(snap.Dataset(core.KeyBookings)))

	if n := strings.Count(html, `class="booking-pick"`); n != 2 {
		t.Errorf("booking picks = %d, want 2", n)
	}
	if !strings.Contains(html, `id="table-bookings"`) {
		t.Error("bookings table missing")
	}
}

func TestDashboard_InlinesClientScript(t *testing.T) {
	page := render(t, Dashboard(testSnapshot(t)))

	for _, s := range []string{
		"function initExpandRows()",
		"'expand-btn'",
		"'lookup-link'",
		"https://www.hurtigruten.com/en/",
		".expand-row td",
	} {
		if !strings.Contains(page, s) {
			t.Errorf("page missing %q", s)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("short write") }

func TestDashboard_WriteErrorPropagates(t *testing.T) {
	err := Dashboard(testSnapshot(t)).Render(context.Background(), failingWriter{})
	if err == nil || err.Error() != "short write" {
		t.Errorf("Render() error = %v, want short write", err)
	}
}
