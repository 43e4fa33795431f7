// Package templates renders the explorer page as templ components.
//
// Components live in the .templ files; run `templ generate` after editing
// them to refresh the _templ.go output.
package templates

import (
	_ "embed"
	"strconv"

	"github.com/JonMunkholm/ContentExplorer/internal/core"
	"github.com/a-h/templ"
)

//go:embed static/app.js
var appJS string

//go:embed static/style.css
var styleCSS string

// PageTitle is the document title.
const PageTitle = "Contentful Content Model Explorer"

// quickPickLimit caps the booking shortcut buttons.
const quickPickLimit = 8

// shipAll is the tab value that shows every cabin group.
const shipAll = "all"

type statCard struct {
	Label  string
	Value  int
	Detail string
}

func statCards(s core.Stats) []statCard {
	return []statCard{
		{"Ships", s.Ships, strconv.Itoa(s.ShipsWithContent) + " with content"},
		{"Cabins", s.Cabins, strconv.Itoa(s.CabinCategories) + " categories"},
		{"Excursions", s.Excursions, strconv.Itoa(len(s.ExcursionTypes)) + " types"},
		{"Ports", s.Ports, ""},
		{"Voyage Products", s.VoyageProducts, strconv.Itoa(len(s.VoyageCategories)) + " categories"},
		{"Locales", s.Locales, ""},
		{"Bookings", s.Bookings, ""},
	}
}

// filterOptions returns the dropdown values for a dataset's filter column.
func filterOptions(s core.Stats, key string) []string {
	switch key {
	case core.KeyExcursions:
		return s.ExcursionTypes
	case core.KeyVoyageProducts:
		return s.VoyageCategories
	}
	return nil
}

func hasCell(rec core.Record, col string) bool {
	_, ok := rec.Get(col)
	return ok
}

func shipLabel(code string, names map[string]string) string {
	if name := names[code]; name != "" {
		return name
	}
	if code == "" {
		return "(no ship code)"
	}
	return code
}

func shipTabClass(active bool) string {
	if active {
		return "ship-tab active"
	}
	return "ship-tab"
}

// quickPicks returns up to limit distinct non-empty booking IDs in file order.
func quickPicks(records []core.Record, limit int) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range records {
		if len(ids) == limit {
			break
		}
		id := r.Value(core.ColBookingID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// dataScript wraps pre-encoded JSON in a non-executing script element.
func dataScript(key string, data []byte) string {
	return `<script type="application/json" id="data-` + templ.EscapeString(key) + `">` + string(data) + `</script>`
}

func inlineStyle() string {
	return "<style>" + styleCSS + "</style>"
}

func inlineScript() string {
	return "<script>" + appJS + "</script>"
}
