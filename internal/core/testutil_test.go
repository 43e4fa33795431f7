package core

import (
	"os"
	"path/filepath"
	"testing"
)

// fixtureFiles is a minimal, consistent set of all seven datasets.
var fixtureFiles = map[string]string{
	"ships.csv": "brm_code,ship_name,has_contentful_content,slug\n" +
		"S1,Alpha,True,alpha\n" +
		"S2,Beta,False,beta\n",
	"cabins.csv": "ship_brm_code,cabin_code,cabin_category\n" +
		"S1,K1,Balcony\n" +
		"S1,K2,Suite\n" +
		"S2,K1,Balcony\n",
	"excursions.csv": "name,type\n" +
		"Husky ride,Active\n" +
		"Museum,Culture\n" +
		"Kayak,Active\n" +
		"Unknown,\n",
	"ports.csv":           "port_code,port_name\nBGO,Bergen\n",
	"voyage_products.csv": "product_code,category,title\nP1,Expedition,North\nP2,,South\n",
	"locales.csv":         "code,name\nen,English\nno,Norsk\n",
	"bookings.csv":        "booking_id,ship_code,cabin_category\nB1,S1,K1\n",
}

// writeFixtures writes files into a fresh temp dir and returns its path.
// Overrides replace fixture files; names in omit are not written.
func writeFixtures(t *testing.T, overrides map[string]string, omit ...string) string {
	t.Helper()

	dir := t.TempDir()
	skip := make(map[string]bool, len(omit))
	for _, name := range omit {
		skip[name] = true
	}

	files := make(map[string]string, len(fixtureFiles))
	for name, content := range fixtureFiles {
		files[name] = content
	}
	for name, content := range overrides {
		files[name] = content
	}

	for name, content := range files {
		if skip[name] {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}
