package core

// Dataset keys, in the order the dashboard presents them.
const (
	KeyShips          = "ships"
	KeyCabins         = "cabins"
	KeyExcursions     = "excursions"
	KeyPorts          = "ports"
	KeyVoyageProducts = "voyage_products"
	KeyLocales        = "locales"
	KeyBookings       = "bookings"
)

// Column contract between the input files and the aggregator. The files
// may carry any other columns; these must exist.
const (
	ColShipCode       = "brm_code"               // ships: ship key
	ColShipName       = "ship_name"              // ships: display name
	ColShipHasContent = "has_contentful_content" // ships: content flag
	ColCabinShipCode  = "ship_brm_code"          // cabins: reference to ships.brm_code
	ColCabinCategory  = "cabin_category"         // cabins
	ColExcursionType  = "type"                   // excursions
	ColVoyageCategory = "category"               // voyage products
)

// ColBookingID keys the page's booking lookup. The page degrades to an
// empty lookup when bookings lack it, so it is not required.
const ColBookingID = "booking_id"

// ContentSentinel is the literal the ships file uses for a true content
// flag. It is compared as text, never parsed as a boolean.
const ContentSentinel = "True"

// DefaultRegistry returns the seven datasets the dashboard is built from.
func DefaultRegistry() *Registry {
	return NewRegistry().MustRegister(
		Definition{
			Key:             KeyShips,
			File:            "ships.csv",
			Label:           "Ships",
			RequiredColumns: []string{ColShipCode, ColShipName, ColShipHasContent},
		},
		Definition{
			Key:             KeyCabins,
			File:            "cabins.csv",
			Label:           "Cabins",
			RequiredColumns: []string{ColCabinShipCode, ColCabinCategory},
		},
		Definition{
			Key:             KeyExcursions,
			File:            "excursions.csv",
			Label:           "Excursions",
			RequiredColumns: []string{ColExcursionType},
			FilterColumn:    ColExcursionType,
		},
		Definition{
			Key:   KeyPorts,
			File:  "ports.csv",
			Label: "Ports",
		},
		Definition{
			Key:             KeyVoyageProducts,
			File:            "voyage_products.csv",
			Label:           "Voyage Products",
			Section:         "voyage-products",
			RequiredColumns: []string{ColVoyageCategory},
			FilterColumn:    ColVoyageCategory,
		},
		Definition{
			Key:   KeyLocales,
			File:  "locales.csv",
			Label: "Locales",
		},
		Definition{
			Key:   KeyBookings,
			File:  "bookings.csv",
			Label: "Bookings",
		},
	)
}
