// Package station provides the station directory used for autocomplete
// and bulk reference-data imports.
package station

// Station is a row in the station directory.
type Station struct {
	// Code is the stable stop identifier (NaPTAN/ATCO code).
	Code string `json:"code"`

	// Name is the public station name.
	Name string `json:"name"`

	// Locality is the town or area the station belongs to.
	Locality string `json:"locality,omitempty"`
}
