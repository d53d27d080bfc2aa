package location

import "fmt"

// Source identifies which resolution tier produced a Location.
type Source string

const (
	SourceExplicit      Source = "explicit"
	SourceNative        Source = "native"
	SourceNetwork       Source = "network"
	SourceConfigDefault Source = "config_default"
	SourceManual        Source = "manual"
)

// Location is the resolved place a weather lookup runs against.
// A usable Location carries a city name, a coordinate pair, or both;
// one with neither must never be returned as a success.
type Location struct {
	Lat         *float64
	Lon         *float64
	City        string
	CountryCode string
	Source      Source
}

// FromCity builds a city-name Location.
func FromCity(city string, src Source) Location {
	return Location{City: city, Source: src}
}

// FromCoordinates builds a coordinate Location.
func FromCoordinates(lat, lon float64, src Source) Location {
	return Location{Lat: &lat, Lon: &lon, Source: src}
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Usable reports whether the location can drive a weather lookup.
func (l Location) Usable() bool {
	return l.City != "" || l.HasCoordinates()
}

// String renders the location for logs and user-facing messages.
func (l Location) String() string {
	if l.HasCoordinates() {
		return fmt.Sprintf("coordinates %.2f, %.2f", *l.Lat, *l.Lon)
	}
	if l.City != "" {
		return "city " + l.City
	}
	return "unresolved location"
}
