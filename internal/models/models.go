package models

// Coordinate is a validated geographic point in degrees.
// Latitude is in [-90, 90] and longitude in [-180, 180]; values are
// checked at the parse boundary (see geo.ParseLatLon), never clamped.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ChargingStation represents a single EV charging station record from
// the charging stations dataset.
//
// Records are immutable once loaded; the query engine only reads them.
type ChargingStation struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Address             string             `json:"address"`
	Location            Coordinate         `json:"location"`
	ConnectorTypes      []string           `json:"connector_types"`
	PowerRatingsKW      map[string]float64 `json:"power_ratings_kw"`
	AvailableConnectors int                `json:"available_connectors"`
	TotalConnectors     int                `json:"total_connectors"`
	PricingPerKWH       float64            `json:"pricing_per_kwh"`
	Operator            string             `json:"operator"`
	IsOperational       bool               `json:"is_operational"`
}

// MaxPowerKW returns the highest rated connector power of the station,
// or 0 when the station reports no power ratings.
func (s ChargingStation) MaxPowerKW() float64 {
	var max float64
	for _, kw := range s.PowerRatingsKW {
		if kw > max {
			max = kw
		}
	}
	return max
}

// HasConnector reports whether the station supports the given connector type.
func (s ChargingStation) HasConnector(connectorType string) bool {
	for _, c := range s.ConnectorTypes {
		if c == connectorType {
			return true
		}
	}
	return false
}

// TransitStop represents a public transportation stop (bus, metro, tram)
// from the transit stops dataset.
type TransitStop struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Location       Coordinate `json:"location"`
	Address        string     `json:"address"`
	Routes         []string   `json:"routes"`
	OperatingHours string     `json:"operating_hours"`
	Facilities     []string   `json:"facilities"`
}

// POI represents a point of interest (restaurant, hospital, hotel, ...)
// from the POI dataset.
type POI struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Location Coordinate `json:"location"`
	Address  string     `json:"address"`
	Rating   float64    `json:"rating,omitempty"`
	Features []string   `json:"features,omitempty"`
	Contact  string     `json:"contact,omitempty"`
	Cuisine  string     `json:"cuisine,omitempty"`
}

// Coord methods satisfy search.Locatable so all three record kinds can go
// through the same proximity scan.

func (s ChargingStation) Coord() Coordinate { return s.Location }
func (s TransitStop) Coord() Coordinate     { return s.Location }
func (p POI) Coord() Coordinate             { return p.Location }
