package models

// ChargingStopInfo annotates a drive leg that ends at a charging station.
// ChargingTimeHours uses the fixed estimate (range_km * 0.15) / max_power_kw;
// this is the historical contract of the planner, not a physical model.
type ChargingStopInfo struct {
	StationID         string     `json:"station_id"`
	StationName       string     `json:"station_name"`
	Address           string     `json:"address"`
	Location          Coordinate `json:"location"`
	ChargingTimeHours float64    `json:"estimated_charging_time_hours"`
	Connectors        []string   `json:"available_connectors"`
	MaxPowerKW        float64    `json:"max_power_kw"`
	PricingPerKWH     float64    `json:"pricing_per_kwh"`
}

// DriveLeg is one contiguous driving segment of a charging route plan.
// ChargingStop is nil on the final leg into the destination.
type DriveLeg struct {
	Leg              int               `json:"leg"`
	From             string            `json:"from"`
	To               string            `json:"to"`
	DistanceKM       float64           `json:"distance_km"`
	ChargingStop     *ChargingStopInfo `json:"charging_stop"`
	DrivingTimeHours float64           `json:"estimated_driving_time_hours"`
}

// ChargingPlan is the result of a range-constrained route plan.
// TotalTimeHours includes charging time; TotalDistanceKM does not change
// with charging stops, it is the great-circle origin to destination distance.
type ChargingPlan struct {
	Origin              Coordinate `json:"origin"`
	Destination         Coordinate `json:"destination"`
	TotalDistanceKM     float64    `json:"total_distance_km"`
	ChargingStopsNeeded int        `json:"charging_stops_needed"`
	Legs                []DriveLeg `json:"route_plan"`
	TotalTimeHours      float64    `json:"estimated_total_time_hours"`
}

// TransitLeg is one segment of a multi-modal plan: a walk leg or a single
// transit leg between the two anchor stops.
type TransitLeg struct {
	Segment           int     `json:"segment"`
	Type              string  `json:"type"`
	From              string  `json:"from"`
	To                string  `json:"to"`
	DistanceKM        float64 `json:"distance_km"`
	Route             string  `json:"route,omitempty"`
	WaitTimeMinutes   float64 `json:"wait_time_minutes,omitempty"`
	TravelTimeMinutes float64 `json:"travel_time_minutes,omitempty"`
	TimeMinutes       float64 `json:"estimated_time_minutes"`
	Instructions      string  `json:"instructions"`
}

// TransitSummary counts plan segments by kind.
type TransitSummary struct {
	TotalSegments          int     `json:"total_segments"`
	WalkingSegments        int     `json:"walking_segments"`
	TransitSegments        int     `json:"transit_segments"`
	TotalWalkingDistanceKM float64 `json:"total_walking_distance_km"`
}

// TransitPlan is the result of a multi-modal (walk/transit/walk) plan.
// TotalDistanceKM is the great-circle origin to destination distance,
// independent of the leg distances.
type TransitPlan struct {
	Origin           Coordinate     `json:"origin"`
	Destination      Coordinate     `json:"destination"`
	TotalDistanceKM  float64        `json:"total_distance_km"`
	Legs             []TransitLeg   `json:"route_segments"`
	TotalTimeMinutes float64        `json:"estimated_total_time_minutes"`
	Transfers        int            `json:"transfers"`
	Summary          TransitSummary `json:"summary"`
}
