// Package cost implements the EV vs gas trip cost comparison. It is pure
// unit arithmetic over the great-circle trip distance; there is no search
// or iteration here.
package cost

import (
	"fmt"

	"wayfinder.openmobility.org/internal/geo"
	"wayfinder.openmobility.org/internal/models"
	"wayfinder.openmobility.org/internal/utils"
)

const (
	// Default market prices, overridable per service instance.
	DefaultElectricityPricePerKWH = 0.15 // USD per kWh
	DefaultGasPricePerLiter       = 1.20 // USD per liter

	// Typical consumption figures used for the alternative-vehicle side
	// of the comparison.
	typicalGasConsumptionPer100KM = 7.0  // liters per 100 km
	typicalEVConsumptionPer100KM  = 15.0 // kWh per 100 km
)

// Comparison describes the cost of running the alternative vehicle type
// over the same trip.
type Comparison struct {
	AlternativeVehicle    string  `json:"alternative_vehicle"`
	ConsumptionPer100KM   float64 `json:"alternative_consumption_per_100km"`
	Unit                  string  `json:"alternative_unit"`
	EnergyRequired        float64 `json:"alternative_energy_required"`
	CostUSD               float64 `json:"alternative_cost_usd"`
	SavingsUSD            float64 `json:"savings_usd,omitempty"`
	SavingsPercentage     float64 `json:"savings_percentage,omitempty"`
	ExtraCostUSD          float64 `json:"extra_cost_usd,omitempty"`
	ExtraCostPercentage   float64 `json:"extra_cost_percentage,omitempty"`
}

// Estimate is the full result of an energy cost comparison for one trip.
type Estimate struct {
	Origin              models.Coordinate `json:"origin"`
	Destination         models.Coordinate `json:"destination"`
	TotalDistanceKM     float64           `json:"total_distance_km"`
	VehicleType         string            `json:"vehicle_type"`
	ConsumptionPer100KM float64           `json:"consumption_per_100km"`
	Unit                string            `json:"unit"`
	EnergyRequired      float64           `json:"energy_required"`
	PricePerUnitUSD     float64           `json:"price_per_unit_usd"`
	CostEstimateUSD     float64           `json:"cost_estimate_usd"`
	Comparison          Comparison        `json:"comparison"`
}

// CostService computes trip energy costs with configurable unit prices.
type CostService struct {
	ElectricityPricePerKWH float64
	GasPricePerLiter       float64
}

func NewCostService() *CostService {
	return &CostService{
		ElectricityPricePerKWH: DefaultElectricityPricePerKWH,
		GasPricePerLiter:       DefaultGasPricePerLiter,
	}
}

// CompareEnergyCosts estimates what the trip between origin and dest costs
// for the given vehicle type and consumption rate, and contrasts it with a
// typical vehicle of the other type. vehicleType must be "ev" or "gas".
func (cs *CostService) CompareEnergyCosts(origin, dest models.Coordinate, vehicleType string, consumptionPer100KM float64) (*Estimate, error) {
	if vehicleType != "ev" && vehicleType != "gas" {
		return nil, fmt.Errorf("vehicle_type must be 'ev' or 'gas', got %q", vehicleType)
	}

	distance := geo.Distance(origin, dest)
	energyRequired := (distance / 100) * consumptionPer100KM

	est := &Estimate{
		Origin:              origin,
		Destination:         dest,
		TotalDistanceKM:     utils.Round2(distance),
		VehicleType:         vehicleType,
		ConsumptionPer100KM: consumptionPer100KM,
		EnergyRequired:      utils.Round2(energyRequired),
	}

	if vehicleType == "ev" {
		cost := energyRequired * cs.ElectricityPricePerKWH
		est.Unit = "kWh"
		est.PricePerUnitUSD = cs.ElectricityPricePerKWH
		est.CostEstimateUSD = utils.Round2(cost)

		gasRequired := (distance / 100) * typicalGasConsumptionPer100KM
		gasCost := gasRequired * cs.GasPricePerLiter

		est.Comparison = Comparison{
			AlternativeVehicle:  "gas",
			ConsumptionPer100KM: typicalGasConsumptionPer100KM,
			Unit:                "liters",
			EnergyRequired:      utils.Round2(gasRequired),
			CostUSD:             utils.Round2(gasCost),
			SavingsUSD:          utils.Round2(gasCost - cost),
		}
		if gasCost > 0 {
			est.Comparison.SavingsPercentage = utils.Round1((gasCost - cost) / gasCost * 100)
		}
		return est, nil
	}

	cost := energyRequired * cs.GasPricePerLiter
	est.Unit = "liters"
	est.PricePerUnitUSD = cs.GasPricePerLiter
	est.CostEstimateUSD = utils.Round2(cost)

	evRequired := (distance / 100) * typicalEVConsumptionPer100KM
	evCost := evRequired * cs.ElectricityPricePerKWH

	est.Comparison = Comparison{
		AlternativeVehicle:  "ev",
		ConsumptionPer100KM: typicalEVConsumptionPer100KM,
		Unit:                "kWh",
		EnergyRequired:      utils.Round2(evRequired),
		CostUSD:             utils.Round2(evCost),
		ExtraCostUSD:        utils.Round2(cost - evCost),
	}
	if evCost > 0 {
		est.Comparison.ExtraCostPercentage = utils.Round1((cost - evCost) / evCost * 100)
	}
	return est, nil
}
