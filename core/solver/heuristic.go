package solver

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Battery operating assumptions for the greedy rule.
const (
	// maxCRate limits charge and discharge power to a fraction of capacity
	// per hour.
	maxCRate = 0.5
	// roundTripEfficiency is the fraction of energy retained over a full
	// charge/discharge cycle.
	roundTripEfficiency = 0.95
	// chargeCeilingPct is the soft SOC ceiling above which surplus is
	// exported instead of stored.
	chargeCeilingPct = 90.0
	// dischargeFloorPct is the soft SOC floor protected during discharge.
	dischargeFloorPct = 20.0
	// peakTariffFactor gates discharge to hours priced above this multiple
	// of the mean tariff.
	peakTariffFactor = 1.2
)

// solveHeuristic applies the greedy hour-by-hour rule. Decisions are strictly
// sequential: SOC is carried forward and there is no lookahead beyond the
// current hour. Inputs must already be padded to the horizon.
func solveHeuristic(solar, load []float64, capacityKWh, initialSOC float64, tariff []float64, horizon int) Result {
	battery := make([]float64, 0, horizon)
	grid := make([]float64, 0, horizon)

	soc := initialSOC
	totalCost := 0.0
	baselineCost := 0.0

	maxChargeRate := capacityKWh * maxCRate
	maxDischargeRate := capacityKWh * maxCRate
	meanTariff := stat.Mean(tariff, nil)

	for hour := 0; hour < horizon; hour++ {
		net := solar[hour] - load[hour]

		// Baseline bills every deficit hour with no battery involved.
		baselineCost += math.Max(0, -net) * tariff[hour]

		if net > 0 {
			if soc < chargeCeilingPct {
				charge := math.Min(net, math.Min(maxChargeRate, (chargeCeilingPct-soc)/100*capacityKWh))
				battery = append(battery, charge)
				grid = append(grid, net-charge)
				soc += (charge / capacityKWh) * 100 * roundTripEfficiency
			} else {
				// Ceiling reached: export the whole surplus.
				battery = append(battery, 0)
				grid = append(grid, net)
			}
			continue
		}

		deficit := -net
		if tariff[hour] > meanTariff*peakTariffFactor && soc > dischargeFloorPct {
			discharge := math.Min(deficit, math.Min(maxDischargeRate, (soc-dischargeFloorPct)/100*capacityKWh))
			battery = append(battery, -discharge)
			grid = append(grid, deficit-discharge)
			soc -= (discharge / capacityKWh) * 100 / roundTripEfficiency
			totalCost += (deficit - discharge) * tariff[hour]
		} else {
			battery = append(battery, 0)
			grid = append(grid, deficit)
			totalCost += deficit * tariff[hour]
		}
	}

	savings := 0.0
	if baselineCost > 0 {
		savings = (baselineCost - totalCost) / baselineCost * 100
	}

	return Result{
		Success:         true,
		ObjectiveValue:  totalCost,
		BatterySchedule: battery,
		GridSchedule:    grid,
		SolveTime:       0, // overwritten by the bridge
		Solver:          Heuristic,
		Iterations:      horizon,
		CostSavingsPct:  savings,
	}
}

// ProjectSOC replays a battery schedule and returns the hourly SOC trace
// using the same efficiency arithmetic as the heuristic. Entry h is the SOC
// after hour h has been applied. The trace stays within [0, 100] for any
// schedule the heuristic emits.
func ProjectSOC(batterySchedule []float64, capacityKWh, initialSOC float64) []float64 {
	trace := make([]float64, len(batterySchedule))
	soc := initialSOC
	for h, p := range batterySchedule {
		if p >= 0 {
			soc += (p / capacityKWh) * 100 * roundTripEfficiency
		} else {
			soc -= (-p / capacityKWh) * 100 / roundTripEfficiency
		}
		if soc < 0 {
			soc = 0
		}
		if soc > 100 {
			soc = 100
		}
		trace[h] = soc
	}
	return trace
}
