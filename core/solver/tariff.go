package solver

// Time-of-use price levels per kWh.
const (
	PeakPrice    = 8.5
	MidPrice     = 6.5
	OffPeakPrice = 4.5
)

// DefaultTariff builds an hourly time-of-use price vector. Peak pricing
// applies during 06:00-09:00 and 18:00-22:00, mid pricing during 09:00-18:00
// and off-peak otherwise. Horizons beyond 24 hours repeat the daily pattern.
func DefaultTariff(hours int) []float64 {
	tariff := make([]float64, hours)
	for h := 0; h < hours; h++ {
		hod := h % 24
		switch {
		case (hod >= 6 && hod < 9) || (hod >= 18 && hod < 22):
			tariff[h] = PeakPrice
		case hod >= 9 && hod < 18:
			tariff[h] = MidPrice
		default:
			tariff[h] = OffPeakPrice
		}
	}
	return tariff
}

// padForecast extends a forecast to the target length by repeating its last
// element, or truncates it when too long. Tail-hour accuracy is silently
// distorted by the padding; this is a documented simplification of the
// rolling-horizon model.
func padForecast(forecast []float64, target int) []float64 {
	if len(forecast) >= target {
		return forecast[:target]
	}
	padded := make([]float64, target)
	copy(padded, forecast)
	last := forecast[len(forecast)-1]
	for i := len(forecast); i < target; i++ {
		padded[i] = last
	}
	return padded
}
