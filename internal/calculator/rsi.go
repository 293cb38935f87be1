package calculator

import "errors"

// RSISeries computes the Wilder-smoothed RSI over closes, one value per bar.
// The first `period` values are undefined (the smoothing needs `period` price
// changes before the first reading).
//
// Two degenerate cases are resolved deterministically: when both average gain
// and average loss are zero (flat prices) the RSI is 50, and when only the
// average loss is zero it is 100.
func RSISeries(closes []float64, period int) ([]Value, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]Value, len(closes))
	if len(closes) < period+1 {
		return out, nil // all undefined
	}

	// Initial average gain/loss over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = Defined(rsiFrom(avgGain, avgLoss))

	// Wilder smoothing for the remaining bars.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = Defined(rsiFrom(avgGain, avgLoss))
	}
	return out, nil
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50.0 // flat prices: neutral
		}
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
