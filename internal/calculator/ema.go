package calculator

import "errors"

// EMASeries computes the exponential moving average over closes, one value per
// bar, with smoothing factor alpha = 2/(span+1).
//
// Seeding: the value at index span-1 is the simple average of the first `span`
// closes; earlier indices are undefined. This seeding is part of the contract
// and pinned by tests.
func EMASeries(closes []float64, span int) ([]Value, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	out := make([]Value, len(closes))
	if len(closes) < span {
		return out, nil // all undefined
	}

	sum := 0.0
	for i := 0; i < span; i++ {
		sum += closes[i]
	}
	ema := sum / float64(span)
	out[span-1] = Defined(ema)

	// Incremental form: exact for flat input (close == ema leaves the
	// average untouched), unlike alpha*close + (1-alpha)*ema.
	alpha := 2.0 / float64(span+1)
	for i := span; i < len(closes); i++ {
		ema += alpha * (closes[i] - ema)
		out[i] = Defined(ema)
	}
	return out, nil
}

// CalculateSMA computes the simple moving average of the most recent `period`
// closes.
func CalculateSMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), nil
}
