package collector

import "NiftyPulse/internal/model"

// Fetcher defines the interface for fetching intraday market data.
type Fetcher interface {
	// FetchIntradayBars returns 15-minute bars for the symbol covering the
	// most recent `days` calendar days, in ascending time order.
	FetchIntradayBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
