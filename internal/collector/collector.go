package collector

import (
	"fmt"
	"log"
	"time"

	"NiftyPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntradayBars(_ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(100, days*26), nil // ~26 fifteen-minute bars per session
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	start := time.Now().Add(-time.Duration(count) * 15 * time.Minute)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0005)
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * 15 * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.002,
			Low:    p * 0.998,
			Close:  p,
			Volume: 100000,
		}
	}
	return bars
}

// Collector fetches the intraday series, preferring the primary source and
// degrading to the fallback when it fails. Each failure is reported
// explicitly; the collector never hands an empty series to its caller.
type Collector struct {
	Primary  Fetcher
	Fallback Fetcher
	Symbol   string
	Days     int
}

// NewCollector creates a Collector. Fallback may be nil.
func NewCollector(primary, fallback Fetcher, symbol string, days int) *Collector {
	return &Collector{Primary: primary, Fallback: fallback, Symbol: symbol, Days: days}
}

// Collect returns the freshest intraday series and the name of the source
// that served it.
func (c *Collector) Collect() ([]model.OHLCV, string, error) {
	bars, err := c.Primary.FetchIntradayBars(c.Symbol, c.Days)
	if err == nil && len(bars) == 0 {
		err = fmt.Errorf("%s returned no bars", c.Primary.Name())
	}
	if err == nil {
		return bars, c.Primary.Name(), nil
	}
	log.Printf("[WARN] %s fetch failed: %v", c.Primary.Name(), err)

	if c.Fallback == nil {
		return nil, "", fmt.Errorf("fetch from %s: %w", c.Primary.Name(), err)
	}
	bars, fbErr := c.Fallback.FetchIntradayBars(c.Symbol, c.Days)
	if fbErr != nil {
		return nil, "", fmt.Errorf("primary %s failed: %v; fallback %s failed: %w",
			c.Primary.Name(), err, c.Fallback.Name(), fbErr)
	}
	if len(bars) == 0 {
		return nil, "", fmt.Errorf("fallback %s returned no bars", c.Fallback.Name())
	}
	return bars, c.Fallback.Name(), nil
}
