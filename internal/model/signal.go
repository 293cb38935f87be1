package model

// EMAStatus is the informational status record derived from the last bar.
type EMAStatus struct {
	Close    float64
	FastSpan int
	SlowSpan int
	FastEMA  float64
	SlowEMA  float64
	Diff     float64 // FastEMA - SlowEMA
	RSI      float64
	Trend    string // "Bullish" or "Bearish"; diff == 0 resolves to "Bearish"
}

// SignalSet holds the four signal flags evaluated on the latest bar.
// Presentation order is fixed: bull cross, bear cross, bull divergence,
// bear divergence.
type SignalSet struct {
	EMABullCross      bool
	EMABearCross      bool
	BullishDivergence bool
	BearishDivergence bool

	Status *EMAStatus
}

// Any reports whether at least one signal fired.
func (s *SignalSet) Any() bool {
	return s.EMABullCross || s.EMABearCross || s.BullishDivergence || s.BearishDivergence
}

// TrendSummary is the daily trend-bias report.
type TrendSummary struct {
	Close    float64
	FastSpan int
	SlowSpan int
	FastEMA  float64
	SlowEMA  float64
	Diff     float64
	Bias     string // "Bullish Bias" or "Bearish Bias"
}
