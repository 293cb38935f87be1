package strategy

import (
	"errors"
	"fmt"
	"math"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/model"
)

// ErrInsufficientHistory reports a series too short for the configured
// indicators and lookback. Callers should skip the cycle and retry on the
// next one.
var ErrInsufficientHistory = errors.New("insufficient history")

// ErrMalformedSeries reports invalid input bars: timestamps out of order or
// non-finite closes. Callers should log and skip the cycle.
var ErrMalformedSeries = errors.New("malformed series")

// Params holds the engine's indicator windows and thresholds.
type Params struct {
	RSIPeriod int // RSI window
	FastSpan  int // fast EMA span
	SlowSpan  int // slow EMA span
	Lookback  int // divergence comparison offset in bars
	MinBars   int // minimum series length accepted by Evaluate

	// SummaryMinBars is the (smaller) minimum for TrendBias, which only
	// needs the slow EMA to be defined.
	SummaryMinBars int
}

// DefaultParams returns the reference configuration: RSI(14), EMA5/EMA21,
// 90-bar divergence lookback, 50-bar minimum series.
func DefaultParams() Params {
	return Params{
		RSIPeriod:      14,
		FastSpan:       5,
		SlowSpan:       21,
		Lookback:       90,
		MinBars:        50,
		SummaryMinBars: 21,
	}
}

// Engine derives signal flags from a bar series. It holds no state between
// calls: every invocation recomputes the indicators from the series it is
// given, so identical input always yields identical output.
type Engine struct {
	params Params
}

// NewEngine creates an engine with the given parameters.
func NewEngine(p Params) *Engine {
	return &Engine{params: p}
}

// Params returns the engine's configuration.
func (e *Engine) Params() Params { return e.params }

// Evaluate computes RSI and both EMAs over the series and derives the four
// signal flags plus the EMA status record for the latest bar.
//
// Crossovers compare the last two bars; divergences compare the last bar to
// the bar Lookback positions earlier and stay false when that bar is out of
// range or its RSI is still undefined.
func (e *Engine) Evaluate(bars []model.OHLCV) (*model.SignalSet, error) {
	p := e.params
	if len(bars) < p.MinBars || len(bars) == 0 {
		return nil, fmt.Errorf("%w: got %d bars, need %d", ErrInsufficientHistory, len(bars), p.MinBars)
	}
	if err := validate(bars); err != nil {
		return nil, err
	}

	closes := model.Closes(bars)
	rsi, err := calculator.RSISeries(closes, p.RSIPeriod)
	if err != nil {
		return nil, err
	}
	fast, err := calculator.EMASeries(closes, p.FastSpan)
	if err != nil {
		return nil, err
	}
	slow, err := calculator.EMASeries(closes, p.SlowSpan)
	if err != nil {
		return nil, err
	}

	n := len(bars)
	set := &model.SignalSet{}

	// Crossovers on the final two bars.
	if n >= 2 {
		f1, ok1 := fast[n-1].Float()
		s1, ok2 := slow[n-1].Float()
		f0, ok3 := fast[n-2].Float()
		s0, ok4 := slow[n-2].Float()
		if ok1 && ok2 && ok3 && ok4 {
			set.EMABullCross = f1 > s1 && f0 <= s0
			set.EMABearCross = f1 < s1 && f0 >= s0
		}
	}

	// Divergences against the bar Lookback positions back.
	if ref := n - 1 - p.Lookback; ref >= 0 {
		if rNow, ok := rsi[n-1].Float(); ok {
			if rThen, ok := rsi[ref].Float(); ok {
				cNow, cThen := closes[n-1], closes[ref]
				set.BullishDivergence = cNow < cThen && rNow > rThen
				set.BearishDivergence = cNow > cThen && rNow < rThen
			}
		}
	}

	set.Status = status(closes[n-1], fast[n-1], slow[n-1], rsi[n-1], p)
	return set, nil
}

// TrendBias computes the daily trend-bias summary from the latest bar. It
// accepts shorter series than Evaluate: only the slow EMA needs to be
// defined.
func (e *Engine) TrendBias(bars []model.OHLCV) (*model.TrendSummary, error) {
	p := e.params
	if len(bars) < p.SummaryMinBars || len(bars) == 0 {
		return nil, fmt.Errorf("%w: got %d bars, need %d", ErrInsufficientHistory, len(bars), p.SummaryMinBars)
	}
	if err := validate(bars); err != nil {
		return nil, err
	}

	closes := model.Closes(bars)
	fast, err := calculator.EMASeries(closes, p.FastSpan)
	if err != nil {
		return nil, err
	}
	slow, err := calculator.EMASeries(closes, p.SlowSpan)
	if err != nil {
		return nil, err
	}

	n := len(bars)
	f, okF := fast[n-1].Float()
	s, okS := slow[n-1].Float()
	if !okF || !okS {
		return nil, fmt.Errorf("%w: EMA undefined on latest bar", ErrInsufficientHistory)
	}

	diff := f - s
	bias := "Bearish Bias" // diff == 0 resolves bearish, same tie-break as the status line
	if diff > 0 {
		bias = "Bullish Bias"
	}
	return &model.TrendSummary{
		Close:    closes[n-1],
		FastSpan: p.FastSpan,
		SlowSpan: p.SlowSpan,
		FastEMA:  f,
		SlowEMA:  s,
		Diff:     diff,
		Bias:     bias,
	}, nil
}

// status builds the informational EMA status record. The tie-break is fixed:
// diff == 0 reports "Bearish".
func status(close float64, fast, slow, rsi calculator.Value, p Params) *model.EMAStatus {
	f, okF := fast.Float()
	s, okS := slow.Float()
	if !okF || !okS {
		return nil
	}
	diff := f - s
	trend := "Bearish"
	if diff > 0 {
		trend = "Bullish"
	}
	st := &model.EMAStatus{
		Close:    close,
		FastSpan: p.FastSpan,
		SlowSpan: p.SlowSpan,
		FastEMA:  f,
		SlowEMA:  s,
		Diff:     diff,
		Trend:    trend,
	}
	if r, ok := rsi.Float(); ok {
		st.RSI = r
	}
	return st
}

// validate rejects non-monotonic timestamps and non-finite closes. The engine
// treats the input as read-only; it never reorders or repairs bars.
func validate(bars []model.OHLCV) error {
	for i, b := range bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return fmt.Errorf("%w: non-finite close at bar %d", ErrMalformedSeries, i)
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("%w: timestamps not strictly increasing at bar %d", ErrMalformedSeries, i)
		}
	}
	return nil
}
