package collector

import (
	"errors"
	"strings"
	"testing"

	"NiftyPulse/internal/model"
)

type namedFetcher struct {
	name string
	bars []model.OHLCV
	err  error
}

func (f *namedFetcher) Name() string { return f.name }

func (f *namedFetcher) FetchIntradayBars(_ string, _ int) ([]model.OHLCV, error) {
	return f.bars, f.err
}

func TestCollect_PrimaryServes(t *testing.T) {
	bars := generateMockBars(100, 60)
	col := NewCollector(
		&namedFetcher{name: "primary", bars: bars},
		&namedFetcher{name: "fallback", err: errors.New("should not be called")},
		"NSE:NIFTY50-INDEX", 5)

	got, source, err := col.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if source != "primary" {
		t.Errorf("expected primary source, got %q", source)
	}
	if len(got) != len(bars) {
		t.Errorf("expected %d bars, got %d", len(bars), len(got))
	}
}

func TestCollect_FallsBackOnError(t *testing.T) {
	bars := generateMockBars(100, 60)
	col := NewCollector(
		&namedFetcher{name: "primary", err: errors.New("token expired")},
		&namedFetcher{name: "fallback", bars: bars},
		"NSE:NIFTY50-INDEX", 5)

	got, source, err := col.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if source != "fallback" {
		t.Errorf("expected fallback source, got %q", source)
	}
	if len(got) != len(bars) {
		t.Errorf("expected %d bars, got %d", len(bars), len(got))
	}
}

func TestCollect_EmptyPrimaryFallsBack(t *testing.T) {
	bars := generateMockBars(100, 60)
	col := NewCollector(
		&namedFetcher{name: "primary"}, // nil error, zero bars
		&namedFetcher{name: "fallback", bars: bars},
		"NSE:NIFTY50-INDEX", 5)

	_, source, err := col.Collect()
	if err != nil {
		t.Fatal(err)
	}
	if source != "fallback" {
		t.Errorf("expected fallback after empty primary response, got %q", source)
	}
}

func TestCollect_BothFail(t *testing.T) {
	col := NewCollector(
		&namedFetcher{name: "primary", err: errors.New("down")},
		&namedFetcher{name: "fallback", err: errors.New("also down")},
		"NSE:NIFTY50-INDEX", 5)

	_, _, err := col.Collect()
	if err == nil {
		t.Fatal("expected error when both sources fail")
	}
	if !strings.Contains(err.Error(), "primary") || !strings.Contains(err.Error(), "fallback") {
		t.Errorf("error should name both sources: %v", err)
	}
}

func TestCollect_NoFallback(t *testing.T) {
	col := NewCollector(&namedFetcher{name: "primary", err: errors.New("down")}, nil, "NSE:NIFTY50-INDEX", 5)
	if _, _, err := col.Collect(); err == nil {
		t.Fatal("expected error with no fallback configured")
	}
}

func TestMockFetcher_BarsAreOrdered(t *testing.T) {
	m := &MockFetcher{}
	bars, err := m.FetchIntradayBars("NSE:NIFTY50-INDEX", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) == 0 {
		t.Fatal("expected generated bars")
	}
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Time.Before(bars[i].Time) {
			t.Fatalf("bars out of order at index %d", i)
		}
	}
}
