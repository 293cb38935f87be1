package calculator

import (
	"math"
	"testing"
)

func TestRSISeries_LeadingWindowUndefined(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 14; i++ {
		if rsi[i].Defined() {
			t.Errorf("index %d: expected undefined inside warm-up window", i)
		}
	}
	for i := 14; i < len(closes); i++ {
		v, ok := rsi[i].Float()
		if !ok {
			t.Fatalf("index %d: expected defined", i)
		}
		if v < 0 || v > 100 {
			t.Errorf("index %d: RSI %.2f out of [0,100]", i, v)
		}
	}
}

func TestRSISeries_ConstantPriceIsNeutral(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}
	rsi, err := RSISeries(closes, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i := 14; i < len(closes); i++ {
		v, _ := rsi[i].Float()
		if v != 50 {
			t.Errorf("index %d: expected RSI 50 for flat prices, got %.2f", i, v)
		}
	}
}

func TestRSISeries_MonotonicExtremes(t *testing.T) {
	up := make([]float64, 40)
	down := make([]float64, 40)
	for i := range up {
		up[i] = 100 + float64(i)
		down[i] = 100 - float64(i)
	}

	rsiUp, err := RSISeries(up, 14)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := rsiUp[39].Float(); v != 100 {
		t.Errorf("expected RSI 100 for all gains, got %.2f", v)
	}

	rsiDown, err := RSISeries(down, 14)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := rsiDown[39].Float(); math.Abs(v) > 1e-9 {
		t.Errorf("expected RSI 0 for all losses, got %.2f", v)
	}
}

func TestRSISeries_ShortInput(t *testing.T) {
	rsi, err := RSISeries([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range rsi {
		if v.Defined() {
			t.Errorf("index %d: expected undefined for short input", i)
		}
	}
}

func TestRSISeries_InvalidPeriod(t *testing.T) {
	if _, err := RSISeries([]float64{1, 2, 3}, -1); err == nil {
		t.Error("expected error for negative period")
	}
}
