package calculator

import (
	"math"
	"testing"
)

func TestEMASeries_SeedAndRecursion(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ema, err := EMASeries(closes, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(ema) != len(closes) {
		t.Fatalf("expected %d values, got %d", len(closes), len(ema))
	}
	for i := 0; i < 2; i++ {
		if ema[i].Defined() {
			t.Errorf("index %d: expected undefined", i)
		}
	}
	// Seed at index span-1 is the SMA of the first 3 closes: (1+2+3)/3 = 2.
	// With alpha = 0.5 the recursion then tracks close-1 exactly.
	for i := 2; i < len(closes); i++ {
		v, ok := ema[i].Float()
		if !ok {
			t.Fatalf("index %d: expected defined", i)
		}
		if want := float64(i); v != want {
			t.Errorf("index %d: expected %.4f, got %.4f", i, want, v)
		}
	}
}

func TestEMASeries_ConstantInput(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 250.5
	}
	ema, err := EMASeries(closes, 21)
	if err != nil {
		t.Fatal(err)
	}
	for i := 20; i < len(closes); i++ {
		v, ok := ema[i].Float()
		if !ok {
			t.Fatalf("index %d: expected defined", i)
		}
		if math.Abs(v-250.5) > 1e-9 {
			t.Errorf("index %d: expected 250.5, got %.6f", i, v)
		}
	}
}

func TestEMASeries_ShortInput(t *testing.T) {
	ema, err := EMASeries([]float64{1, 2, 3}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range ema {
		if v.Defined() {
			t.Errorf("index %d: expected undefined for short input", i)
		}
	}
}

func TestEMASeries_InvalidSpan(t *testing.T) {
	if _, err := EMASeries([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for span 0")
	}
}

func TestCalculateSMA(t *testing.T) {
	got, err := CalculateSMA([]float64{1, 2, 3, 4, 5, 6}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("expected SMA 5 over the last 3 closes, got %.2f", got)
	}
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
}
