package money

import (
	"math"
	"testing"
)

func TestToCents_RoundTrip(t *testing.T) {
	for cents := int64(0); cents <= 250000; cents += 7 {
		dollars := Dollars(cents)
		got, err := ToCents(dollars)
		if err != nil {
			t.Fatalf("ToCents(%v) returned error: %v", dollars, err)
		}
		if got != cents {
			t.Fatalf("round trip of %d cents gave %d", cents, got)
		}
	}
}

func TestToCents_RejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ToCents(v); err == nil {
			t.Fatalf("expected error for %v", v)
		}
	}
}

func TestRoundCents_HalfAwayFromZero(t *testing.T) {
	if got := RoundCents(5774.5); got != 5775 {
		t.Fatalf("expected 5775, got %d", got)
	}
	if got := RoundCents(-5774.5); got != -5775 {
		t.Fatalf("expected -5775, got %d", got)
	}
	if got := RoundCents(5774.4); got != 5774 {
		t.Fatalf("expected 5774, got %d", got)
	}
}

func TestPercent(t *testing.T) {
	// 7% of 825.00 = 57.75
	if got := Percent(82500, 7); got != 5775 {
		t.Fatalf("expected 5775, got %d", got)
	}
	// 10% of 1100.00 = 110.00
	if got := Percent(110000, 10); got != 11000 {
		t.Fatalf("expected 11000, got %d", got)
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(105930); got != "1059.30" {
		t.Fatalf("expected 1059.30, got %q", got)
	}
}
