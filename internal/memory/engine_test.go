package memory

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func TestFixedIntervalTable(t *testing.T) {
	wantDays := []int{0, 1, 3, 7, 15, 30}
	for level, days := range wantDays {
		got := NextReview(StrategyFixed, level, testNow)
		want := testNow.AddDate(0, 0, days)
		if !got.Equal(want) {
			t.Errorf("NextReview(fixed, %d) = %v, want %v", level, got, want)
		}
	}
}

func TestFixedIntervalClampsAboveTable(t *testing.T) {
	want := testNow.AddDate(0, 0, 30)
	for _, level := range []int{5, 6, 9, 100} {
		if got := NextReview(StrategyFixed, level, testNow); !got.Equal(want) {
			t.Errorf("NextReview(fixed, %d) = %v, want %v", level, got, want)
		}
	}
}

func TestFixedIntervalClampsBelowZero(t *testing.T) {
	if got := IntervalDays(-3); got != 0 {
		t.Errorf("IntervalDays(-3) = %d, want 0", got)
	}
}

func TestAdaptiveDiscretePathUsesTable(t *testing.T) {
	// The discrete outcome path uses the interval table for both strategies.
	if got, want := NextReview(StrategyAdaptive, 3, testNow), testNow.AddDate(0, 0, 7); !got.Equal(want) {
		t.Errorf("NextReview(adaptive, 3) = %v, want %v", got, want)
	}
}

func TestMaxLevel(t *testing.T) {
	if got := MaxLevel(StrategyFixed); got != 5 {
		t.Errorf("MaxLevel(fixed) = %d, want 5", got)
	}
	if got := MaxLevel(StrategyAdaptive); got != 9 {
		t.Errorf("MaxLevel(adaptive) = %d, want 9", got)
	}
}

func TestStrategyIsValid(t *testing.T) {
	for _, s := range []Strategy{StrategyFixed, StrategyAdaptive} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Strategy("sm18").IsValid() {
		t.Error("unknown strategy should be invalid")
	}
}

func TestCheckLevel(t *testing.T) {
	if err := CheckLevel(StrategyFixed, 5); err != nil {
		t.Errorf("level 5 is legal for fixed: %v", err)
	}
	err := CheckLevel(StrategyFixed, 6)
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("level 6 for fixed: got %v, want ErrInvariant", err)
	}
	if err := CheckLevel(StrategyAdaptive, 9); err != nil {
		t.Errorf("level 9 is legal for adaptive: %v", err)
	}
	if err := CheckLevel(StrategyAdaptive, -1); !errors.Is(err, ErrInvariant) {
		t.Errorf("level -1: got %v, want ErrInvariant", err)
	}
}
