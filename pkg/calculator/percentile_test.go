package calculator

import (
	"errors"
	"testing"

	"customer-insights/pkg/models"
)

func TestPercentiles_ContinuousInterpolation(t *testing.T) {
	got, err := Percentiles([]float64{40, 10, 30, 20}, []float64{0.50, 0.75}, "total_spending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0.50] != 25.0 {
		t.Fatalf("p50: got %v, want 25.0", got[0.50])
	}
	if got[0.75] != 32.5 {
		t.Fatalf("p75: got %v, want 32.5", got[0.75])
	}
}

func TestPercentiles_ExactRank(t *testing.T) {
	// n=5 : p50 tombe sur un rang entier, pas d'interpolation
	got, err := Percentiles([]float64{1, 2, 3, 4, 5}, []float64{0.50}, "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0.50] != 3.0 {
		t.Fatalf("p50: got %v, want 3.0", got[0.50])
	}
}

func TestPercentiles_SingleValue(t *testing.T) {
	got, err := Percentiles([]float64{42}, []float64{0.50, 0.75}, "m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for p, v := range got {
		if v != 42 {
			t.Fatalf("p%v: got %v, want 42", p, v)
		}
	}
}

func TestPercentiles_EmptyPopulation(t *testing.T) {
	_, err := Percentiles(nil, []float64{0.50}, "total_spending")
	if err == nil {
		t.Fatal("expected error for empty population, got nil")
	}
	var popErr *models.EmptyPopulationError
	if !errors.As(err, &popErr) {
		t.Fatalf("expected EmptyPopulationError, got %T", err)
	}
	if popErr.Metric != "total_spending" {
		t.Fatalf("metric: got %q, want %q", popErr.Metric, "total_spending")
	}
}

func TestPercentiles_OutOfRange(t *testing.T) {
	_, err := Percentiles([]float64{1}, []float64{1.5}, "m")
	if err == nil {
		t.Fatal("expected error for percentile > 1, got nil")
	}
}

func TestAssignTier_TieGoesHigh(t *testing.T) {
	tiers := []Tier{
		{Label: models.TierHigh, Threshold: 32.5},
		{Label: models.TierMedium, Threshold: 25.0},
	}
	// exactement au seuil : monte dans le niveau supérieur
	if got := AssignTier(32.5, tiers, models.TierLow); got != models.TierHigh {
		t.Fatalf("got %q, want %q", got, models.TierHigh)
	}
	if got := AssignTier(25.0, tiers, models.TierLow); got != models.TierMedium {
		t.Fatalf("got %q, want %q", got, models.TierMedium)
	}
	if got := AssignTier(24.99, tiers, models.TierLow); got != models.TierLow {
		t.Fatalf("got %q, want %q", got, models.TierLow)
	}
}
