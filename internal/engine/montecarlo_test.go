package engine

import (
	"context"
	"math/rand"
	"testing"

	"github.com/nutralab/quantisim/internal/models"
)

func TestRunMonteCarloSingleIteration(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")
	profile := models.UserProfile{UserID: "u1", Age: 35, Weight: 80}

	result, err := RunMonteCarlo(context.Background(), supp, profile, MonteCarloOptions{
		Iterations: 1,
		Rng:        rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Iterations != 1 {
		t.Errorf("expected 1 iteration, got %d", result.Iterations)
	}
	if result.PeakConcentration.Std != 0 {
		t.Errorf("expected zero std for single draw, got %f", result.PeakConcentration.Std)
	}
	if result.AUC.Std != 0 {
		t.Errorf("expected zero std for single draw, got %f", result.AUC.Std)
	}
}

func TestRunMonteCarloPinnedFactorsMatchDeterministicRun(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")
	supp.PopulationVariability = &models.PopulationVariability{AgeFactor: 1, WeightFactor: 1}
	profile := models.UserProfile{UserID: "u1", Age: 40, Weight: 75}

	deterministic := ComputePKProfile(supp, profile)
	result, err := RunMonteCarlo(context.Background(), supp, profile, MonteCarloOptions{
		Iterations: 50,
		Rng:        rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(result.PeakConcentration.Mean, deterministic.PeakConcentration, 1e-9) {
		t.Errorf("expected mean peak %f, got %f", deterministic.PeakConcentration, result.PeakConcentration.Mean)
	}
	if !almostEqual(result.AUC.Mean, deterministic.AUC, 1e-9) {
		t.Errorf("expected mean AUC %f, got %f", deterministic.AUC, result.AUC.Mean)
	}
	if result.PeakConcentration.Std != 0 {
		t.Errorf("expected zero variability with pinned factors, got %f", result.PeakConcentration.Std)
	}
}

func TestRunMonteCarloPercentilesBracketMean(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")
	profile := models.UserProfile{UserID: "u1", Age: 45, Weight: 90}

	result, err := RunMonteCarlo(context.Background(), supp, profile, MonteCarloOptions{
		Iterations: 500,
		Rng:        rand.New(rand.NewSource(11)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, stats := range map[string]models.MetricStats{
		"peak_concentration": result.PeakConcentration,
		"auc":                result.AUC,
	} {
		if stats.Percentile5 > stats.Mean || stats.Mean > stats.Percentile95 {
			t.Errorf("%s: expected p5 (%f) <= mean (%f) <= p95 (%f)",
				name, stats.Percentile5, stats.Mean, stats.Percentile95)
		}
		if len(stats.Distribution) != 500 {
			t.Errorf("%s: expected full distribution of 500 draws, got %d", name, len(stats.Distribution))
		}
	}
	if result.ConfidenceInterval != 95 {
		t.Errorf("expected confidence interval 95, got %d", result.ConfidenceInterval)
	}
}

func TestRunMonteCarloReproducibleWithSeed(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")
	profile := models.UserProfile{UserID: "u1", Age: 45, Weight: 90}

	run := func() *models.MonteCarloResult {
		result, err := RunMonteCarlo(context.Background(), supp, profile, MonteCarloOptions{
			Iterations: 100,
			Workers:    4,
			Rng:        rand.New(rand.NewSource(99)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result
	}

	first := run()
	second := run()

	if first.PeakConcentration.Mean != second.PeakConcentration.Mean {
		t.Errorf("expected identical means across seeded runs: %f vs %f",
			first.PeakConcentration.Mean, second.PeakConcentration.Mean)
	}
	for i := range first.AUC.Distribution {
		if first.AUC.Distribution[i] != second.AUC.Distribution[i] {
			t.Fatalf("distributions diverge at draw %d", i)
		}
	}
}

func TestRunMonteCarloCancelledContext(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunMonteCarlo(ctx, supp, models.UserProfile{UserID: "u1"}, MonteCarloOptions{
		Iterations: 1000,
		Rng:        rand.New(rand.NewSource(1)),
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
