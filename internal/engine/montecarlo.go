package engine

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/nutralab/quantisim/internal/models"
	"golang.org/x/sync/errgroup"
)

const DefaultIterations = 1000

// MonteCarloOptions configure one population-variability run. Rng is the
// explicit randomness source; callers own seeding so runs are reproducible
// and safe under concurrent requests.
type MonteCarloOptions struct {
	Iterations int
	Workers    int
	Rng        *rand.Rand
}

type variation struct {
	ageFactor    float64
	weightFactor float64
}

// RunMonteCarlo perturbs the user profile Iterations times, recomputes the
// PK profile for each draw, and aggregates peak concentration and AUC into
// population statistics. Random factors are drawn sequentially from the
// injected source, then the independent PK evaluations fan out on a worker
// pool and reduce into order-independent aggregates.
func RunMonteCarlo(ctx context.Context, supp *models.Supplement, profile models.UserProfile, opts MonteCarloOptions) (*models.MonteCarloResult, error) {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	variations := make([]variation, iterations)
	for i := range variations {
		variations[i] = drawVariation(rng, supp.PopulationVariability)
	}

	peaks := make([]float64, iterations)
	aucs := make([]float64, iterations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (iterations + workers - 1) / workers
	for start := 0; start < iterations; start += chunk {
		end := start + chunk
		if end > iterations {
			end = iterations
		}
		start, end := start, end
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				varied := profile
				varied.Age = profile.Age * variations[i].ageFactor
				varied.Weight = profile.Weight * variations[i].weightFactor
				pk := ComputePKProfile(supp, varied)
				peaks[i] = pk.PeakConcentration
				aucs[i] = pk.AUC
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.MonteCarloResult{
		PeakConcentration:  aggregate(peaks),
		AUC:                aggregate(aucs),
		Iterations:         iterations,
		ConfidenceInterval: 95,
	}, nil
}

// drawVariation samples multiplicative factors in [0.8, 1.2] unless the
// supplement pins them explicitly.
func drawVariation(rng *rand.Rand, pv *models.PopulationVariability) variation {
	v := variation{
		ageFactor:    0.8 + rng.Float64()*0.4,
		weightFactor: 0.8 + rng.Float64()*0.4,
	}
	if pv != nil {
		if pv.AgeFactor > 0 {
			v.ageFactor = pv.AgeFactor
		}
		if pv.WeightFactor > 0 {
			v.weightFactor = pv.WeightFactor
		}
	}
	return v
}

func aggregate(sample []float64) models.MetricStats {
	return models.MetricStats{
		Mean:         mean(sample),
		Std:          stdDev(sample),
		Percentile5:  percentile(sample, 5),
		Percentile95: percentile(sample, 95),
		Distribution: sample,
	}
}
