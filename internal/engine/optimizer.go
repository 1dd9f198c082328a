package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/nutralab/quantisim/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGridPoints      = 10
	DefaultMaxProtocolSize = 6

	// cancelCheckStride bounds how many candidates a worker scores between
	// context checks.
	cancelCheckStride = 4096
)

// ObjectiveWeights balance the optimization objectives. They are expected to
// sum to 1 but are applied as given.
type ObjectiveWeights struct {
	Efficacy float64 `json:"efficacy"`
	Cost     float64 `json:"cost"`
	Safety   float64 `json:"safety"`
}

func DefaultObjectiveWeights() ObjectiveWeights {
	return ObjectiveWeights{Efficacy: 0.5, Cost: 0.3, Safety: 0.2}
}

// Optimizer searches the discretized dose space of a supplement set for the
// combination maximizing the weighted efficacy/cost/safety score.
type Optimizer struct {
	GridPoints      int
	MaxProtocolSize int
	Workers         int
	synergy         *SynergyPredictor
}

func NewOptimizer(synergy *SynergyPredictor) *Optimizer {
	if synergy == nil {
		synergy = NewSynergyPredictor(nil)
	}
	return &Optimizer{
		GridPoints:      DefaultGridPoints,
		MaxProtocolSize: DefaultMaxProtocolSize,
		synergy:         synergy,
	}
}

// Optimize evaluates every combination on the dose grid. The search space
// grows as gridPoints^len(supps), so the supplement count per call is capped.
// Candidates are scored in parallel index stripes; ties between equal scores
// resolve to the lowest candidate index, which preserves the sequential
// first-found behaviour.
func (o *Optimizer) Optimize(ctx context.Context, supps []*models.Supplement, profile models.UserProfile, weights ObjectiveWeights) (*models.OptimizedProtocol, error) {
	if len(supps) == 0 {
		return nil, fmt.Errorf("optimization requires at least one supplement")
	}
	maxSize := o.MaxProtocolSize
	if maxSize <= 0 {
		maxSize = DefaultMaxProtocolSize
	}
	if len(supps) > maxSize {
		return nil, fmt.Errorf("optimization supports at most %d supplements per call, got %d", maxSize, len(supps))
	}
	gridPoints := o.GridPoints
	if gridPoints < 2 {
		gridPoints = DefaultGridPoints
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	total := 1
	for range supps {
		total *= gridPoints
	}

	type candidate struct {
		index int
		score float64
	}
	best := make([]candidate, workers)
	for w := range best {
		best[w] = candidate{index: -1, score: math.Inf(-1)}
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (total + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > total {
			end = total
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			doses := make([]float64, len(supps))
			for i := start; i < end; i++ {
				if (i-start)%cancelCheckStride == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}
				decodeDoseCombination(i, supps, gridPoints, doses)
				if !withinDoseBounds(doses, supps) {
					continue
				}
				score := weights.Efficacy*efficacyScore(supps, doses) +
					weights.Cost*costScore(supps, doses) +
					weights.Safety*safetyScore(supps, doses)
				if score > best[w].score {
					best[w] = candidate{index: i, score: score}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	winner := candidate{index: -1, score: math.Inf(-1)}
	for _, c := range best {
		if c.index < 0 {
			continue
		}
		if c.score > winner.score || (c.score == winner.score && c.index < winner.index) {
			winner = c
		}
	}
	if winner.index < 0 {
		return nil, fmt.Errorf("no feasible dose combination found")
	}

	doses := make([]float64, len(supps))
	decodeDoseCombination(winner.index, supps, gridPoints, doses)

	assignments := make([]models.DoseAssignment, len(supps))
	for i, supp := range supps {
		assignments[i] = models.DoseAssignment{
			SupplementID:   supp.ID,
			SupplementName: supp.Name,
			OptimizedDose:  doses[i],
			Unit:           supp.DosageUnit,
		}
	}

	return &models.OptimizedProtocol{
		OptimizedDosages: assignments,
		PredictedOutcomes: models.PredictedOutcomes{
			EfficacyScore:  efficacyScore(supps, doses),
			CostScore:      costScore(supps, doses),
			SafetyScore:    safetyScore(supps, doses),
			SynergyEffects: o.winningSynergies(supps),
		},
		OptimizationScore: winner.score,
		ConfidenceScore:   optimizationConfidence(supps, doses),
	}, nil
}

// decodeDoseCombination maps a candidate index to one dose per supplement,
// least significant grid digit first.
func decodeDoseCombination(index int, supps []*models.Supplement, gridPoints int, doses []float64) {
	remaining := index
	for i, supp := range supps {
		step := (supp.DosageMax - supp.DosageMin) / float64(gridPoints-1)
		doses[i] = supp.DosageMin + float64(remaining%gridPoints)*step
		remaining /= gridPoints
	}
}

// withinDoseBounds holds by construction of the grid; kept as a defensive
// check against degenerate dosage ranges.
func withinDoseBounds(doses []float64, supps []*models.Supplement) bool {
	for i, dose := range doses {
		if dose < supps[i].DosageMin || dose > supps[i].DosageMax {
			return false
		}
	}
	return true
}

func efficacyScore(supps []*models.Supplement, doses []float64) float64 {
	score := 0.0
	for i, supp := range supps {
		midpoint := (supp.DosageMin + supp.DosageMax) / 2
		if midpoint <= 0 {
			continue
		}
		doseEfficiency := 1 - math.Abs(doses[i]-midpoint)/midpoint
		evidenceWeight := 0.7
		if supp.EvidenceLevel == models.EvidenceStrong {
			evidenceWeight = 1.0
		}
		score += doseEfficiency * evidenceWeight
	}
	return score / float64(len(supps))
}

func costScore(supps []*models.Supplement, doses []float64) float64 {
	totalCost := 0.0
	for i, supp := range supps {
		pricePerMg := (supp.PriceMin + supp.PriceMax) / 2 / 1000
		totalCost += doses[i] * pricePerMg
	}
	return math.Max(0, 1-totalCost/100)
}

func safetyScore(supps []*models.Supplement, doses []float64) float64 {
	score := 0.0
	for i, supp := range supps {
		score += math.Max(0, 1-doses[i]/supp.DosageMax)
	}
	return score / float64(len(supps))
}

// winningSynergies reports pairs of the chosen combination whose synergy
// score clears 0.5.
func (o *Optimizer) winningSynergies(supps []*models.Supplement) []models.SynergyEffect {
	effects := []models.SynergyEffect{}
	for i := 0; i < len(supps); i++ {
		for j := i + 1; j < len(supps); j++ {
			prediction := o.synergy.Predict(supps[i], supps[j])
			if prediction.SynergyScore > 0.5 {
				effects = append(effects, models.SynergyEffect{
					Supplements:   [2]string{supps[i].Name, supps[j].Name},
					SynergyScore:  prediction.SynergyScore,
					EfficacyBoost: prediction.PredictedEfficacyBoost,
				})
			}
		}
	}
	return effects
}

// optimizationConfidence is highest when doses sit near the middle of their
// allowed ranges, bounded to [0.5, 0.95].
func optimizationConfidence(supps []*models.Supplement, doses []float64) float64 {
	stability := 0.0
	for i, supp := range supps {
		span := supp.DosageMax - supp.DosageMin
		normalized := 0.5
		if span > 0 {
			normalized = (doses[i] - supp.DosageMin) / span
		}
		stability += 1 - 2*math.Abs(normalized-0.5)
	}
	return clamp(stability/float64(len(doses)), 0.5, 0.95)
}
