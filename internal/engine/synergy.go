package engine

import (
	"fmt"
	"strings"

	"github.com/nutralab/quantisim/internal/models"
)

// SynergyScorer maps a feature vector to a combined-effect score in [0, 1].
// The default is a hand-tuned linear heuristic; a trained model can be
// plugged in without touching feature extraction or the orchestrator.
type SynergyScorer interface {
	Score(features models.SynergyFeatures) float64
}

// LinearScorer is a weighted sum over the feature vector with a base offset,
// clipped to [0, 1].
type LinearScorer struct{}

func (LinearScorer) Score(f models.SynergyFeatures) float64 {
	score := 0.5 +
		0.15*f.CategorySimilarity +
		0.35*f.MechanismOverlap +
		0.20*f.BioavailabilityComplementarity +
		0.15*f.TimingCompatibility +
		-0.15*f.InteractionRisk
	return clamp(score, 0, 1)
}

type SynergyPredictor struct {
	scorer SynergyScorer
}

func NewSynergyPredictor(scorer SynergyScorer) *SynergyPredictor {
	if scorer == nil {
		scorer = LinearScorer{}
	}
	return &SynergyPredictor{scorer: scorer}
}

// Predict scores a pair of supplements for combined-effect potential. The
// result is identical regardless of argument order.
func (p *SynergyPredictor) Predict(a, b *models.Supplement) *models.SynergyPrediction {
	features := extractSynergyFeatures(a, b)
	score := p.scorer.Score(features)

	var boost float64
	if score > 0.6 {
		boost = clamp(1+score*0.8, 0, 2.0)
	} else {
		boost = clamp(1+(score-0.5)*0.4, 0.8, 2.0)
	}

	return &models.SynergyPrediction{
		SupplementPair:         [2]string{a.ID, b.ID},
		SynergyScore:           score,
		ConfidenceLevel:        synergyConfidence(features),
		PredictedEfficacyBoost: boost,
		MechanismDescription:   describeMechanism(a, b, score),
		SafetyAssessment:       assessSafety(a, b),
		Features:               features,
	}
}

func extractSynergyFeatures(a, b *models.Supplement) models.SynergyFeatures {
	categorySimilarity := 0.0
	if a.Category == b.Category {
		categorySimilarity = 1
	}
	return models.SynergyFeatures{
		CategorySimilarity:             categorySimilarity,
		MechanismOverlap:               jaccard(a.Benefits, b.Benefits),
		BioavailabilityComplementarity: bioavailabilityComplementarity(a, b),
		TimingCompatibility:            timingCompatibility(a.Timing, b.Timing),
		InteractionRisk:                interactionRisk(a, b),
	}
}

// jaccard is |intersection| / |union| over two string sets, 0 when both are
// empty.
func jaccard(xs, ys []string) float64 {
	set := make(map[string]bool, len(xs))
	for _, x := range xs {
		set[x] = true
	}
	union := make(map[string]bool, len(xs)+len(ys))
	for _, x := range xs {
		union[x] = true
	}
	intersection := 0
	for _, y := range ys {
		if set[y] {
			set[y] = false // count duplicates once
			intersection++
		}
		union[y] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

func bioavailabilityComplementarity(a, b *models.Supplement) float64 {
	s1, s2 := a.BioavailabilityScore, b.BioavailabilityScore
	denom := s1
	if s2 > denom {
		denom = s2
	}
	if denom < 1 {
		denom = 1
	}
	diff := s1 - s2
	if diff < 0 {
		diff = -diff
	}
	return diff / denom
}

func timingCompatibility(t1, t2 string) float64 {
	if t1 == t2 || t1 == models.TimingAny || t2 == models.TimingAny {
		return 1
	}
	return 0.5
}

// interactionRisk flags a pair when either supplement's interaction list
// names the other (case-insensitive substring match).
func interactionRisk(a, b *models.Supplement) float64 {
	if nameListedIn(b.Name, a.Interactions) || nameListedIn(a.Name, b.Interactions) {
		return 0.8
	}
	return 0.1
}

func nameListedIn(name string, interactions []string) bool {
	lower := strings.ToLower(name)
	for _, interaction := range interactions {
		if interaction == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(interaction)) {
			return true
		}
	}
	return false
}

// synergyConfidence shrinks as features spread away from the 0.5 midpoint;
// bounded to [0.6, 0.95].
func synergyConfidence(f models.SynergyFeatures) float64 {
	spread := 0.0
	for _, v := range []float64{
		f.CategorySimilarity,
		f.MechanismOverlap,
		f.BioavailabilityComplementarity,
		f.TimingCompatibility,
		f.InteractionRisk,
	} {
		d := v - 0.5
		spread += d * d
	}
	return clamp(0.8-spread*0.3, 0.6, 0.95)
}

func describeMechanism(a, b *models.Supplement, score float64) string {
	switch {
	case score > 0.7:
		return fmt.Sprintf("High synergy: %s and %s work synergistically through complementary mechanisms.", a.Name, b.Name)
	case score > 0.5:
		return fmt.Sprintf("Moderate synergy: potential beneficial interaction between %s and %s.", a.Name, b.Name)
	default:
		return fmt.Sprintf("Limited synergy: independent effects of %s and %s.", a.Name, b.Name)
	}
}

// assessSafety is a static low-risk placeholder, not a real interaction
// assessment.
func assessSafety(a, b *models.Supplement) models.SafetyAssessment {
	return models.SafetyAssessment{
		InteractionRisk:         "low",
		ContraindicationOverlap: false,
		DosageConcerns:          false,
		MonitoringRequired:      false,
	}
}
