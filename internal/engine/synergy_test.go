package engine

import (
	"strings"
	"testing"

	"github.com/nutralab/quantisim/internal/models"
)

func TestPredictSymmetric(t *testing.T) {
	a := testSupplement("a", "Magnesium Glycinate")
	a.Benefits = []string{"sleep quality", "stress reduction"}
	a.BioavailabilityScore = 80
	b := testSupplement("b", "L-Theanine")
	b.Category = models.CategoryAminoAcid
	b.Benefits = []string{"focus", "stress reduction"}
	b.BioavailabilityScore = 40
	b.Timing = models.TimingMorning

	predictor := NewSynergyPredictor(nil)
	ab := predictor.Predict(a, b)
	ba := predictor.Predict(b, a)

	if ab.SynergyScore != ba.SynergyScore {
		t.Errorf("score not symmetric: %f vs %f", ab.SynergyScore, ba.SynergyScore)
	}
	if ab.ConfidenceLevel != ba.ConfidenceLevel {
		t.Errorf("confidence not symmetric: %f vs %f", ab.ConfidenceLevel, ba.ConfidenceLevel)
	}
	if ab.PredictedEfficacyBoost != ba.PredictedEfficacyBoost {
		t.Errorf("boost not symmetric: %f vs %f", ab.PredictedEfficacyBoost, ba.PredictedEfficacyBoost)
	}
	if ab.Features != ba.Features {
		t.Errorf("features not symmetric: %+v vs %+v", ab.Features, ba.Features)
	}
}

func TestPredictBounds(t *testing.T) {
	pairs := [][2]*models.Supplement{}
	base := testSupplement("a", "Magnesium Glycinate")
	for _, other := range []*models.Supplement{
		testSupplement("b", "Magnesium Citrate"),
		func() *models.Supplement {
			s := testSupplement("c", "Vitamin D3")
			s.Category = models.CategoryVitamin
			s.Benefits = []string{"immune support"}
			s.Interactions = []string{"magnesium"}
			s.Timing = models.TimingMorning
			return s
		}(),
		func() *models.Supplement {
			s := testSupplement("d", "Zinc")
			s.Benefits = nil
			s.BioavailabilityScore = 95
			return s
		}(),
	} {
		pairs = append(pairs, [2]*models.Supplement{base, other})
	}

	predictor := NewSynergyPredictor(nil)
	for _, pair := range pairs {
		p := predictor.Predict(pair[0], pair[1])
		if p.SynergyScore < 0 || p.SynergyScore > 1 {
			t.Errorf("synergy score out of [0,1]: %f", p.SynergyScore)
		}
		if p.ConfidenceLevel < 0.6 || p.ConfidenceLevel > 0.95 {
			t.Errorf("confidence out of [0.6,0.95]: %f", p.ConfidenceLevel)
		}
		if p.PredictedEfficacyBoost < 0.8 || p.PredictedEfficacyBoost > 2.0 {
			t.Errorf("efficacy boost out of [0.8,2.0]: %f", p.PredictedEfficacyBoost)
		}
	}
}

func TestPredictIdenticalBenefitsAndCategory(t *testing.T) {
	a := testSupplement("a", "Magnesium Glycinate")
	a.Benefits = []string{"sleep quality", "stress reduction"}
	b := testSupplement("b", "Magnesium Citrate")
	b.Benefits = []string{"sleep quality", "stress reduction"}

	predictor := NewSynergyPredictor(nil)
	p := predictor.Predict(a, b)

	if p.Features.MechanismOverlap != 1 {
		t.Errorf("expected mechanism overlap 1, got %f", p.Features.MechanismOverlap)
	}
	if p.Features.CategorySimilarity != 1 {
		t.Errorf("expected category similarity 1, got %f", p.Features.CategorySimilarity)
	}
	if p.SynergyScore < 0.5 {
		t.Errorf("expected at least moderate synergy, got %f", p.SynergyScore)
	}
	if strings.Contains(p.MechanismDescription, "Limited synergy") {
		t.Errorf("expected moderate-or-higher tier, got %q", p.MechanismDescription)
	}
}

func TestInteractionRiskSubstringMatch(t *testing.T) {
	a := testSupplement("a", "Calcium Carbonate")
	a.Interactions = []string{"iron"}
	b := testSupplement("b", "Iron Bisglycinate")

	if got := interactionRisk(a, b); got != 0.8 {
		t.Errorf("expected elevated risk 0.8, got %f", got)
	}

	c := testSupplement("c", "Vitamin C")
	if got := interactionRisk(a, c); got != 0.1 {
		t.Errorf("expected baseline risk 0.1, got %f", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		xs   []string
		ys   []string
		want float64
	}{
		{"disjoint", []string{"a", "b"}, []string{"c"}, 0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"partial", []string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
	}
	for _, tt := range tests {
		if got := jaccard(tt.xs, tt.ys); !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("%s: jaccard = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestTimingCompatibility(t *testing.T) {
	if got := timingCompatibility(models.TimingMorning, models.TimingEvening); got != 0.5 {
		t.Errorf("expected 0.5 for conflicting timings, got %f", got)
	}
	if got := timingCompatibility(models.TimingMorning, models.TimingAny); got != 1 {
		t.Errorf("expected 1 when either timing is any, got %f", got)
	}
	if got := timingCompatibility(models.TimingEvening, models.TimingEvening); got != 1 {
		t.Errorf("expected 1 for equal timings, got %f", got)
	}
}

// replaceableScorer verifies the scorer seam: a plugged-in model changes the
// score while feature extraction stays intact.
type constantScorer struct{ score float64 }

func (c constantScorer) Score(models.SynergyFeatures) float64 { return c.score }

func TestPredictWithCustomScorer(t *testing.T) {
	predictor := NewSynergyPredictor(constantScorer{score: 0.9})
	p := predictor.Predict(testSupplement("a", "A"), testSupplement("b", "B"))

	if p.SynergyScore != 0.9 {
		t.Errorf("expected plugged scorer output 0.9, got %f", p.SynergyScore)
	}
	if !strings.Contains(p.MechanismDescription, "High synergy") {
		t.Errorf("expected high tier text, got %q", p.MechanismDescription)
	}
	if !almostEqual(p.PredictedEfficacyBoost, 1.72, 1e-9) {
		t.Errorf("expected boost 1.72 for score 0.9, got %f", p.PredictedEfficacyBoost)
	}
}
