package engine

import (
	"testing"

	"github.com/nutralab/quantisim/internal/models"
)

func testSupplement(id, name string) *models.Supplement {
	s := &models.Supplement{
		ID:            id,
		Name:          name,
		Category:      models.CategoryMineral,
		Benefits:      []string{"sleep quality"},
		DosageMin:     100,
		DosageMax:     400,
		EvidenceLevel: models.EvidenceStrong,
	}
	s.Normalize()
	return s
}

func TestComputePKProfileScenario(t *testing.T) {
	// half_life=8h, absorption_rate=0.8, bioavailability=1.0, Vd=70 are the
	// defaults applied by Normalize.
	supp := testSupplement("mag", "Magnesium Glycinate")
	profile := models.UserProfile{UserID: "u1", Age: 30, Weight: 70}

	pk := ComputePKProfile(supp, profile)

	if len(pk.TimeProfile) != 25 {
		t.Fatalf("expected 25 hourly points, got %d", len(pk.TimeProfile))
	}
	for _, point := range pk.TimeProfile {
		if point.Concentration < 0 {
			t.Errorf("negative concentration %f at t=%f", point.Concentration, point.TimeHour)
		}
	}
	if pk.PeakTime <= 0 || pk.PeakTime > 5 {
		t.Errorf("expected peak within the first few hours, got t=%f", pk.PeakTime)
	}
	last := pk.TimeProfile[len(pk.TimeProfile)-1]
	if last.Concentration >= pk.PeakConcentration {
		t.Errorf("expected concentration at t=24 (%f) below peak (%f)", last.Concentration, pk.PeakConcentration)
	}
	if pk.AUC <= 0 {
		t.Errorf("expected positive AUC, got %f", pk.AUC)
	}
}

func TestComputePKProfileAgeWeightAdjustments(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")

	pk := ComputePKProfile(supp, models.UserProfile{UserID: "u1", Age: 60, Weight: 105})

	// age 60 -> 1 - 30*0.01 = 0.7; weight 105 -> 1.5
	if !almostEqual(pk.AdjustedParameters.Clearance, 0.1*0.7, 1e-12) {
		t.Errorf("expected adjusted clearance 0.07, got %f", pk.AdjustedParameters.Clearance)
	}
	if !almostEqual(pk.AdjustedParameters.VolumeDistribution, 70*1.5, 1e-9) {
		t.Errorf("expected adjusted Vd 105, got %f", pk.AdjustedParameters.VolumeDistribution)
	}
}

func TestComputePKProfileAgeAdjustmentFloor(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")

	pk := ComputePKProfile(supp, models.UserProfile{UserID: "u1", Age: 90})

	// adjustment floors at 0.7 even for very high ages
	if !almostEqual(pk.AdjustedParameters.Clearance, 0.07, 1e-12) {
		t.Errorf("expected clearance floored at 0.07, got %f", pk.AdjustedParameters.Clearance)
	}
}

func TestComputePKProfileMissingProfileFields(t *testing.T) {
	supp := testSupplement("mag", "Magnesium Glycinate")

	pk := ComputePKProfile(supp, models.UserProfile{UserID: "u1"})

	// no age or weight -> adjustments default to 1
	if pk.AdjustedParameters.Clearance != 0.1 {
		t.Errorf("expected unadjusted clearance, got %f", pk.AdjustedParameters.Clearance)
	}
	if pk.AdjustedParameters.VolumeDistribution != 70 {
		t.Errorf("expected unadjusted Vd, got %f", pk.AdjustedParameters.VolumeDistribution)
	}
}

func TestConcentrationEqualRatesLimitingForm(t *testing.T) {
	// ka == ke would divide by zero in the standard equation; the limiting
	// form must produce a finite, non-negative curve with an interior peak.
	supp := testSupplement("mag", "Magnesium Glycinate")
	supp.PKParameters.AbsorptionRate = 0.2
	supp.PKParameters.HalfLife = ln2 / 0.2 // forces ke == ka

	pk := ComputePKProfile(supp, models.UserProfile{UserID: "u1"})

	if pk.PeakConcentration <= 0 {
		t.Fatalf("expected positive peak under equal rates, got %f", pk.PeakConcentration)
	}
	for _, point := range pk.TimeProfile {
		if point.Concentration < 0 {
			t.Errorf("negative concentration %f at t=%f", point.Concentration, point.TimeHour)
		}
	}
	if pk.TimeProfile[0].Concentration != 0 {
		t.Errorf("expected zero concentration at t=0, got %f", pk.TimeProfile[0].Concentration)
	}
}

func TestTrapezoidalAUCGoldenValue(t *testing.T) {
	points := []models.ConcentrationPoint{
		{TimeHour: 0, Concentration: 0},
		{TimeHour: 1, Concentration: 4},
		{TimeHour: 2, Concentration: 6},
		{TimeHour: 3, Concentration: 2},
	}
	// (0+4)/2 + (4+6)/2 + (6+2)/2 = 2 + 5 + 4 = 11
	if got := trapezoidalAUC(points); !almostEqual(got, 11, 1e-12) {
		t.Errorf("expected AUC 11, got %f", got)
	}
}
