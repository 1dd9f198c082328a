package models

import "testing"

func TestNormalizeEmptySupplement(t *testing.T) {
	s := &Supplement{ID: "x", Name: "X"}
	s.Normalize()

	if s.Category != CategoryOther {
		t.Errorf("category = %q, want %q", s.Category, CategoryOther)
	}
	if s.Timing != TimingAny {
		t.Errorf("timing = %q, want %q", s.Timing, TimingAny)
	}
	if s.DosageUnit != "mg" {
		t.Errorf("dosage unit = %q, want mg", s.DosageUnit)
	}
	if s.DosageMax != 1000 {
		t.Errorf("dosage max = %f, want 1000", s.DosageMax)
	}
	if s.PriceMin != 10 || s.PriceMax != 50 {
		t.Errorf("price range = [%f, %f], want [10, 50]", s.PriceMin, s.PriceMax)
	}
	if s.PKParameters == nil {
		t.Fatal("pk parameters should be defaulted")
	}
	if *s.PKParameters != DefaultPKParameters() {
		t.Errorf("pk parameters = %+v, want population defaults", *s.PKParameters)
	}
}

func TestNormalizePartialPKParameters(t *testing.T) {
	s := &Supplement{
		ID:           "x",
		Name:         "X",
		PKParameters: &PKParameters{HalfLife: 12, Clearance: 0.25},
	}
	s.Normalize()

	pk := s.PKParameters
	if pk.HalfLife != 12 || pk.Clearance != 0.25 {
		t.Errorf("provided values must survive: %+v", pk)
	}
	defaults := DefaultPKParameters()
	if pk.AbsorptionRate != defaults.AbsorptionRate {
		t.Errorf("absorption rate = %f, want default %f", pk.AbsorptionRate, defaults.AbsorptionRate)
	}
	if pk.VolumeDistribution != defaults.VolumeDistribution {
		t.Errorf("volume = %f, want default %f", pk.VolumeDistribution, defaults.VolumeDistribution)
	}
}

func TestNormalizeKeepsProvidedValues(t *testing.T) {
	s := &Supplement{
		ID:         "x",
		Name:       "X",
		Category:   CategoryHerb,
		Timing:     TimingMorning,
		DosageUnit: "g",
		DosageMin:  1,
		DosageMax:  5,
		PriceMin:   20,
		PriceMax:   80,
	}
	s.Normalize()

	if s.Category != CategoryHerb || s.Timing != TimingMorning || s.DosageUnit != "g" {
		t.Errorf("provided descriptors changed: %+v", s)
	}
	if s.DosageMin != 1 || s.DosageMax != 5 || s.PriceMin != 20 || s.PriceMax != 80 {
		t.Errorf("provided ranges changed: %+v", s)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	s := &Supplement{ID: "x", Name: "X"}
	s.Normalize()
	firstPK := *s.PKParameters
	category, timing, unit := s.Category, s.Timing, s.DosageUnit
	dosageMax, priceMin, priceMax := s.DosageMax, s.PriceMin, s.PriceMax

	s.Normalize()

	if *s.PKParameters != firstPK {
		t.Error("second Normalize changed pk parameters")
	}
	if s.Category != category || s.Timing != timing || s.DosageUnit != unit {
		t.Error("second Normalize changed descriptors")
	}
	if s.DosageMax != dosageMax || s.PriceMin != priceMin || s.PriceMax != priceMax {
		t.Error("second Normalize changed ranges")
	}
}

func TestValidAnalysisType(t *testing.T) {
	for _, valid := range []string{"pbpk", "monte_carlo", "synergy_ml", "optimization", "bioavailability"} {
		if !ValidAnalysisType(valid) {
			t.Errorf("%q should be valid", valid)
		}
	}
	for _, invalid := range []string{"", "PBPK", "regression", "synergy"} {
		if ValidAnalysisType(invalid) {
			t.Errorf("%q should be invalid", invalid)
		}
	}
}
