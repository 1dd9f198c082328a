package factories

import (
	"testing"

	"github.com/nutralab/quantisim/internal/models"
)

func TestCreateSupplement(t *testing.T) {
	sf := &SupplementFactory{}
	supp := sf.CreateSupplement()

	if supp.ID == "" {
		t.Error("expected a generated id")
	}
	if supp.Name == "" {
		t.Error("expected a catalogue name")
	}
	if supp.DosageMin >= supp.DosageMax {
		t.Errorf("dosage range [%f, %f] is not increasing", supp.DosageMin, supp.DosageMax)
	}
	if supp.PKParameters == nil {
		t.Fatal("expected pk parameters")
	}
	if supp.PKParameters.AbsorptionRate <= 0 || supp.PKParameters.HalfLife <= 0 {
		t.Errorf("pk parameters not populated: %+v", supp.PKParameters)
	}
	if supp.PriceMin <= 0 || supp.PriceMax <= 0 {
		t.Errorf("prices not populated: [%f, %f]", supp.PriceMin, supp.PriceMax)
	}
}

func TestCreateCatalogueCyclesEntries(t *testing.T) {
	sf := &SupplementFactory{}
	supplements := sf.CreateCatalogue(25)

	if len(supplements) != 25 {
		t.Fatalf("expected 25 supplements, got %d", len(supplements))
	}
	// Cycling the reference catalogue repeats names every 10 entries.
	if supplements[0].Name != supplements[10].Name {
		t.Errorf("expected cycled names, got %q and %q", supplements[0].Name, supplements[10].Name)
	}
	if supplements[0].ID == supplements[10].ID {
		t.Error("cycled entries must still get unique ids")
	}

	categories := map[string]bool{}
	for _, supp := range supplements {
		categories[supp.Category] = true
		if len(supp.Benefits) == 0 {
			t.Errorf("supplement %s has no benefits", supp.Name)
		}
	}
	for _, category := range []string{models.CategoryMineral, models.CategoryVitamin, models.CategoryHerb, models.CategoryAminoAcid, models.CategoryOther} {
		if !categories[category] {
			t.Errorf("category %s missing from catalogue batch", category)
		}
	}
}
