package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutralab/quantisim/internal/models"
)

type SupplementRepository struct {
	pool *pgxpool.Pool
}

func NewSupplementRepository(pool *pgxpool.Pool) *SupplementRepository {
	return &SupplementRepository{pool: pool}
}

const supplementColumns = `
        id, name, category, description, benefits, target_symptoms,
        dosage_min, dosage_max, dosage_unit, timing, evidence_level,
        contraindications, interactions, price_min, price_max,
        bioavailability_score, pk_parameters, population_variability`

func (r *SupplementRepository) BulkCreate(ctx context.Context, supplements []*models.Supplement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO supplements (` + supplementColumns + `
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
            $16, $17, $18
        )`

	for _, supp := range supplements {
		_, err = tx.Exec(ctx, stmt,
			supp.ID,
			supp.Name,
			supp.Category,
			supp.Description,
			supp.Benefits,
			supp.TargetSymptoms,
			supp.DosageMin,
			supp.DosageMax,
			supp.DosageUnit,
			supp.Timing,
			supp.EvidenceLevel,
			supp.Contraindications,
			supp.Interactions,
			supp.PriceMin,
			supp.PriceMax,
			supp.BioavailabilityScore,
			supp.PKParameters,
			supp.PopulationVariability,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *SupplementRepository) Create(ctx context.Context, supplement *models.Supplement) error {
	query := `
        INSERT INTO supplements (` + supplementColumns + `
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
            $16, $17, $18
        )`
	_, err := r.pool.Exec(ctx, query,
		supplement.ID,
		supplement.Name,
		supplement.Category,
		supplement.Description,
		supplement.Benefits,
		supplement.TargetSymptoms,
		supplement.DosageMin,
		supplement.DosageMax,
		supplement.DosageUnit,
		supplement.Timing,
		supplement.EvidenceLevel,
		supplement.Contraindications,
		supplement.Interactions,
		supplement.PriceMin,
		supplement.PriceMax,
		supplement.BioavailabilityScore,
		supplement.PKParameters,
		supplement.PopulationVariability,
	)
	return err
}

// GetByIDs returns the records found for the given ids; absent ids are
// simply missing from the result, callers decide whether that is an error.
func (r *SupplementRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Supplement, error) {
	query := `
        SELECT ` + supplementColumns + `
        FROM supplements
        WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSupplements(rows)
}

func (r *SupplementRepository) GetAll(ctx context.Context) ([]*models.Supplement, error) {
	query := `
        SELECT ` + supplementColumns + `
        FROM supplements`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSupplements(rows)
}

func (r *SupplementRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM supplements").Scan(&count)
	return count, err
}

func (r *SupplementRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE supplements CASCADE")
	return err
}

type supplementRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSupplements(rows supplementRows) ([]*models.Supplement, error) {
	var supplements []*models.Supplement
	for rows.Next() {
		supp := &models.Supplement{}
		err := rows.Scan(
			&supp.ID,
			&supp.Name,
			&supp.Category,
			&supp.Description,
			&supp.Benefits,
			&supp.TargetSymptoms,
			&supp.DosageMin,
			&supp.DosageMax,
			&supp.DosageUnit,
			&supp.Timing,
			&supp.EvidenceLevel,
			&supp.Contraindications,
			&supp.Interactions,
			&supp.PriceMin,
			&supp.PriceMax,
			&supp.BioavailabilityScore,
			&supp.PKParameters,
			&supp.PopulationVariability,
		)
		if err != nil {
			return nil, err
		}
		// Defaults are applied once at this boundary.
		supp.Normalize()
		supplements = append(supplements, supp)
	}
	return supplements, rows.Err()
}
