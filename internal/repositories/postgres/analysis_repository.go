package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutralab/quantisim/internal/models"
)

// AnalysisRepository is append-only: records are inserted once and never
// updated or deleted.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

func (r *AnalysisRepository) Create(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
        INSERT INTO quantitative_analysis (
            id, user_id, supplement_ids, analysis_type, input_parameters,
            results, statistical_significance, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.SupplementIDs,
		record.AnalysisType,
		record.InputParameters,
		record.Results,
		record.StatisticalSignificance,
		record.CreatedAt,
	)
	return err
}

func (r *AnalysisRepository) GetByUserID(ctx context.Context, userID string) ([]*models.AnalysisRecord, error) {
	query := `
        SELECT id, user_id, supplement_ids, analysis_type, input_parameters,
               results, statistical_significance, created_at
        FROM quantitative_analysis
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		record := &models.AnalysisRecord{}
		var inputParams, results []byte
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.SupplementIDs,
			&record.AnalysisType,
			&inputParams,
			&results,
			&record.StatisticalSignificance,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(inputParams, &record.InputParameters); err != nil {
			return nil, err
		}
		if len(results) > 0 {
			var decoded interface{}
			if err := json.Unmarshal(results, &decoded); err != nil {
				return nil, err
			}
			record.Results = decoded
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *AnalysisRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM quantitative_analysis").Scan(&count)
	return count, err
}
