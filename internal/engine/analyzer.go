package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/lucsky/cuid"
	"github.com/nutralab/quantisim/internal/models"
)

// ErrInvalidRequest marks validation failures rejected before any data
// access.
var ErrInvalidRequest = errors.New("invalid analysis request")

// SupplementStore is the read-only reference-data collaborator.
type SupplementStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]*models.Supplement, error)
}

// AnalysisStore appends one record per completed analysis.
type AnalysisStore interface {
	Create(ctx context.Context, record *models.AnalysisRecord) error
}

// EventSink receives completed analysis records as JSON messages. Sink
// failures never fail an analysis.
type EventSink interface {
	WriteMessage(topic string, msg []byte) error
}

// Analyzer validates requests, loads supplements, dispatches to the
// computation components and persists one analysis record per request.
type Analyzer struct {
	supplements SupplementStore
	analyses    AnalysisStore
	sinks       []EventSink

	iterations int
	weights    ObjectiveWeights
	optimizer  *Optimizer
	synergy    *SynergyPredictor
	workers    int
	topic      string

	mu  sync.Mutex
	rng *rand.Rand
}

type AnalyzerOption func(*Analyzer)

func WithIterations(n int) AnalyzerOption {
	return func(a *Analyzer) { a.iterations = n }
}

func WithObjectiveWeights(w ObjectiveWeights) AnalyzerOption {
	return func(a *Analyzer) { a.weights = w }
}

func WithOptimizer(o *Optimizer) AnalyzerOption {
	return func(a *Analyzer) { a.optimizer = o }
}

func WithSynergyScorer(s SynergyScorer) AnalyzerOption {
	return func(a *Analyzer) { a.synergy = NewSynergyPredictor(s) }
}

func WithSeed(seed int64) AnalyzerOption {
	return func(a *Analyzer) { a.rng = rand.New(rand.NewSource(seed)) }
}

func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) { a.workers = n }
}

func WithEventSinks(topicPrefix string, sinks ...EventSink) AnalyzerOption {
	return func(a *Analyzer) {
		a.topic = topicPrefix
		a.sinks = sinks
	}
}

func NewAnalyzer(supplements SupplementStore, analyses AnalysisStore, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		supplements: supplements,
		analyses:    analyses,
		iterations:  DefaultIterations,
		weights:     DefaultObjectiveWeights(),
		synergy:     NewSynergyPredictor(nil),
		topic:       "analysis",
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.optimizer == nil {
		a.optimizer = NewOptimizer(a.synergy)
	}
	return a
}

// Analyze runs one analysis request end to end and always returns a response
// in the external contract shape. The error return classifies failures:
// ErrInvalidRequest-wrapped errors were rejected before any data access,
// anything else failed during fetch or computation.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return failure(err), err
	}

	supplements, err := a.fetchSupplements(ctx, req.SupplementIDs)
	if err != nil {
		return failure(err), err
	}

	results, err := a.dispatch(ctx, supplements, req)
	if err != nil {
		return failure(err), err
	}

	record := &models.AnalysisRecord{
		ID:                      cuid.New(),
		UserID:                  req.UserProfile.UserID,
		SupplementIDs:           req.SupplementIDs,
		AnalysisType:            req.AnalysisType,
		InputParameters:         req.UserProfile,
		Results:                 results,
		StatisticalSignificance: models.StatisticalSignificance,
		CreatedAt:               time.Now().UTC(),
	}

	// Persistence is best effort: computed results are returned even when the
	// append fails.
	if err := a.analyses.Create(ctx, record); err != nil {
		log.Printf("failed to store analysis %s: %v", record.ID, err)
		record.ID = ""
	}
	a.publish(record, req.AnalysisType)

	return models.AnalysisResponse{
		Success:      true,
		AnalysisID:   record.ID,
		AnalysisType: req.AnalysisType,
		Results:      results,
		Timestamp:    record.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ValidateRequest fails fast on malformed requests, before any data access.
func ValidateRequest(req models.AnalysisRequest) error {
	if len(req.SupplementIDs) == 0 {
		return fmt.Errorf("%w: supplement_ids must be a non-empty list", ErrInvalidRequest)
	}
	for _, id := range req.SupplementIDs {
		if id == "" {
			return fmt.Errorf("%w: supplement_ids must not contain empty ids", ErrInvalidRequest)
		}
	}
	if req.UserProfile.UserID == "" {
		return fmt.Errorf("%w: user_profile.user_id is required", ErrInvalidRequest)
	}
	if !models.ValidAnalysisType(req.AnalysisType) {
		return fmt.Errorf("%w: analysis_type must be one of: pbpk, monte_carlo, synergy_ml, optimization, bioavailability", ErrInvalidRequest)
	}
	return nil
}

func (a *Analyzer) fetchSupplements(ctx context.Context, ids []string) ([]*models.Supplement, error) {
	supplements, err := a.supplements.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplement data: %w", err)
	}
	byID := make(map[string]*models.Supplement, len(supplements))
	for _, supp := range supplements {
		byID[supp.ID] = supp
	}
	ordered := make([]*models.Supplement, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		supp, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("supplement not found: %s", id)
		}
		ordered = append(ordered, supp)
	}
	return ordered, nil
}

func (a *Analyzer) dispatch(ctx context.Context, supplements []*models.Supplement, req models.AnalysisRequest) (interface{}, error) {
	switch req.AnalysisType {
	case models.AnalysisTypePBPK:
		results := make([]models.SupplementPKResult, len(supplements))
		for i, supp := range supplements {
			results[i] = models.SupplementPKResult{
				SupplementID:   supp.ID,
				SupplementName: supp.Name,
				PBPKAnalysis:   ComputePKProfile(supp, req.UserProfile),
			}
		}
		return results, nil

	case models.AnalysisTypeMonteCarlo:
		results := make([]models.SupplementMonteCarloResult, len(supplements))
		for i, supp := range supplements {
			simulation, err := RunMonteCarlo(ctx, supp, req.UserProfile, MonteCarloOptions{
				Iterations: a.iterations,
				Workers:    a.workers,
				Rng:        a.iterationRng(),
			})
			if err != nil {
				return nil, err
			}
			results[i] = models.SupplementMonteCarloResult{
				SupplementID:         supp.ID,
				SupplementName:       supp.Name,
				MonteCarloSimulation: simulation,
			}
		}
		return results, nil

	case models.AnalysisTypeSynergyML:
		predictions := []models.SynergyPrediction{}
		for i := 0; i < len(supplements); i++ {
			for j := i + 1; j < len(supplements); j++ {
				predictions = append(predictions, *a.synergy.Predict(supplements[i], supplements[j]))
			}
		}
		return models.SynergyResults{SynergyPredictions: predictions}, nil

	case models.AnalysisTypeOptimization:
		return a.optimizer.Optimize(ctx, supplements, req.UserProfile, a.weights)

	case models.AnalysisTypeBioavailability:
		reports := make([]*models.BioavailabilityReport, len(supplements))
		for i, supp := range supplements {
			reports[i] = AnalyzeBioavailability(supp, req.UserProfile)
		}
		return reports, nil
	}
	return nil, fmt.Errorf("%w: unknown analysis type %q", ErrInvalidRequest, req.AnalysisType)
}

// iterationRng derives an independent seeded source per simulation so
// concurrent requests never share rand state.
func (a *Analyzer) iterationRng() *rand.Rand {
	a.mu.Lock()
	seed := a.rng.Int63()
	a.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

func (a *Analyzer) publish(record *models.AnalysisRecord, analysisType string) {
	if len(a.sinks) == 0 {
		return
	}
	msg, err := json.Marshal(record)
	if err != nil {
		log.Printf("failed to encode analysis event: %v", err)
		return
	}
	topic := fmt.Sprintf("%s_%s", a.topic, analysisType)
	for _, sink := range a.sinks {
		if err := sink.WriteMessage(topic, msg); err != nil {
			log.Printf("failed to publish analysis event to %s: %v", topic, err)
		}
	}
}

func failure(err error) models.AnalysisResponse {
	return models.AnalysisResponse{Success: false, Error: err.Error()}
}
