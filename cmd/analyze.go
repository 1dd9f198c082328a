package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nutralab/quantisim/internal/engine"
	"github.com/nutralab/quantisim/internal/models"
	"github.com/nutralab/quantisim/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	analyzeType     string
	analyzeUserID   string
	analyzeAge      float64
	analyzeWeight   float64
	analyzeGender   string
	analyzeSupps    []string
	analyzeBatch    bool
	analyzeExport   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis and print the result as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		ctx := context.Background()
		if cfg.AnalysisTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.AnalysisTimeout)
			defer cancel()
		}

		pool, err := openPool(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		sinks, closeSinks := buildSinks(cfg)
		defer closeSinks()

		supplements, analyses := openStores(pool)
		analyzer := engine.NewAnalyzer(supplements, analyses, analyzerOptions(cfg, sinks)...)

		profile := models.UserProfile{
			UserID: analyzeUserID,
			Age:    analyzeAge,
			Weight: analyzeWeight,
			Gender: analyzeGender,
		}

		if analyzeBatch {
			runBatch(ctx, analyzer, cfg, profile)
			return
		}

		resp, _ := analyzer.Analyze(ctx, models.AnalysisRequest{
			SupplementIDs: analyzeSupps,
			UserProfile:   profile,
			AnalysisType:  analyzeType,
		})
		printJSON(resp)
		if !resp.Success {
			os.Exit(1)
		}

		if analyzeExport && analyzeType == models.AnalysisTypeMonteCarlo {
			exportDistributions(cfg, resp)
		}
	},
}

// runBatch runs one Monte Carlo simulation per supplement id with a progress
// bar, for research-style sweeps over a catalogue.
func runBatch(ctx context.Context, analyzer *engine.Analyzer, cfg *models.Config, profile models.UserProfile) {
	bar := progressbar.Default(int64(len(analyzeSupps)), "simulating")
	responses := make([]models.AnalysisResponse, 0, len(analyzeSupps))
	for _, id := range analyzeSupps {
		resp, _ := analyzer.Analyze(ctx, models.AnalysisRequest{
			SupplementIDs: []string{id},
			UserProfile:   profile,
			AnalysisType:  models.AnalysisTypeMonteCarlo,
		})
		responses = append(responses, resp)
		if analyzeExport && resp.Success {
			exportDistributions(cfg, resp)
		}
		bar.Add(1)
	}
	printJSON(responses)
}

func exportDistributions(cfg *models.Config, resp models.AnalysisResponse) {
	if !cfg.Export.Enabled {
		return
	}
	exporter, err := output.NewParquetExporter(cfg.Export)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export disabled: %v\n", err)
		return
	}
	results, ok := resp.Results.([]models.SupplementMonteCarloResult)
	if !ok {
		return
	}
	if err := exporter.ExportDistributions(resp.AnalysisID, results); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeType, "type", models.AnalysisTypePBPK, "Analysis type: pbpk, monte_carlo, synergy_ml, optimization, bioavailability")
	analyzeCmd.Flags().StringVar(&analyzeUserID, "user", "", "User id for the analysis record")
	analyzeCmd.Flags().Float64Var(&analyzeAge, "age", 0, "User age in years")
	analyzeCmd.Flags().Float64Var(&analyzeWeight, "weight", 0, "User weight in kg")
	analyzeCmd.Flags().StringVar(&analyzeGender, "gender", "", "User gender")
	analyzeCmd.Flags().StringSliceVar(&analyzeSupps, "supplements", nil, "Supplement ids to analyze")
	analyzeCmd.Flags().BoolVar(&analyzeBatch, "batch", false, "Run one Monte Carlo simulation per supplement id")
	analyzeCmd.Flags().BoolVar(&analyzeExport, "export", false, "Export Monte Carlo distributions as Parquet")
	rootCmd.AddCommand(analyzeCmd)
}
