package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nutralab/quantisim/internal/engine"
	"github.com/nutralab/quantisim/internal/models"
	"github.com/nutralab/quantisim/internal/output"
	"github.com/nutralab/quantisim/internal/repositories"
	"github.com/nutralab/quantisim/internal/repositories/postgres"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "quantisim",
	Short: "Quantitative analysis engine for dietary supplements",
	Long: `quantisim is a stateless computation service for supplement stacks: it
simulates pharmacokinetic behaviour over time, runs population-variability
Monte Carlo simulation, predicts pairwise synergy and performs multi-objective
dose optimization.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.PersistentFlags().Int("seed", 42, "Random seed for Monte Carlo simulation")
	rootCmd.PersistentFlags().Int("monte-carlo-iterations", 1000, "Iterations per Monte Carlo simulation")
	rootCmd.PersistentFlags().Int("grid-points", 10, "Grid points per supplement in dose optimization")
	rootCmd.PersistentFlags().Int("max-protocol-size", 6, "Maximum supplements per optimization call")
	rootCmd.PersistentFlags().Int("workers", 0, "Worker goroutines for parallel simulation (0 = NumCPU)")
	rootCmd.PersistentFlags().String("listen-addr", ":8080", "HTTP listen address")
	rootCmd.PersistentFlags().Bool("kafka.enabled", false, "Enable Kafka output of analysis events")
	rootCmd.PersistentFlags().String("kafka.broker_list", "localhost:9092", "Kafka broker list")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func openPool(ctx context.Context, cfg *models.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func openStores(pool *pgxpool.Pool) (repositories.SupplementRepository, repositories.AnalysisRepository) {
	return postgres.NewSupplementRepository(pool), postgres.NewAnalysisRepository(pool)
}

func buildSinks(cfg *models.Config) ([]engine.EventSink, func()) {
	var sinks []engine.EventSink
	var closers []output.Sink

	if cfg.Kafka.Enabled {
		kafka, err := output.NewKafkaSink(cfg.Kafka)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Kafka sink disabled: %v\n", err)
		} else {
			sinks = append(sinks, kafka)
			closers = append(closers, kafka)
		}
	}

	switch cfg.OutputDestination {
	case "console":
		console := &output.ConsoleSink{}
		sinks = append(sinks, console)
		closers = append(closers, console)
	case "json":
		jsonSink := output.NewJSONSink(cfg.OutputPath, cfg.OutputFolder)
		sinks = append(sinks, jsonSink)
		closers = append(closers, jsonSink)
	}

	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	return sinks, closeAll
}

func analyzerOptions(cfg *models.Config, sinks []engine.EventSink) []engine.AnalyzerOption {
	optimizer := engine.NewOptimizer(nil)
	optimizer.GridPoints = cfg.GridPoints
	optimizer.MaxProtocolSize = cfg.MaxProtocolSize
	optimizer.Workers = cfg.Workers

	topicPrefix := cfg.Kafka.TopicPrefix
	if topicPrefix == "" {
		topicPrefix = "analysis"
	}

	return []engine.AnalyzerOption{
		engine.WithSeed(int64(cfg.Seed)),
		engine.WithIterations(cfg.MonteCarloIterations),
		engine.WithWorkers(cfg.Workers),
		engine.WithOptimizer(optimizer),
		engine.WithObjectiveWeights(engine.ObjectiveWeights{
			Efficacy: cfg.EfficacyWeight,
			Cost:     cfg.CostWeight,
			Safety:   cfg.SafetyWeight,
		}),
		engine.WithEventSinks(topicPrefix, sinks...),
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
