package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/nutralab/quantisim/internal/engine"
	"github.com/nutralab/quantisim/internal/handlers"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		pool, err := openPool(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		sinks, closeSinks := buildSinks(cfg)
		defer closeSinks()

		supplements, analyses := openStores(pool)
		analyzer := engine.NewAnalyzer(supplements, analyses, analyzerOptions(cfg, sinks)...)

		router := gin.Default()
		handlers.NewAPIHandler(analyzer).SetupRoutes(router)

		log.Printf("quantisim API listening on %s", cfg.ListenAddr)
		if err := router.Run(cfg.ListenAddr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
