package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nutralab/quantisim/internal/factories"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	seedCount int
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a reference supplement catalogue into the database",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()

		pool, err := openPool(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo, _ := openStores(pool)
		if seedReset {
			if err := repo.DeleteAll(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error clearing supplements: %v\n", err)
				os.Exit(1)
			}
		}

		factory := &factories.SupplementFactory{}
		supplements := factory.CreateCatalogue(seedCount)

		bar := progressbar.Default(int64(len(supplements)), "seeding")
		for _, supp := range supplements {
			if err := repo.Create(ctx, supp); err != nil {
				fmt.Fprintf(os.Stderr, "Error inserting %s: %v\n", supp.Name, err)
				os.Exit(1)
			}
			bar.Add(1)
		}

		count, err := repo.Count(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error counting supplements: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d supplements (%d total)\n", len(supplements), count)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 10, "Number of supplements to create")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Truncate the supplements table first")
	rootCmd.AddCommand(seedCmd)
}
