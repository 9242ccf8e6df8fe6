package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"preservation/internal/preservation/catalog"
)

var seedDryRun bool

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load requirement definitions and journeys into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := catalog.LoadSeedFile(args[0])
		if err != nil {
			return err
		}
		if seedDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%d definitions, %d journeys: ok\n", len(seed.Definitions), len(seed.Journeys))
			return nil
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := seed.Apply(ctx, catalog.NewPostgres(pool)); err != nil {
			return err
		}
		log.Info("catalog seeded", "definitions", len(seed.Definitions), "journeys", len(seed.Journeys))
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "validate the file without writing")
	rootCmd.AddCommand(seedCmd)
}
