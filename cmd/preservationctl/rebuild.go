package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	redisclient "preservation/internal/platform/redis"
	"preservation/internal/preservation/catalog"
	"preservation/internal/preservation/service"
	"preservation/internal/preservation/store/duelist"
	pgstore "preservation/internal/preservation/store/postgres"
	id "preservation/pkg/domain"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild-due-index <project-id>",
	Short: "Rebuild the Redis due index of a project from the tag store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, err := id.ParseProjectID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rc, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if rc == nil {
			return errors.New("redis.url is not configured")
		}
		defer rc.Close()

		tags := pgstore.New(pool)
		reader := catalog.NewPostgres(pool)
		// Rebuild never writes tags, so the store transaction is unused.
		svc := service.New(nil, tags, reader, reader,
			service.WithLogger(log),
			service.WithDueIndex(duelist.New(rc), nil),
		)

		n, err := svc.RebuildDueIndex(ctx, projectID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d tags\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
