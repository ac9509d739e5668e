package commands

import (
	"os"

	"github.com/spf13/cobra"

	"migration-service/internal/entities"
	"migration-service/internal/migration"
	"migration-service/internal/report"
)

func newMigrateCommand(app *App) *cobra.Command {
	var (
		scope       string
		targetScope string
		dryRun      bool
		force       bool
		limit       int64
		chunkSize   int
	)

	cmd := &cobra.Command{
		Use:   "migrate <entity>|all",
		Short: "Migrate one entity type, or every entity type in dependency order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := migration.Options{
				Scope:       scope,
				TargetScope: targetScope,
				Mode:        migration.ModeFromFlags(dryRun, force),
				Limit:       limit,
				ChunkSize:   chunkSize,
			}

			engine, err := app.Engine()
			if err != nil {
				return err
			}

			var defs []migration.Definition
			if args[0] == "all" {
				defs = entities.Ordered()
			} else {
				def, err := entities.Get(args[0])
				if err != nil {
					return err
				}
				defs = []migration.Definition{def}
			}

			results, runErr := engine.RunSequence(cmd.Context(), defs, opts)
			report.PrintSummary(os.Stdout, results)
			return runErr
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "legacy store ID to migrate (required)")
	cmd.Flags().StringVar(&targetScope, "target-scope", "", "destination store ID (defaults to --scope)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "run the full pipeline but roll back every write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing destination rows that differ")
	cmd.Flags().Int64Var(&limit, "limit", 0, "stop after N source rows per entity (0 = all)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "source read chunk size (0 = configured default)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
