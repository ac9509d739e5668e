package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"migration-service/internal/report"
	"migration-service/internal/repository"
)

func newExportCommand(app *App) *cobra.Command {
	var (
		output string
		entity string
		scope  string
		status string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the migration run history to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := app.Dest()
			if err != nil {
				return err
			}

			runs := repository.NewRunRepository(dest)
			recs, total, err := runs.List(cmd.Context(), repository.RunFilters{
				EntityType: entity,
				Scope:      scope,
				Status:     status,
				Limit:      100,
			})
			if err != nil {
				return err
			}

			if err := report.WriteWorkbook(output, recs); err != nil {
				return err
			}
			app.Log.WithFields(logrus.Fields{
				"file":  output,
				"runs":  len(recs),
				"total": total,
			}).Info("Exported migration run history")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "migration_runs.xlsx", "output workbook path")
	cmd.Flags().StringVar(&entity, "entity", "", "filter by entity type")
	cmd.Flags().StringVar(&scope, "scope", "", "filter by legacy store ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by run status")

	return cmd
}
