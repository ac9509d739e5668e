package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"migration-service/internal/entities"
)

func newInspectMapCommand(app *App) *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "inspect-map <entity>",
		Short: "Print one persisted identity map as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := entities.Get(args[0]); err != nil {
				return err
			}
			store, err := app.Store()
			if err != nil {
				return err
			}
			m, err := store.Load(cmd.Context(), args[0], scope)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(m.Entries())
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "legacy store ID (required)")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
