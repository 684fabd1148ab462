package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/queue-backend/internal/app"
)

func addVersion(topLevel *cobra.Command) {
	short := false
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the queuectl version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := app.BuildVersion()
			if short {
				v = app.Version
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")

	topLevel.AddCommand(cmd)
}
