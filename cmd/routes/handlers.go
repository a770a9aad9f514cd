package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/app-host/pkg/namespace"
)

func newHandlersCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "handlers",
		Short: "List handler kinds usable in routes.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.printer(cmd.OutOrStdout(), asJSON)
			kinds := namespace.List()

			if p.json {
				return p.JSON(kinds)
			}

			rows := make([][]string, 0, len(kinds))
			for _, k := range kinds {
				rows = append(rows, []string{k.Kind, k.Description})
			}
			return p.Table([]string{"kind", "description"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
