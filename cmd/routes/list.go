package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every route in table order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.printer(cmd.OutOrStdout(), asJSON)

			a, err := assemble(opts, cmd.ErrOrStderr())
			if err != nil {
				p.Failure(cmd.ErrOrStderr(), err)
				return err
			}

			entries := a.table.Entries()
			if p.json {
				return p.JSON(entries)
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					"/" + e.Path,
					dash(e.Name),
					dash(strings.Join(e.Methods, ",")),
					string(e.Kind),
					dash(e.Target),
				})
			}
			return p.Table([]string{"path", "name", "methods", "kind", "target"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
