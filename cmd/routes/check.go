package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/app-host/internal/admin"
	"github.com/JaimeStill/app-host/internal/routing"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate namespaces and build the router",
		Long: `Discover and resolve every namespace, build the route table, and
register it on a router. Exits non-zero on the first error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.printer(cmd.OutOrStdout(), false)

			a, err := assemble(opts, cmd.ErrOrStderr())
			if err == nil {
				_, err = routing.Build(a.table)
			}
			if err != nil {
				p.Failure(cmd.ErrOrStderr(), err)
				return err
			}

			views := admin.Namespaces(a.asm.Resolutions())
			rows := make([][]string, 0, len(views))
			mounted := 0
			for _, v := range views {
				status := "absent"
				if v.Mounted {
					status = "mounted"
					mounted++
				}
				rows = append(rows, []string{
					v.Name,
					status,
					strconv.Itoa(v.Routes),
					strconv.FormatBool(v.Migrations),
				})
			}

			if len(rows) > 0 {
				if err := p.Table([]string{"namespace", "status", "routes", "migrations"}, rows); err != nil {
					return err
				}
			}

			return p.Summary("ok: %d routes, %d namespaces (%d mounted)", len(a.table.Entries()), len(views), mounted)
		},
	}
}
