package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/app-host/internal/admin"
	"github.com/JaimeStill/app-host/internal/config"
	"github.com/JaimeStill/app-host/internal/routing"
	"github.com/JaimeStill/app-host/pkg/csrf"
	"github.com/JaimeStill/app-host/pkg/logging"
	"github.com/JaimeStill/app-host/pkg/routes"
)

type rootOptions struct {
	configPath string
	baseDir    string
	noColor    bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect the assembled route table",
		Long: `Assemble the route table exactly as the server does at startup and
report it. Namespaces are discovered under namespaces.base_dir; any malformed
namespace fails the command the same way it would fail server startup.`,
		Example: `  # List every route
  routes list

  # Machine-readable output
  routes list --json

  # Validate namespaces in another directory
  routes check --base-dir ./apps`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.BaseConfigFile, "configuration file")
	flags.StringVar(&opts.baseDir, "base-dir", "", "override namespaces.base_dir")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newHandlersCommand(opts))

	return cmd
}

// assembly is the result of running the server's assembly offline.
type assembly struct {
	cfg   *config.Config
	asm   *routing.Assembler
	table *routes.Table
}

func assemble(opts *rootOptions, stderr io.Writer) (*assembly, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.baseDir != "" {
		cfg.Namespaces.BaseDir = opts.baseDir
	}

	logger := logging.New(&cfg.Logging, stderr)
	asm := routing.NewAssembler(cfg.Namespaces.BaseDir, cfg.Namespaces.Exclude, logger)

	table, err := asm.Assemble(routing.Static{
		CSRF:            csrf.New(&cfg.CSRF, logger),
		Admin:           admin.NewHandler(asm, routing.ServiceName, cfg.Version, &cfg.OpenAPI, logger),
		CertificatePath: cfg.Legacy.CertificatePath,
	})
	if err != nil {
		return nil, err
	}

	return &assembly{cfg: cfg, asm: asm, table: table}, nil
}

func (o *rootOptions) printer(out io.Writer, json bool) *printer {
	return &printer{out: out, json: json, color: !o.noColor && !json && !color.NoColor}
}
