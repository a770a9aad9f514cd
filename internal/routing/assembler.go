package routing

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/app-host/pkg/namespace"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// Assembler discovers namespaces under a base directory and combines them with
// the built-in bindings into the route table. After Assemble returns, the
// table and resolutions are read-only.
type Assembler struct {
	base        string
	exclude     []string
	logger      *slog.Logger
	table       *routes.Table
	resolutions []namespace.Resolution
}

// NewAssembler creates an Assembler scanning base. exclude is added to the
// built-in directory exclusions.
func NewAssembler(base string, exclude []string, logger *slog.Logger) *Assembler {
	return &Assembler{
		base:    base,
		exclude: exclude,
		logger:  logger.With("system", "routing"),
	}
}

// Assemble builds the table: static bindings first, then one binding per
// namespace that exposes routes, in discovery order.
func (a *Assembler) Assemble(static Static) (*routes.Table, error) {
	candidates, err := namespace.Discover(a.base, a.exclude)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("namespaces discovered", "base", a.base, "candidates", candidates)

	resolver := namespace.NewResolver(a.base, a.logger)
	dynamic, resolutions, err := Assemble(resolver, candidates)
	if err != nil {
		return nil, err
	}

	table, err := routes.NewTable(static.Bindings(), dynamic)
	if err != nil {
		return nil, fmt.Errorf("build route table: %w", err)
	}

	if target := static.CertificatePath; target != "" {
		if _, ok := table.Lookup(firstSegment(target)); !ok {
			a.logger.Warn("legacy alias target is not mounted", "target", target)
		}
	}

	a.table = table
	a.resolutions = resolutions

	a.logger.Info(
		"route table assembled",
		"bindings", table.Len(),
		"namespaces", len(resolutions),
		"mounted", len(dynamic),
	)

	return table, nil
}

// Table returns the assembled table, or nil before Assemble succeeds.
func (a *Assembler) Table() *routes.Table {
	return a.table
}

// Resolutions returns every resolved namespace, mounted or not.
func (a *Assembler) Resolutions() []namespace.Resolution {
	return append([]namespace.Resolution(nil), a.resolutions...)
}

func firstSegment(path string) string {
	clean := routes.Clean(path)
	for i := 0; i < len(clean); i++ {
		if clean[i] == '/' {
			return clean[:i]
		}
	}
	return clean
}
