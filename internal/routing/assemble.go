package routing

import (
	"fmt"

	"github.com/JaimeStill/app-host/pkg/namespace"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// Assemble resolves each candidate in order. Found namespaces contribute one
// include binding at "<name>/"; Absent namespaces contribute nothing. The
// first resolution error aborts assembly.
//
// Every resolution, Found or Absent, is returned alongside the bindings.
func Assemble(resolver *namespace.Resolver, candidates []string) ([]routes.Binding, []namespace.Resolution, error) {
	bindings := make([]routes.Binding, 0, len(candidates))
	resolutions := make([]namespace.Resolution, 0, len(candidates))

	for _, name := range candidates {
		res, err := resolver.Resolve(name)
		if err != nil {
			return nil, nil, fmt.Errorf("assemble %s: %w", name, err)
		}

		resolutions = append(resolutions, res)
		if res.Status == namespace.Absent {
			continue
		}

		bindings = append(bindings, routes.Group(name+"/", name, res.Routes))
	}

	return bindings, resolutions, nil
}
