// Command routes inspects the route table the server would assemble from the
// current configuration, without starting the server.
package main

import (
	"os"

	_ "github.com/JaimeStill/app-host/adapters"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
