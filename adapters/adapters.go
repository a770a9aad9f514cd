// Package adapters links the built-in handler kinds into a binary.
// Import it for side effects; each sub-package registers its kind with
// the namespace registry from init.
package adapters

import (
	_ "github.com/JaimeStill/app-host/adapters/files"
	_ "github.com/JaimeStill/app-host/adapters/proxy"
	_ "github.com/JaimeStill/app-host/adapters/redirect"
)
