// Package all imports all built-in seek extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each extension registers itself via init().
	_ "github.com/jpl-au/seek/extension/core"
	_ "github.com/jpl-au/seek/extension/history"
	_ "github.com/jpl-au/seek/extension/search"
)
