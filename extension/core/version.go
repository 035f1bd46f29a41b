// version.go implements the version command.

package core

import (
	"fmt"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including build date, git commit, Go version,
platform, and which external search tools (git, grep) are on PATH.`,
		Run: func(_ *cobra.Command, _ []string) {
			info := version.Get()
			if cmd.JSON() {
				_ = cmd.PrintJSON(info)
				return
			}
			fmt.Fprint(cmd.Out(), info.String())
		},
	}
}
