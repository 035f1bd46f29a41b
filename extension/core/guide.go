// guide.go implements the "seek guide" command for documentation access.
//
// Guides are embedded in the binary via the guide package, so documentation
// is always available. Terminal output gets glamour rendering; pipes get raw
// markdown for scripts and LLM context loading.

package core

import (
	"fmt"
	"strings"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/guide"
	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the seek usage guide",
		Long: `Outputs the seek guide for LLMs and humans.

  seek guide             # main guide
  seek guide search      # how strategies and patterns work
  seek guide telemetry   # what a session records`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			cmd.Render(content)
			return nil
		},
	}
}
