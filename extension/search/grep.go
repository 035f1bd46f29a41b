// grep.go implements the "seek grep" command for regex content searching.
//
// The engine picks the backend: git grep inside a repository, the system
// grep elsewhere, the built-in walk when neither can run. The command only
// chooses how to print what came back.

package search

import (
	"fmt"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/format"
	"github.com/jpl-au/seek/internal/log"
	"github.com/jpl-au/seek/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newGrepCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "grep <pattern> [path]",
		Short: "Search file contents using a regular expression",
		Long: `Search file contents using a regular expression.

  seek grep "TODO"                   # search every workspace root
  seek grep "func\s+\w+" src         # search one directory
  seek grep "error|warn" -g "*.go"   # only files matching a glob
  seek grep -l "TODO"                # list matching files only
  seek grep --plain "TODO"           # path:line:text, like grep -n

Relative paths resolve against the first workspace root and must stay
inside the workspace. Add --telemetry to record the search as a session
(see 'seek history').`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runGrep,
	}
	c.Flags().StringP(extension.FlagInclude, "g", "", "Only search files matching this glob (e.g. \"*.go\", \"src/**/*.ts\")")
	c.Flags().BoolP(extension.FlagFilesWithMatch, "l", false, "Only output paths of matching files")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Only print the number of matches per file")
	c.Flags().Bool(extension.FlagPlain, false, "Print path:line:text rows without the summary")
	return c
}

func (e *Extension) runGrep(c *cobra.Command, args []string) error {
	req := search.Request{Pattern: args[0]}
	if len(args) > 1 {
		req.Path = args[1]
	}
	req.Include, _ = c.Flags().GetString(extension.FlagInclude)
	pathsOnly, _ := c.Flags().GetBool(extension.FlagFilesWithMatch)
	countOnly, _ := c.Flags().GetBool(extension.FlagCount)
	plain, _ := c.Flags().GetBool(extension.FlagPlain)

	res, err := e.engine.Search(c.Context(), req)

	log.Event("search:grep", "search").
		Author(cmd.Author()).
		Path(req.Path).
		Pattern(req.Pattern).
		Strategy(res.Strategy).
		Matches(res.Total()).
		Session(res.SessionID).
		Detail("include", req.Include).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("grep %q: %w", req.Pattern, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}

	w := cmd.Out()
	switch {
	case pathsOnly:
		for _, f := range res.Files {
			fmt.Fprintln(w, f.Path)
		}
	case countOnly:
		for _, f := range res.Files {
			fmt.Fprintf(w, "%s:%d\n", f.Path, len(f.Matches))
		}
	case plain:
		return format.Lines(w, res.Files)
	default:
		fmt.Fprint(w, res.Summary)
		if res.Total() == 0 {
			fmt.Fprintln(w)
		}
		if res.SessionID != "" {
			fmt.Fprintf(w, "Session: %s\n", format.Short(res.SessionID))
		}
	}
	return nil
}
