// list.go implements "seek history" (list) and "seek history show".

package history

import (
	"fmt"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/format"
	"github.com/jpl-au/seek/internal/log"
	"github.com/spf13/cobra"
)

// defaultLimit is how many sessions "seek history" lists without -n.
const defaultLimit = 20

func (e *Extension) newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded search sessions",
		Long: `List recorded search sessions, newest first.

  seek history           # last 20 sessions
  seek history -n 0      # every session
  seek history show 3f2a # one session in detail (any unique ID prefix)
  seek history prune --older-than 30d

Sessions are only recorded while telemetry is enabled
(telemetry.enabled, SEEK_TELEMETRY=1, or --telemetry).`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}
	c.Flags().IntP(extension.FlagLimit, "n", defaultLimit, "Maximum sessions to show (0 for all)")
	return c
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	records, err := e.collector.Recent(c.Context(), limit)

	log.Event("history:list", "list").
		Author(cmd.Author()).
		Matches(len(records)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.Out(), "No search sessions recorded")
		return nil
	}
	return format.Sessions(cmd.Out(), records)
}

func (e *Extension) newShowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one search session in detail",
		Long: `Show a recorded search session: strategy decision, ranking factors,
and every match with its relevance score and surrounding lines.

The ID may be any unique prefix of the session ID.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runShow,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Print markdown without terminal styling")
	return c
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	id := args[0]

	rec, err := e.collector.Lookup(c.Context(), id)

	log.Event("history:show", "read").
		Author(cmd.Author()).
		Path(id).
		Session(rec.ID).
		Pattern(rec.Pattern).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history show %q: %w", id, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(rec)
	}
	if raw {
		fmt.Fprint(cmd.Out(), format.Report(rec))
		return nil
	}
	cmd.Render(format.Report(rec))
	return nil
}
