// prune.go implements "seek history prune" for deleting old sessions.
//
// Pruning is irreversible, so it asks for confirmation unless --force is
// given, and --dry-run reports the count without deleting.

package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jpl-au/seek/cmd"
	"github.com/jpl-au/seek/extension"
	"github.com/jpl-au/seek/internal/duration"
	"github.com/jpl-au/seek/internal/log"
	"github.com/spf13/cobra"
)

// PruneResult is the JSON output of prune.
type PruneResult struct {
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
	DryRun  bool      `json:"dry_run,omitempty"`
}

func (e *Extension) newPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete search sessions older than a given age",
		Long: `Permanently delete recorded search sessions older than a given age.

This is irreversible. Use --force to skip confirmation.

Age formats: 12h (hours), 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: e.runPrune,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Delete sessions older than this age (required, e.g. 30d)")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show how many sessions would be deleted")
	c.Flags().BoolP(extension.FlagForce, "f", false, "Do not ask for confirmation")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

func (e *Extension) runPrune(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	force, _ := c.Flags().GetBool(extension.FlagForce)

	age, err := duration.Parse(olderThan)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
	}
	store := e.collector.Store()
	if store == nil {
		return cmd.PrintJSONError(ErrNoStore)
	}

	res := PruneResult{Cutoff: duration.Cutoff(time.Now(), age), DryRun: dryRun}

	if dryRun {
		res.Deleted, err = store.CountBefore(ctx, res.Cutoff)
		log.Event("history:prune", "prune").
			Author(cmd.Author()).
			Matches(int(res.Deleted)).
			Detail("older_than", olderThan).
			Detail("dry_run", true).
			Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("prune dry run: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(res)
		}
		fmt.Fprintf(cmd.Out(), "Would delete %d session(s) recorded before %s\n",
			res.Deleted, res.Cutoff.Local().Format("2006-01-02 15:04"))
		return nil
	}

	if !force && !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Permanently delete search sessions older than %s? This cannot be undone. [y/N] ", olderThan)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	res.Deleted, err = store.Prune(ctx, res.Cutoff)
	if err == nil && res.Deleted > 0 {
		err = store.Compact(ctx)
	}

	log.Event("history:prune", "prune").
		Author(cmd.Author()).
		Matches(int(res.Deleted)).
		Detail("older_than", olderThan).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("prune: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	fmt.Fprintf(cmd.Out(), "Deleted %d session(s)\n", res.Deleted)
	return nil
}
