/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Extensions read these through exported accessors rather than touching the
// variables, so they stay decoupled from cobra internals.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/seek/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var (
	output    string
	roots     []string
	verbose   bool
	telemetryFlag bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// Output returns the output format flag value.
func Output() string { return output }

// Roots returns the --root flag values, which replace the configured
// workspace roots when given.
func Roots() []string { return roots }

// Verbose reports whether debug logging was requested.
func Verbose() bool { return verbose }

// Telemetry reports whether --telemetry asked for this run to be recorded.
func Telemetry() bool { return telemetryFlag }

// Author returns the configured author name for the audit log, or the
// current user's login when none is configured.
func Author() string {
	if cfg, err := config.Load(); err == nil && cfg.Author.Name != "" {
		return cfg.Author.Name
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if error was printed (suppressing Cobra error), or the original error if not.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

// Render writes markdown to the output writer, styled with glamour when
// stdout is a terminal and raw otherwise so pipes and LLMs get plain text.
func Render(markdown string) {
	if out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(markdown, "dark"); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, markdown)
}

// Colour reports whether output should carry ANSI colour.
func Colour() bool {
	return !JSON() && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewLogger returns the diagnostics logger: text to stderr, debug level
// when --verbose is set.
func NewLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().StringArrayVar(&roots, "root", nil, "Workspace root (repeatable, overrides workspace.roots)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log strategy decisions to stderr")
	rootCmd.PersistentFlags().BoolVar(&telemetryFlag, "telemetry", false, "Record searches as telemetry sessions for this run")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
