// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos when flag names
// are used in both Flags().Type() definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

const (
	// Boolean flags

	FlagCount          = "count"              // Output count only
	FlagDryRun         = "dry-run"            // Preview without making changes
	FlagFilesWithMatch = "files-with-matches" // Output matching file paths only
	FlagForce          = "force"              // Skip confirmation prompts
	FlagLocal          = "local"              // Use local scope (gitignored)
	FlagPlain          = "plain"              // path:line:text output without the summary
	FlagRaw            = "raw"                // Raw output without formatting

	// String flags

	FlagInclude   = "include"    // Glob filter for file names
	FlagOlderThan = "older-than" // Duration threshold

	// String slice flags

	FlagStrategies = "strategies" // Strategy names to run

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
