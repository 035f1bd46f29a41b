// Package log provides centralised audit logging for seek operations.
// Logs are stored in ~/.seek/log/seek-log.db and record every search,
// comparison and telemetry command run from the CLI or over MCP, across
// projects.
//
// This is separate from search telemetry: telemetry describes how a search
// went (strategy, relevance, context), the audit log records that it
// happened and who asked.
//
// # Fluent API
//
//	log.Event("search:grep", "search").
//		Author(cmd.Author()).
//		Path(dir).
//		Pattern(pattern).
//		Matches(res.Total()).
//		Session(res.SessionID).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "search:grep",
// "telemetry:prune", "mcp:seek_grep".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g., "search:grep", "mcp:seek_grep"
	Author  string // who performed the action
	Action  string // verb: search, compare, read, prune, etc.
	Path    string // input: directory or session the operation targeted
	Pattern string // input: search pattern

	// Output fields - populated after the operation completes
	Strategy string // strategy that produced the results
	Matches  int    // number of matches or records affected
	Session  string // telemetry session recorded for the operation

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "search:grep")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:seek_grep")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author(). For MCP tools, use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the directory (or session ID) this operation targeted.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Pattern sets the search pattern.
func (b *Builder) Pattern(pattern string) *Builder {
	b.entry.Pattern = pattern
	return b
}

// Strategy sets the strategy that served the search (output).
func (b *Builder) Strategy(name string) *Builder {
	b.entry.Strategy = name
	return b
}

// Matches sets how many matches were found or records affected (output).
func (b *Builder) Matches(n int) *Builder {
	b.entry.Matches = n
	return b
}

// Session sets the telemetry session ID recorded for the operation (output).
func (b *Builder) Session(id string) *Builder {
	b.entry.Session = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// include filters, cutoffs, strategies compared, etc.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
//	res, err := engine.Search(ctx, req)
//	log.Event("search:grep", "search").Pattern(req.Pattern).Write(err)
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path of the primary workspace root.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
