package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notesDoc = `# Meeting notes

## Action items
- TODO: implement token refresh
- TODO: write error copy
`

const mainGo = `package main

// TODO: handle flags
func main() {}
`

func TestGrep(t *testing.T) {
	t.Run("summary groups matches by file", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)
		env.write("src/main.go", mainGo)

		out := env.run("grep", "TODO")
		env.contains(out, `Found 3 match(es) for pattern "TODO" in the workspace directories:`)
		env.contains(out, "File: notes.md")
		env.contains(out, "L4: - TODO: implement token refresh")
		env.contains(out, "File: src/main.go")
		env.contains(out, "L3: // TODO: handle flags")
	})

	t.Run("no matches is not an error", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "nothing\n")

		out := env.run("grep", "ZZZ")
		env.contains(out, `No matches found for pattern "ZZZ" in the workspace directories.`)
	})

	t.Run("include filter", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)
		env.write("src/main.go", mainGo)

		out := env.run("grep", "TODO", "-g", "*.go")
		env.contains(out, `(filter: "*.go")`)
		env.contains(out, "src/main.go")
		env.notContains(out, "notes.md")
	})

	t.Run("path restricts the search", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)
		env.write("src/main.go", mainGo)

		out := env.run("grep", "TODO", "src")
		env.contains(out, `in path "src"`)
		env.contains(out, "main.go")
		env.notContains(out, "notes.md")
	})

	t.Run("files with matches", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)
		env.write("src/main.go", mainGo)

		out := env.run("grep", "-l", "TODO")
		lines := strings.Fields(out)
		assert.ElementsMatch(t, []string{"notes.md", "src/main.go"}, lines)
	})

	t.Run("count", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)

		out := env.run("grep", "-c", "TODO")
		assert.Equal(t, "notes.md:2", strings.TrimSpace(out))
	})

	t.Run("plain", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("src/main.go", mainGo)

		out := env.run("grep", "--plain", "TODO")
		assert.Equal(t, "src/main.go:3:// TODO: handle flags", strings.TrimSpace(out))
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("notes.md", notesDoc)

		out := env.run("grep", "-o", "json", "TODO")
		var res struct {
			Summary string `json:"summary"`
			Display string `json:"display"`
			Matches []struct {
				Path string `json:"path"`
				Line int    `json:"line"`
				Text string `json:"text"`
			} `json:"matches"`
			Strategy string `json:"strategy"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "Found 2 match(es)", res.Display)
		require.Len(t, res.Matches, 2)
		assert.Equal(t, "notes.md", res.Matches[0].Path)
		assert.Equal(t, 4, res.Matches[0].Line)
		assert.NotEmpty(t, res.Strategy)
	})
}

func TestGrep_Errors(t *testing.T) {
	t.Run("invalid pattern", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("grep", "(")
		require.Error(t, err)
		env.contains(out, "invalid regular expression")
	})

	t.Run("invalid pattern json", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("grep", "-o", "json", "(")
		var res map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Contains(t, res["error"], "invalid regular expression")
	})

	t.Run("path outside workspace", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("grep", "TODO", "..")
		require.Error(t, err)
		env.contains(out, "outside")
	})

	t.Run("missing path", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("grep", "TODO", "does-not-exist")
		require.Error(t, err)
	})

	t.Run("bad include", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("grep", "TODO", "-g", "[")
		require.Error(t, err)
	})
}

func TestGrep_MultipleRoots(t *testing.T) {
	env := newTestEnv(t)
	env.write("alpha/a.txt", "TODO alpha\n")
	env.write("beta/b.txt", "TODO beta\n")

	out := env.run("grep", "TODO",
		"--root", filepath.Join(env.dir, "alpha"),
		"--root", filepath.Join(env.dir, "beta"))
	env.contains(out, "File: alpha/a.txt")
	env.contains(out, "File: beta/b.txt")
	assert.Less(t, strings.Index(out, "alpha/a.txt"), strings.Index(out, "beta/b.txt"),
		"roots keep their order")
}

func TestGrep_DisabledStrategiesUseWalk(t *testing.T) {
	env := newTestEnv(t)
	env.write("a.txt", "TODO\n")
	env.run("config", "search.disable", "git,grep")

	out := env.run("grep", "-o", "json", "TODO")
	var res struct {
		Strategy string `json:"strategy"`
		Reason   string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "walk", res.Strategy)
	assert.Equal(t, "walk selected", res.Reason)
}
