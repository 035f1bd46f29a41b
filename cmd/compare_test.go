package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Run("single strategy agrees with itself", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "TODO one\nTODO two\n")

		out := env.run("compare", "TODO", "--strategies", "walk")
		env.contains(out, "walk  2 match(es) in")
		env.contains(out, "identical")
	})

	t.Run("json reports", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "TODO one\n")

		out := env.run("compare", "-o", "json", "TODO", "--strategies", "walk")
		var reports []struct {
			Strategy  string `json:"strategy"`
			Available bool   `json:"available"`
			Total     int    `json:"total"`
			Equal     bool   `json:"equal"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "walk", reports[0].Strategy)
		assert.True(t, reports[0].Available)
		assert.Equal(t, 1, reports[0].Total)
		assert.True(t, reports[0].Equal)
	})

	t.Run("every strategy reports", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "TODO one\n")

		// git is unavailable outside a repository, which is not a disagreement.
		out := env.run("compare", "TODO")
		env.contains(out, "git")
		env.contains(out, "unavailable")
		env.contains(out, "walk")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("compare", "TODO", "--strategies", "ripgrep")
		require.Error(t, err)
		env.contains(out, "unknown strategy")
	})

	t.Run("does not record telemetry", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("a.txt", "TODO\n")
		env.run("compare", "--telemetry", "TODO", "--strategies", "walk")

		out := env.run("history")
		env.contains(out, "No search sessions recorded")
	})
}
