package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "git")

	out = env.run("version", "-o", "json")
	var info struct {
		BuildTag string          `json:"build_tag"`
		Tools    map[string]bool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.BuildTag)
	assert.Contains(t, info.Tools, "git")
	assert.Contains(t, info.Tools, "grep")
}

func TestGuide(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("guide")
	env.contains(out, "search")
	env.contains(out, "telemetry")

	out = env.run("guide", "search")
	env.contains(out, "git grep")

	_, err := env.runErr("guide", "no-such-topic")
	require.Error(t, err)
}

func TestLLM(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("llm")
	env.contains(out, "seek grep")
}

func TestHelpListsExtensionCommands(t *testing.T) {
	env := newTestEnv(t)
	out := env.run("--help")
	for _, name := range []string{"grep", "compare", "history", "serve", "config", "init"} {
		env.contains(out, name)
	}
}
