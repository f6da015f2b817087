package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvVal(t *testing.T) {
	t.Setenv("GENMENU_TEST_VALUE", "  something ")
	t.Setenv("GENMENU_TEST_BLANK", "  ")
	assert.Equal(t, "something", EnvVal("genmenu_test_value", "default"))
	assert.Equal(t, "default", EnvVal("GENMENU_TEST_BLANK", "default"))
	assert.Equal(t, "default", EnvVal("GENMENU_TEST_UNSET", "default"))
}

func TestEnvBool(t *testing.T) {
	t.Setenv("GENMENU_TEST_YES", "Yes")
	t.Setenv("GENMENU_TEST_OFF", "off")
	t.Setenv("GENMENU_TEST_JUNK", "maybe")
	assert.True(t, EnvBool("GENMENU_TEST_YES", false))
	assert.False(t, EnvBool("GENMENU_TEST_OFF", true))
	assert.True(t, EnvBool("GENMENU_TEST_JUNK", true))
	assert.False(t, EnvBool("GENMENU_TEST_UNSET", false))
}

func TestLoad(t *testing.T) {
	t.Run("Defaults without a file", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Setenv(EnvConfigPath, "")
		s, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultRegistryURL, s.RegistryURL)
		assert.Equal(t, "npm", s.NPMCommand)
		assert.Equal(t, "yo", s.RunCommand)
		assert.Equal(t, 250, s.SearchSize)
		assert.Equal(t, 3, s.SearchAttempts)
		assert.False(t, s.Debug)
	})
	t.Run("File and environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
registry_url = "http://localhost:4873"
npm_command = "pnpm"
deny_list = ["generator-broken"]
search_attempts = 0
`), 0o644))
		t.Setenv("GENMENU_RUN_COMMAND", "yeoman")
		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4873", s.RegistryURL)
		assert.Equal(t, "pnpm", s.NPMCommand)
		assert.Equal(t, "yeoman", s.RunCommand)
		assert.Equal(t, []string{"generator-broken"}, s.DenyList)
		assert.Equal(t, 1, s.SearchAttempts)
	})
	t.Run("Missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestStore_RunCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insight.toml")
	s, err := OpenStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.RunCounts())

	require.NoError(t, s.IncrementRunCount("unicorn"))
	require.NoError(t, s.IncrementRunCount("unicorn"))
	require.NoError(t, s.IncrementRunCount("phoenix"))
	assert.Equal(t, map[string]int{"unicorn": 2, "phoenix": 1}, s.RunCounts())

	reopened, err := OpenStore(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"unicorn": 2, "phoenix": 1}, reopened.RunCounts())
	assert.NotNil(t, reopened.Get(KeyRunCount))
}

func TestStore_InMemory(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set("answer", 42))
	assert.Equal(t, 42, s.Get("answer"))
	assert.Equal(t, 42, s.Get("ANSWER"))
}

func TestCountsFrom(t *testing.T) {
	assert.Equal(t, map[string]int{"a": 1}, CountsFrom(map[string]int{"a": 1}))
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3},
		CountsFrom(map[string]any{"a": 1, "b": int64(2), "c": 3.0, "d": "x"}))
	assert.Empty(t, CountsFrom(nil))
	assert.Empty(t, CountsFrom("nope"))
}
