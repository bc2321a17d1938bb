package insightful_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mickamy/insightful"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("omitted keys keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := insightful.ParseConfig([]byte("attribute_access: false\nprefix: \"dbg: \"\nparams:\n  - Whoops(arg)\n"))
		require.NoError(t, err)

		want := insightful.DefaultConfig()
		want.AttributeAccess = false
		want.Prefix = "dbg: "
		want.Params = []string{"Whoops(arg)"}
		assert.Equal(t, want, cfg)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := insightful.ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, insightful.DefaultConfig(), cfg)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := insightful.ParseConfig([]byte("function_calls: [oops"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "insightful.yaml")
		require.NoError(t, os.WriteFile(path, []byte("show_method_access: true\nsummary: true\n"), 0o600))

		cfg, err := insightful.LoadConfig(path)
		require.NoError(t, err)
		assert.True(t, cfg.ShowMethodAccess)
		assert.True(t, cfg.Summary)
		assert.True(t, cfg.FunctionCalls)
		assert.Equal(t, insightful.DefaultPrefix, cfg.Prefix)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := insightful.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWithConfig_OptionsApplyInOrder(t *testing.T) {
	t.Parallel()

	cfg := insightful.DefaultConfig()
	cfg.Prefix = "first: "
	i := insightful.New(&Test{}, insightful.WithConfig(cfg), insightful.WithPrefix("second: "), insightful.WithCallStart(true))

	got := i.Config()
	assert.Equal(t, "second: ", got.Prefix)
	assert.True(t, got.CallStart)
	assert.False(t, i.Active())
}
