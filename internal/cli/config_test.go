package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarsizer/internal/config"
	"github.com/rshade/solarsizer/internal/engine"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)

	out, _, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, "Created .gitignore")

	configPath := filepath.Join(home, "config.yaml")
	require.FileExists(t, configPath)
	gitignore, err := os.ReadFile(filepath.Join(home, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(gitignore))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, engine.DefaultCatalog().ZoneNames(), cfg.Catalog.ZoneNames())
}

func TestConfigInit_ExistingFile(t *testing.T) {
	home := setupCLITest(t)
	configPath := writeFile(t, home, "config.yaml", "output:\n  default_format: json\n")

	// Without --force the file survives, whether the answer comes from the
	// refusal on a pipe or the declined prompt on a terminal.
	_, _, _ = executeCmd(t, "config", "init")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "output:\n  default_format: json\n", string(data))

	out, _, err := executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
}

func TestConfigValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setupCLITest(t)

		out, _, err := executeCmd(t, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "Configuration details:")
		assert.Contains(t, out, "Región Andina")
		assert.Contains(t, out, "Invoice extraction: disabled")
	})

	t.Run("invalid overlay", func(t *testing.T) {
		home := setupCLITest(t)
		overlay := writeFile(t, home, "bad.yaml", "server:\n  addr: \":8080\"\n  max_upload_mb: 0\n")

		_, _, err := executeCmd(t, "config", "validate", "--config", overlay)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "server.max_upload_mb")
	})

	t.Run("invalid catalog", func(t *testing.T) {
		home := setupCLITest(t)
		writeFile(t, home, "config.yaml", "catalog:\n  currency: COP\n  zones: []\n")

		_, _, err := executeCmd(t, "config", "validate")
		require.ErrorIs(t, err, engine.ErrConfiguration)
	})

	t.Run("malformed file", func(t *testing.T) {
		home := setupCLITest(t)
		writeFile(t, home, "config.yaml", "logging: [not, a, map\n")

		out, _, err := executeCmd(t, "config", "validate")
		require.ErrorIs(t, err, engine.ErrConfiguration)
		assert.Contains(t, err.Error(), "parsing config")
		assert.Empty(t, out)
	})
}

func TestRoot_MalformedConfigIsFatal(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "estimate", args: []string{"estimate", "--zone", "Región Andina", "--demand", "350", "--cost", "720"}},
		{name: "zones", args: []string{"zones"}},
		{name: "config show", args: []string{"config", "show"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupCLITest(t)
			path := writeFile(t, home, "config.yaml", "catalog:\n  zones: [unclosed\n")

			out, stderr, err := executeCmd(t, tt.args...)
			require.ErrorIs(t, err, engine.ErrConfiguration)
			assert.Contains(t, err.Error(), path)
			assert.Empty(t, out)
			assert.NotContains(t, stderr, "using default configuration")
		})
	}
}

func TestConfigInit_RepairsMalformedFile(t *testing.T) {
	home := setupCLITest(t)
	configPath := writeFile(t, home, "config.yaml", "logging: [not, a, map\n")

	out, stderr, err := executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, stderr, "using default configuration")

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	_, _, err = executeCmd(t, "zones")
	require.NoError(t, err)
}

func TestConfigShow_RedactsAPIKey(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvOpenAIKey, "sk-secret")

	out, _, err := executeCmd(t, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "********")
	assert.Contains(t, out, "Desierto de la Guajira")
}

func TestRoot_OverlayMissing(t *testing.T) {
	home := setupCLITest(t)

	_, _, err := executeCmd(t, "zones", "--config", filepath.Join(home, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading overlay file")
}

func TestRoot_Version(t *testing.T) {
	setupCLITest(t)

	out, _, err := executeCmd(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestConfigMigrate(t *testing.T) {
	home := setupCLITest(t)
	legacyDir := t.TempDir()
	writeFile(t, legacyDir, "cotizacion.json", `{"cotizacion": 12}`)

	out, _, err := executeCmd(t, "config", "migrate", legacyDir, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "next quote will be #13")

	quoteOut, _, err := executeCmd(t, quoteArgs("Región Andina", filepath.Join(t.TempDir(), "q.pdf"))...)
	require.NoError(t, err)
	assert.Contains(t, quoteOut, "Cotización #13")
	assert.Equal(t, 13, currentQuote(t, home))
}

func TestConfigMigrate_NoLegacyFile(t *testing.T) {
	setupCLITest(t)

	_, _, err := executeCmd(t, "config", "migrate", t.TempDir(), "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cotizacion.json found")
}
