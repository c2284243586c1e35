package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarsizer/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	tests := []struct {
		name        string
		existing    string
		subdir      string
		wantCreated bool
		wantContent string
	}{
		{
			name:        "creates file",
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name:        "creates missing directories",
			subdir:      filepath.Join("home", "ana", ".solarsizer"),
			wantCreated: true,
			wantContent: config.GitignoreContent(),
		},
		{
			name:        "keeps existing file",
			existing:    "# hand written\n*.pdf\n",
			wantCreated: false,
			wantContent: "# hand written\n*.pdf\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), tt.subdir)
			path := filepath.Join(dir, ".gitignore")
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o600))
			}

			created, err := config.EnsureGitignore(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(data))
		})
	}
}

func TestGitignoreContent_CoversLocalState(t *testing.T) {
	content := config.GitignoreContent()

	for _, pattern := range []string{"quotes.json\n", "quotes.json.lock\n", "quotes.json.tmp\n", "*.log\n"} {
		assert.Contains(t, content, pattern)
	}
	// The configuration itself is meant to be tracked.
	assert.NotContains(t, content, "config.yaml\n")
}

func TestEnsureGitignore_PathTakenByDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".gitignore"), 0o750))

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
	assert.DirExists(t, filepath.Join(dir, ".gitignore"))
}

func TestEnsureGitignore_SecondCallIsNoop(t *testing.T) {
	dir := t.TempDir()

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	require.True(t, created)

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestEnsureGitignore_ReadOnlyDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file permission tests not reliable on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	dir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	created, err := config.EnsureGitignore(dir)
	require.Error(t, err)
	assert.False(t, created)
}
