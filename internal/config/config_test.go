package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ghostlogs/ghost/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.False(t, cfg.Exists())
	assert.Equal(t, dir, cfg.Dir())
	assert.Equal(t, filepath.Join(dir, "config.json"), cfg.Path())

	_, err = cfg.APIKey(config.NewInMemoryKeystore())
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestLoadCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ghost")
	_, err := config.Load(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadEmptyConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("  \n"), 0o600))

	_, err := config.Load(dir)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	_, err := config.Load(dir)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSetAPIKeyAndReload(t *testing.T) {
	dir := t.TempDir()
	store := config.NewInMemoryKeystore()

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.SetAPIKey(store, "  gg_secret \n"))
	assert.True(t, cfg.Exists())

	reloaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.Exists())
	assert.Equal(t, "ghost.api-key", reloaded.APIKeyRef)

	key, err := reloaded.APIKey(store)
	require.NoError(t, err)
	assert.Equal(t, "gg_secret", key)

	// The secret itself never lands in config.json.
	raw, err := os.ReadFile(reloaded.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "gg_secret")
}

func TestSetAPIKeyRejectsBlank(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	err = cfg.SetAPIKey(config.NewInMemoryKeystore(), "   ")
	assert.ErrorIs(t, err, config.ErrAPIKeyNotFound)
	assert.False(t, cfg.Exists())
}

func TestAPIKeyMissingRef(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"base_url":"http://x"}`), 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	_, err = cfg.APIKey(config.NewInMemoryKeystore())
	assert.ErrorIs(t, err, config.ErrAPIKeyNotFound)
}

func TestAPIKeyDanglingRef(t *testing.T) {
	dir := t.TempDir()
	store := config.NewInMemoryKeystore()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.SetAPIKey(store, "gg_secret"))
	require.NoError(t, store.Delete(cfg.APIKeyRef))

	_, err = cfg.APIKey(store)
	assert.ErrorIs(t, err, config.ErrAPIKeyNotFound)
}

func TestEndpointsPrecedence(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	base, web := cfg.Endpoints(&config.Env{})
	assert.Equal(t, config.DefaultBaseURL, base)
	assert.Equal(t, config.DefaultWebBaseURL, web)

	cfg.BaseURL = "http://saved-api"
	cfg.WebBaseURL = "http://saved-web"
	base, web = cfg.Endpoints(&config.Env{})
	assert.Equal(t, "http://saved-api", base)
	assert.Equal(t, "http://saved-web", web)

	base, web = cfg.Endpoints(&config.Env{BaseURL: "http://env-api"})
	assert.Equal(t, "http://env-api", base)
	assert.Equal(t, "http://saved-web", web)
}

// ---------------------------------------------------------------------------
// Keystore
// ---------------------------------------------------------------------------

func TestInMemoryKeystore(t *testing.T) {
	ks := config.NewInMemoryKeystore()
	ref, err := ks.Store("api-key", "abc")
	require.NoError(t, err)

	v, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

func TestFileKeystore(t *testing.T) {
	ks, err := config.OpenKeystore(t.TempDir())
	if err != nil {
		t.Skipf("no keyring backend available: %v", err)
	}
	ref, err := ks.Store("test-key", "s3cret")
	if err != nil {
		t.Skipf("keyring backend not writable: %v", err)
	}
	t.Cleanup(func() { _ = ks.Delete(ref) })

	v, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", v)
}

// ---------------------------------------------------------------------------
// Env
// ---------------------------------------------------------------------------

func TestLoadEnvFromProcess(t *testing.T) {
	t.Setenv("GHOST_BASE_URL", "http://localhost:8080")
	t.Setenv("ETHERSCAN_API_KEY", "ekey")

	env, err := config.LoadEnv("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", env.BaseURL)
	assert.Equal(t, "ekey", env.EtherscanAPIKey)
}

func TestLoadEnvDotenv(t *testing.T) {
	t.Setenv("GHOST_WEB_BASE_URL", "http://from-process")

	path := filepath.Join(t.TempDir(), ".env")
	content := "GHOST_API_KEY=dotenv-key\nGHOST_WEB_BASE_URL=http://from-file\nETHERSCAN_API_URL=http://scan\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := config.LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", env.APIKey)
	assert.Equal(t, "http://scan", env.EtherscanAPIURL)
	// Process environment wins over the file.
	assert.Equal(t, "http://from-process", env.WebBaseURL)
}

func TestLoadEnvMissingDotenv(t *testing.T) {
	env, err := config.LoadEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.NotNil(t, env)
}
