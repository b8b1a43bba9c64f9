package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(dotenvPathEnv, filepath.Join(dir, "missing.env"))
	t.Setenv(configPathEnv, "")
	for _, key := range []string{databaseDriverEnv, databaseDSNEnv, newsAPIKeyEnv, openAIKeyEnv, openAIModelEnv, httpAddrEnv, baseURLEnv, logLevelEnv} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "127.0.0.1:8008", cfg.Server.Addr)
	assert.Equal(t, "http://127.0.0.1:8008", cfg.Client.BaseURL)
	assert.Equal(t, []string{"newsapi", "gdelt", "rss", "sample"}, cfg.Providers.Order)
	assert.Equal(t, 36*time.Hour, cfg.Ranking.RecentWindow)
	assert.Equal(t, 3.0, cfg.Ranking.DirectWeight)
	assert.Empty(t, cfg.Summarizer.APIKey)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: postgres://news@localhost/news?sslmode=disable
providers:
  order: [gdelt, rss]
  sample:
    enabled: true
ranking:
  recentWindow: 24h
`), 0o600))
	t.Setenv(configPathEnv, path)
	t.Setenv(httpAddrEnv, ":9000")
	t.Setenv(newsAPIKeyEnv, "news-key")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, []string{"gdelt", "rss"}, cfg.Providers.Order)
	assert.True(t, cfg.Providers.Sample.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Ranking.RecentWindow)
	assert.Equal(t, 7*24*time.Hour, cfg.Ranking.FallbackWindow)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "news-key", cfg.Providers.NewsAPI.APIKey)
}

func TestLoadDotenv(t *testing.T) {
	dir := isolate(t)

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0o600))
	t.Setenv(dotenvPathEnv, envPath)
	os.Unsetenv(openAIKeyEnv)

	cfg := Load()
	assert.Equal(t, "sk-from-dotenv", cfg.Summarizer.APIKey)
}

func TestLoadBadFileFallsBack(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}
