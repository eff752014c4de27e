package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: news-test
news:
  source_limit: 5
  provider:
    enabled: true
    base_url: http://provider.local
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "news-test", cfg.App.Name)
	require.Equal(t, 5, cfg.News.SourceLimit)
	require.Equal(t, 20, cfg.News.DefaultPageSize)
	require.Equal(t, 100, cfg.News.MaxPageSize)
	require.Equal(t, 10*time.Second, cfg.News.FetchTimeout)
	require.Len(t, cfg.News.Feeds, 2)
	require.Equal(t, "cafef", cfg.News.Feeds[0].ID)
	require.Equal(t, "vnexpress", cfg.News.Feeds[1].ID)
	require.True(t, cfg.News.Provider.Available())
	require.Equal(t, "none", cfg.News.Cache.Driver)
	require.False(t, cfg.Digest.Enabled)
	require.Equal(t, time.Minute, cfg.Digest.PollingInterval)
}

func TestLoadDigestSchedules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
digest:
  enabled: true
  polling_interval: 30s
  schedules:
    - cron: "0 8 * * 1-5"
      symbol: VCB
      limit: 5
    - cron: "@daily"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, cfg.Digest.Enabled)
	require.Equal(t, 30*time.Second, cfg.Digest.PollingInterval)
	require.Equal(t, []DigestSchedule{
		{Cron: "0 8 * * 1-5", Symbol: "VCB", Limit: 5},
		{Cron: "@daily"},
	}, cfg.Digest.Schedules)
}

func TestProviderAvailability(t *testing.T) {
	require.False(t, Provider{Enabled: true}.Available())
	require.False(t, Provider{BaseURL: "http://x"}.Available())
	require.True(t, Provider{Enabled: true, BaseURL: "http://x"}.Available())
}

func TestNormalizeKeepsMaxPageSizeAboveDefault(t *testing.T) {
	cfg := Config{News: News{DefaultPageSize: 150}}
	cfg.Normalize()
	require.Equal(t, 150, cfg.News.MaxPageSize)
}
