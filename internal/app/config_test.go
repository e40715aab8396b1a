package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/startboard/internal/host"
	"github.com/lazyvibe/startboard/internal/logging"
	"github.com/lazyvibe/startboard/internal/model"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultAsciiArt(), cfg.AsciiArt)
	assert.Equal(t, host.DefaultOpenCommand, cfg.Open.Command)
	assert.False(t, cfg.Notify.Desktop)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, logging.FormatConsole, cfg.Log.Format)
	assert.Equal(t, filepath.Join(dir, LogFileName), cfg.Log.File)
	assert.NotNil(t, cfg.RecentPaths)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
ascii_art:
  text: |-
    HELLO
    WORLD
  font_size: 22
open:
  command: "subl -a"
  env: "A=1"
notify:
  desktop: true
log:
  level: debug
  format: json
  file: stderr
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, model.AsciiArtConfig{
		Text:       "HELLO\nWORLD",
		FontFamily: "monospace",
		FontSize:   22,
		LineHeight: 1.2,
	}, cfg.AsciiArt)
	assert.Equal(t, host.OpenConfig{Command: "subl -a", Env: "A=1"}, cfg.Open)
	assert.True(t, cfg.Notify.Desktop)
	assert.Equal(t, logging.Config{Level: "debug", Format: "json", File: "stderr"}, cfg.Log)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ascii_art:\n  font_size: 12\n")
	t.Setenv("STARTBOARD_ASCII_ART__FONT_SIZE", "30")
	t.Setenv("STARTBOARD_ASCII_ART__FONT_FAMILY", "Fira Code")
	t.Setenv("STARTBOARD_NOTIFY__DESKTOP", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, float64(30), cfg.AsciiArt.FontSize)
	assert.Equal(t, "Fira Code", cfg.AsciiArt.FontFamily)
	assert.True(t, cfg.Notify.Desktop)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ascii_art: [unclosed")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_TooLarge(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "# "+strings.Repeat("x", maxConfigFileSize))

	_, err := LoadConfig(dir)
	assert.ErrorIs(t, err, ErrConfigTooLarge)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := DefaultConfig(dir)
	cfg.AsciiArt.Text = "Line one\nLine two"
	cfg.Open.Env = "X=1, Y=2"
	cfg.AddRecentPath("/src/api")

	require.NoError(t, SaveConfig(dir, cfg))
	loaded, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "startboard"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	dir, err = DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "startboard"), dir)
}

func TestConfig_RecentPaths(t *testing.T) {
	cfg := DefaultConfig("")
	for i := 0; i < 25; i++ {
		cfg.AddRecentPath(filepath.Join("/p", string(rune('a'+i))))
	}
	cfg.AddRecentPath("/p/c/")

	require.Len(t, cfg.RecentPaths, maxRecentPaths)
	assert.Equal(t, "/p/c", cfg.RecentPaths[0])
	assert.Equal(t, "/p/y", cfg.RecentPaths[1])
	assert.Equal(t, []string{"/p/c"}, cfg.GetRecentPaths("/p/c"))
	assert.Len(t, cfg.GetRecentPaths(""), maxRecentPaths)
}

func TestManager_ReloadNotifiesOnSplashChange(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, nil)
	require.NoError(t, err)

	var got []model.AsciiArtConfig
	m.OnConfigChange(func(c model.AsciiArtConfig) { got = append(got, c) })

	writeConfig(t, dir, "open:\n  command: vim\n")
	changed, err := m.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, got)
	assert.Equal(t, "vim", m.OpenConfig().Command)

	writeConfig(t, dir, "ascii_art:\n  text: New\n")
	changed, err = m.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Text)
	assert.Equal(t, "New", m.GetAsciiArtConfig().Text)
}

func TestManager_ReloadErrorKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ascii_art:\n  text: Kept\n")
	m, err := NewManager(dir, nil)
	require.NoError(t, err)

	writeConfig(t, dir, "ascii_art: [broken")
	_, err = m.Reload()
	assert.Error(t, err)
	assert.Equal(t, "Kept", m.GetAsciiArtConfig().Text)
}

func TestManager_NotifyConfigChange(t *testing.T) {
	m := NewManagerWith(t.TempDir(), nil, nil)
	calls := 0
	sub := m.OnConfigChange(func(c model.AsciiArtConfig) {
		calls++
		assert.Equal(t, model.DefaultAsciiArt(), c)
	})

	m.NotifyConfigChange()
	sub.Dispose()
	m.NotifyConfigChange()

	assert.Equal(t, 1, calls)
}

func TestManager_Update(t *testing.T) {
	dir := t.TempDir()
	m := NewManagerWith(dir, DefaultConfig(dir), nil)
	notified := 0
	m.OnConfigChange(func(model.AsciiArtConfig) { notified++ })

	require.NoError(t, m.Update(func(c *Config) { c.AddRecentPath("/src/api") }))
	assert.Equal(t, 0, notified)
	assert.Equal(t, []string{"/src/api"}, m.Config().RecentPaths)

	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"/src/api"}, loaded.RecentPaths)

	require.NoError(t, m.Update(func(c *Config) { c.AsciiArt.FontSize = 40 }))
	assert.Equal(t, 1, notified)
}

func TestManager_Watch(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, nil)
	require.NoError(t, err)

	var mu sync.Mutex
	var got []string
	m.OnConfigChange(func(c model.AsciiArtConfig) {
		mu.Lock()
		got = append(got, c.Text)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Watch(ctx))

	writeConfig(t, dir, "ascii_art:\n  text: Watched\n")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1] == "Watched"
	}, 3*time.Second, 20*time.Millisecond)

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{}"), 0o644))
	time.Sleep(3 * reloadDelay)
	mu.Lock()
	assert.Len(t, got, 1)
	mu.Unlock()
}
