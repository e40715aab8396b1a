package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestJSONStore_UpdateAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := NewJSONStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Update("greeting", map[string]string{"hello": "world"}))
	raw, ok := s.Get("greeting")
	require.True(t, ok)
	assert.JSONEq(t, `{"hello":"world"}`, string(raw))
	require.NoError(t, s.Close())

	reopened, err := NewJSONStore(dir, nil)
	require.NoError(t, err)
	raw, ok = reopened.Get("greeting")
	require.True(t, ok)
	assert.JSONEq(t, `{"hello":"world"}`, string(raw))

	_, err = os.Stat(filepath.Join(dir, StateFileName+".tmp"))
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
}

func TestJSONStore_GetMissing(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)

	raw, ok := s.Get("absent")
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestJSONStore_GetReturnsCopy(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Update("k", "value"))

	raw, _ := s.Get("k")
	raw[1] = 'X'

	again, _ := s.Get("k")
	assert.Equal(t, `"value"`, string(again))
}

func TestJSONStore_CorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("{not json"), 0o644))

	core, logs := observer.New(zapcore.WarnLevel)
	s, err := NewJSONStore(dir, zap.New(core))
	require.NoError(t, err)

	_, ok := s.Get(ProjectsKey)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("ignoring unreadable state file").Len())

	require.NoError(t, s.Update("k", 1))
	reopened, err := NewJSONStore(dir, nil)
	require.NoError(t, err)
	raw, ok := reopened.Get("k")
	require.True(t, ok)
	assert.Equal(t, "1", string(raw))
}

func TestJSONStore_UnmarshalableValue(t *testing.T) {
	s, err := NewJSONStore(t.TempDir(), nil)
	require.NoError(t, err)

	err = s.Update("bad", make(chan int))
	require.Error(t, err)

	_, ok := s.Get("bad")
	assert.False(t, ok)
}

func TestJSONStore_FailedWriteIsRetriedOnClose(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	s, err := NewJSONStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err = s.Update("k", "v")
	require.Error(t, err)

	raw, ok := s.Get("k")
	require.True(t, ok, "value stays visible after a failed write")
	assert.Equal(t, `"v"`, string(raw))

	require.NoError(t, os.Chmod(dir, 0o755))
	require.NoError(t, s.Close())

	reopened, err := NewJSONStore(dir, nil)
	require.NoError(t, err)
	_, ok = reopened.Get("k")
	assert.True(t, ok)
}
