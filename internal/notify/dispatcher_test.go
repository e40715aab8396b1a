package notify

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	title, message string
}

func recorder(out *[]sent, err error) NotifyFunc {
	return func(title, message string, _ any) error {
		*out = append(*out, sent{title, message})
		return err
	}
}

func TestDispatch_Disabled(t *testing.T) {
	var got []sent
	d := NewDispatcherWith(recorder(&got, nil))

	require.NoError(t, d.Dispatch(Config{}, Event{Type: EventInfo, Message: "hi"}))
	assert.Empty(t, got)
}

func TestDispatch_Defaults(t *testing.T) {
	var got []sent
	d := NewDispatcherWith(recorder(&got, nil))

	require.NoError(t, d.Dispatch(Config{Desktop: true}, Event{Type: EventWarning}))
	require.NoError(t, d.Dispatch(Config{Desktop: true}, Event{Type: EventInfo, Title: " Added ", Message: " ok "}))

	assert.Equal(t, []sent{{"Start Board", "warning"}, {"Added", "ok"}}, got)
}

func TestDispatch_Truncates(t *testing.T) {
	var got []sent
	d := NewDispatcherWith(recorder(&got, nil))

	require.NoError(t, d.Dispatch(Config{Desktop: true}, Event{Type: EventInfo, Message: strings.Repeat("x", 900)}))

	require.Len(t, got, 1)
	assert.Len(t, got[0].message, maxMessageLen)
	assert.True(t, strings.HasSuffix(got[0].message, "..."))
}

func TestDispatch_TruncatesWideRunes(t *testing.T) {
	var got []sent
	d := NewDispatcherWith(recorder(&got, nil))

	msg := "x" + strings.Repeat("项目", 500)
	require.NoError(t, d.Dispatch(Config{Desktop: true}, Event{Type: EventInfo, Message: msg}))

	require.Len(t, got, 1)
	assert.True(t, utf8.ValidString(got[0].message))
	assert.LessOrEqual(t, ansi.StringWidth(got[0].message), maxMessageLen)
	assert.True(t, strings.HasPrefix(got[0].message, "x项目"))
	assert.True(t, strings.HasSuffix(got[0].message, "..."))
}

func TestDispatch_ErrorUsesAlert(t *testing.T) {
	var notified, alerted []sent
	d := &Dispatcher{notify: recorder(&notified, nil), alert: recorder(&alerted, errors.New("no bus"))}

	err := d.Dispatch(Config{Desktop: true}, Event{Type: EventError, Message: "missing"})

	assert.Error(t, err)
	assert.Empty(t, notified)
	assert.Equal(t, []sent{{"Start Board", "missing"}}, alerted)
}
