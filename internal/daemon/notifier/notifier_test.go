package notifier

import (
	"context"
	"testing"

	"github.com/grovetools/file-preview/errors"
	"github.com/grovetools/file-preview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBarArgs(t *testing.T) {
	tests := []struct {
		process string
		signal  int
		want    []string
	}{
		{process: "waybar", signal: 8, want: []string{"-RTMIN+8", "waybar"}},
		{process: "i3status-rs", signal: 1, want: []string{"-RTMIN+1", "i3status-rs"}},
	}

	for _, tt := range tests {
		t.Run(tt.process, func(t *testing.T) {
			n := NewStatusBar(tt.process, tt.signal)
			assert.Equal(t, tt.want, n.Args())
		})
	}
}

func TestStatusBarNotify(t *testing.T) {
	testutil.RequireStandIns(t)

	ex := &testutil.RecordingExecutor{}
	n := NewStatusBar("waybar", 8)
	n.Executor = ex

	require.NoError(t, n.Notify(context.Background()))
	assert.Equal(t, [][]string{{"pkill", "-RTMIN+8", "waybar"}}, ex.Calls())
}

func TestStatusBarNotifyNoMatch(t *testing.T) {
	testutil.RequireStandIns(t)

	ex := &testutil.RecordingExecutor{Fail: true}
	n := NewStatusBar("waybar", 8)
	n.Executor = ex

	err := n.Notify(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeCommandFailed))
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Notify(context.Background()))
}
