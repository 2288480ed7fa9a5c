package tui_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/tui"
)

func TestProgram_RebuildOnRequest(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := newFakeServer(t)
	m := tui.NewModel(ctx, server, io.Discard).WithDisableTick()
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("nativedev demo")) &&
			bytes.Contains(bts, []byte("Status: Waiting for first build"))
	}, teatest.WithDuration(time.Second))

	require.Eventually(t, func() bool { return server.rebuilds.Load() == 1 },
		time.Second, 10*time.Millisecond, "the first build starts on init")

	server.requests <- struct{}{}
	require.Eventually(t, func() bool { return server.rebuilds.Load() == 2 },
		time.Second, 10*time.Millisecond, "a change triggers one rebuild")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(*tui.Model)
	require.True(t, ok)
	assert.True(t, final.Quitting)
}
