package tui_test

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/tui"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newMockServer(t *testing.T, platforms ...domain.Platform) *mocks.MockDevServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	server := mocks.NewMockDevServer(ctrl)

	cfg := domain.DefaultProjectConfig(t.TempDir(), "demo")
	if len(platforms) > 0 {
		cfg.TargetPlatforms = platforms
	}
	requests := make(chan struct{}, 1)

	server.EXPECT().Config().Return(cfg).AnyTimes()
	server.EXPECT().Status().Return(domain.BuildStatus{}).AnyTimes()
	server.EXPECT().Target().Return(cfg.TargetPlatforms[0]).AnyTimes()
	server.EXPECT().RebuildRequests().Return((<-chan struct{})(requests)).AnyTimes()
	return server
}

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func key(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Init(t *testing.T) {
	server := newMockServer(t)
	server.EXPECT().Rebuild(gomock.Any()).Times(1)

	m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()
	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, m.Busy, "the first build starts on init")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2, "rebuild and rebuild listener")

	assert.Equal(t, tui.ActionDoneMsg{}, batch[0]())
}

func TestModel_Keys(t *testing.T) {
	t.Run("r rebuilds", func(t *testing.T) {
		server := newMockServer(t)
		server.EXPECT().Rebuild(gomock.Any()).Times(1)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

		m, cmd := updateModel(m, key("r"))
		require.NotNil(t, cmd)
		assert.True(t, m.Busy)
		assert.Equal(t, tui.ActionDoneMsg{}, cmd())

		m, cmd = updateModel(m, tui.ActionDoneMsg{})
		assert.Nil(t, cmd)
		assert.False(t, m.Busy)
	})

	t.Run("keys are dropped while busy", func(t *testing.T) {
		server := newMockServer(t, domain.Desktop, domain.Web)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()
		m.Busy = true

		for _, k := range []string{"r", "s", "4"} {
			_, cmd := updateModel(m, key(k))
			assert.Nil(t, cmd, k)
		}
		assert.Equal(t, domain.Desktop, m.Target)
	})

	t.Run("s restarts and reports failures", func(t *testing.T) {
		server := newMockServer(t)
		restartErr := errors.New("watch root vanished")
		server.EXPECT().Restart(gomock.Any()).Return(restartErr)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

		m, cmd := updateModel(m, key("s"))
		require.NotNil(t, cmd)
		msg := cmd()
		assert.Equal(t, tui.ActionDoneMsg{Err: restartErr}, msg)

		m, _ = updateModel(m, msg)
		assert.False(t, m.Busy)
		assert.Equal(t, "watch root vanished", m.Notice)
	})

	t.Run("digit selects a targeted platform", func(t *testing.T) {
		server := newMockServer(t, domain.Desktop, domain.Web)
		server.EXPECT().SetPlatform(gomock.Any(), domain.Web).Return(nil)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

		m, cmd := updateModel(m, key("4"))
		require.NotNil(t, cmd)
		assert.Equal(t, domain.Web, m.Target)
		assert.True(t, m.Busy)
		assert.Equal(t, tui.ActionDoneMsg{}, cmd())
	})

	t.Run("digit of an untargeted platform is refused", func(t *testing.T) {
		server := newMockServer(t, domain.Desktop)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

		m, cmd := updateModel(m, key("2"))
		assert.Nil(t, cmd)
		assert.False(t, m.Busy)
		assert.Equal(t, domain.Desktop, m.Target)
		assert.Contains(t, m.Notice, "iOS is not a target platform")
	})

	t.Run("unbound keys are ignored", func(t *testing.T) {
		server := newMockServer(t)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

		for _, k := range []string{"5", "x", "0"} {
			_, cmd := updateModel(m, key(k))
			assert.Nil(t, cmd, k)
		}
		assert.False(t, m.Busy)
	})

	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k+" quits", func(t *testing.T) {
			server := newMockServer(t)
			m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()

			m, cmd := updateModel(m, key(k))
			require.NotNil(t, cmd)
			assert.True(t, m.Quitting)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_RebuildRequests(t *testing.T) {
	t.Run("deferred while busy", func(t *testing.T) {
		server := newMockServer(t)
		server.EXPECT().Rebuild(gomock.Any()).Times(1)
		m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()
		m.Busy = true

		m, cmd := updateModel(m, tui.RebuildRequestMsg{})
		assert.NotNil(t, cmd, "keeps listening")
		assert.True(t, m.PendingRebuild)

		m, cmd = updateModel(m, tui.ActionDoneMsg{})
		require.NotNil(t, cmd)
		assert.False(t, m.PendingRebuild)
		assert.True(t, m.Busy)
		assert.Equal(t, tui.ActionDoneMsg{}, cmd())
	})

	t.Run("rebuilds immediately when idle", func(t *testing.T) {
		server := newMockServer(t)
		server.EXPECT().Rebuild(gomock.Any()).Times(1)
		ctx, cancel := context.WithCancel(context.Background())
		m := tui.NewModel(ctx, server, io.Discard).WithDisableTick()

		m, cmd := updateModel(m, tui.RebuildRequestMsg{})
		require.NotNil(t, cmd)
		assert.True(t, m.Busy)

		batch, ok := cmd().(tea.BatchMsg)
		require.True(t, ok)
		require.Len(t, batch, 2)
		assert.Equal(t, tui.ActionDoneMsg{}, batch[0]())

		cancel()
		assert.Nil(t, batch[1](), "the listener stops with the context")
	})
}

func TestModel_Tick(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockDevServer(ctrl)
	cfg := domain.DefaultProjectConfig(t.TempDir(), "demo")
	cfg.TargetPlatforms = []domain.Platform{domain.Desktop, domain.Android}
	building := domain.BuildStatus{InProgress: true, Progress: &domain.Progress{Current: 1, Total: 3}}

	gomock.InOrder(
		server.EXPECT().Status().Return(domain.BuildStatus{}),
		server.EXPECT().Status().Return(building),
	)
	gomock.InOrder(
		server.EXPECT().Target().Return(domain.Desktop),
		server.EXPECT().Target().Return(domain.Android),
	)

	m := tui.NewModel(context.Background(), server, io.Discard)
	m, cmd := updateModel(m, tui.TickMsg{})
	assert.NotNil(t, cmd, "polling continues")
	assert.True(t, m.Status.Equal(building))
	assert.Equal(t, domain.Android, m.Target)

	m.WithDisableTick()
	_, cmd = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, 80, m.Width)
}
