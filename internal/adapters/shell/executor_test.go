package shell_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/process"
	"go.trai.ch/nativedev/internal/adapters/shell"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(error) {}

func (l *recordingLogger) lines() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(append(append([]string{}, l.infos...), l.warns...), "\n")
}

func TestExecutor_Run_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want int
	}{
		{name: "success", argv: []string{"sh", "-c", "exit 0"}, want: 0},
		{name: "failure", argv: []string{"sh", "-c", "exit 3"}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := shell.NewExecutor(&recordingLogger{})

			code, err := executor.Run(context.Background(), ports.Command{Argv: tt.argv, Dir: t.TempDir()})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecutor_Run_LogsOutputWithLabel(t *testing.T) {
	log := &recordingLogger{}
	executor := shell.NewExecutor(log)

	code, err := executor.Run(context.Background(), ports.Command{
		Argv:  []string{"sh", "-c", "echo line1; printf part1; sleep 0.1; echo part2; printf tail"},
		Dir:   t.TempDir(),
		Label: "web",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	out := log.lines()
	assert.Contains(t, out, "[web] line1")
	assert.Contains(t, out, "[web] part1part2")
	assert.Contains(t, out, "[web] tail")
}

func TestExecutor_Run_ExtraEnvironment(t *testing.T) {
	log := &recordingLogger{}
	executor := shell.NewExecutor(log)

	code, err := executor.Run(context.Background(), ports.Command{
		Argv: []string{"sh", "-c", "echo avd=$NATIVEDEV_ANDROID_AVD"},
		Dir:  t.TempDir(),
		Env:  []string{"NATIVEDEV_ANDROID_AVD=Pixel_7"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, log.lines(), "avd=Pixel_7")
}

func TestExecutor_Run_StartErrors(t *testing.T) {
	executor := shell.NewExecutor(&recordingLogger{})

	_, err := executor.Run(context.Background(), ports.Command{})
	require.ErrorIs(t, err, domain.ErrEmptyCommand)

	_, err = executor.Run(context.Background(), ports.Command{Argv: []string{"nativedev-no-such-tool"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to start command")
}

func TestExecutor_Spawn(t *testing.T) {
	log := &recordingLogger{}
	executor := shell.NewExecutor(log)

	proc, err := executor.Spawn(context.Background(), ports.Command{
		Argv:  []string{"sh", "-c", "echo started; echo oops >&2; sleep 30"},
		Dir:   t.TempDir(),
		Label: "android",
	})
	require.NoError(t, err)
	assert.Positive(t, proc.Pid())

	require.Eventually(t, func() bool {
		return strings.Contains(log.lines(), "[android] started")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, proc.Terminate())

	child, ok := proc.(*process.Child)
	require.True(t, ok)
	select {
	case <-child.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("spawned process did not exit")
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Contains(t, log.warns, "[android] oops")
}

func TestExecutor_Spawn_Errors(t *testing.T) {
	executor := shell.NewExecutor(&recordingLogger{})

	_, err := executor.Spawn(context.Background(), ports.Command{})
	require.ErrorIs(t, err, domain.ErrEmptyCommand)

	_, err = executor.Spawn(context.Background(), ports.Command{Argv: []string{"nativedev-no-such-tool"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSpawnFailed.Error())
}
