package process_test

import (
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/process"
)

func TestChild_TerminateStopsProcessGroup(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	exitCalled := make(chan struct{})
	child, err := process.Start(exec.Command("sh", "-c", "sleep 30 & wait"), func() { close(exitCalled) })
	require.NoError(t, err)
	assert.Positive(t, child.Pid())

	require.NoError(t, child.Terminate())

	select {
	case <-child.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("process group did not exit after SIGTERM")
	}
	<-exitCalled

	// The group is gone; signalling it again is not an error.
	assert.NoError(t, child.Terminate())
}

func TestChild_StartError(t *testing.T) {
	_, err := process.Start(exec.Command("/nonexistent/binary/for/test"), nil)
	require.Error(t, err)
}

func TestChild_ReapsNaturalExit(t *testing.T) {
	child, err := process.Start(exec.Command("true"), nil)
	require.NoError(t, err)

	select {
	case <-child.Exited():
	case <-time.After(5 * time.Second):
		t.Fatal("process was not reaped")
	}
}
