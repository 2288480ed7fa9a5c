package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nativedev/internal/adapters/statusapi"
	"go.trai.ch/nativedev/internal/app"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports/mocks"
	"go.trai.ch/nativedev/internal/engine/devserver"
	"go.uber.org/mock/gomock"
)

func newTestComponents(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.Components {
	servers := devserver.NewFactory(
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockWatcherFactory(ctrl),
		mocks.NewMockBrowserOpener(ctrl),
		logger,
	)
	application := app.New(loader, servers, mocks.NewMockHistoryOpener(ctrl), statusapi.NewFactory(logger), logger)
	return &app.Components{App: application, Logger: logger}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	components := newTestComponents(ctrl, mocks.NewMockConfigLoader(ctrl), mocks.NewMockLogger(ctrl))

	provider := func(context.Context) (*app.Components, error) {
		return components, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	loader.EXPECT().Load(".").Return(nil, domain.ErrConfigParseFailed)
	logger.EXPECT().Error(gomock.Any()).Times(1)

	provider := func(context.Context) (*app.Components, error) {
		return newTestComponents(ctrl, loader, logger), nil
	}

	exitCode := run(context.Background(), []string{"dev", "--ci"}, io.Discard, provider, func(a *app.App) {
		a.WithStdout(io.Discard)
	})
	assert.Equal(t, 1, exitCode)
}

// TestRun_Cancel verifies that a cancelled context reaches the running command.
func TestRun_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	loader.EXPECT().Load(".").DoAndReturn(func(string) (*domain.ProjectConfig, error) {
		cancel()
		return nil, context.Canceled
	})

	provider := func(context.Context) (*app.Components, error) {
		return newTestComponents(ctrl, loader, logger), nil
	}

	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"dev"}, io.Discard, provider)
	}()

	select {
	case code := <-done:
		assert.Equal(t, 1, code)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
