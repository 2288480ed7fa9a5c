package tui_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nativedev/internal/adapters/tui"
	"go.trai.ch/nativedev/internal/core/domain"
)

func TestModel_View(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name     string
		status   domain.BuildStatus
		notice   string
		contains []string
		excludes []string
	}{
		{
			name:     "waiting",
			status:   domain.BuildStatus{},
			contains: []string{"Status: Waiting for first build"},
			excludes: []string{"Error:", "[0/"},
		},
		{
			name: "building with progress",
			status: domain.BuildStatus{
				InProgress: true,
				Progress:   &domain.Progress{Current: 1, Total: 3},
				Message:    "building",
			},
			contains: []string{"Status: Building...", "[1/3] building"},
			excludes: []string{"Error:"},
		},
		{
			name: "failed",
			status: domain.BuildStatus{
				LastBuild: time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local),
				Error:     "build tool failed: exit status 2",
			},
			contains: []string{"Status: Error", "Error: build tool failed: exit status 2"},
			excludes: []string{"Status: Ready"},
		},
		{
			name: "ready",
			status: domain.BuildStatus{
				LastBuild: time.Date(2026, 10, 19, 9, 30, 5, 0, time.Local),
				Progress:  &domain.Progress{Current: 3, Total: 3},
				Message:   "ready",
			},
			contains: []string{"Status: Ready", "last build 09:30:05", "[3/3] ready"},
		},
		{
			name:     "notice",
			notice:   "iOS is not a target platform of this project",
			contains: []string{"iOS is not a target platform of this project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newMockServer(t, domain.Desktop, domain.Web)
			m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()
			m.Status = tt.status
			m.Notice = tt.notice

			view := m.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, view, unwanted)
			}
		})
	}
}

func TestModel_View_Chrome(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	server := newMockServer(t, domain.Desktop, domain.Web)
	m := tui.NewModel(context.Background(), server, io.Discard).WithDisableTick()
	m.Target = domain.Web

	view := m.View()
	assert.Contains(t, view, "nativedev demo")
	assert.Contains(t, view, "→ [4] Web")
	assert.Contains(t, view, "[1] Desktop")
	assert.Contains(t, view, "[2] iOS")
	assert.NotContains(t, view, "→ [1] Desktop")
	assert.Contains(t, view, "r rebuild")
	assert.Contains(t, view, "1-4 platform")
	assert.Contains(t, view, "q quit")
}
