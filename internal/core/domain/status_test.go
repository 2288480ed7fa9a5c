package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nativedev/internal/core/domain"
)

func TestBuildStatus_Equal(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	base := domain.BuildStatus{LastBuild: now, Progress: &domain.Progress{Current: 1, Total: 3}, Message: "building"}

	same := base
	same.Progress = &domain.Progress{Current: 1, Total: 3}
	assert.True(t, base.Equal(same))

	moved := base
	moved.Progress = &domain.Progress{Current: 2, Total: 3}
	assert.False(t, base.Equal(moved))

	cleared := base
	cleared.Progress = nil
	assert.False(t, base.Equal(cleared))

	failed := base
	failed.Error = "Android build failed"
	assert.False(t, base.Equal(failed))
	assert.True(t, failed.Failed())
	assert.True(t, base.Built())
	assert.False(t, domain.BuildStatus{}.Built())
}

func TestBuildRecord(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := domain.BuildRecord{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}

	assert.Equal(t, 1500*time.Millisecond, rec.Duration())
	assert.True(t, rec.Succeeded())

	rec.Error = "Web build failed"
	assert.False(t, rec.Succeeded())
}
