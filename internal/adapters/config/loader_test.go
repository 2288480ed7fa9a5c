package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nativedev/internal/adapters/config"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), domain.PrivateFilePerm))
}

func TestLoader_Load_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		gomod    string
		dirName  string
		wantName string
	}{
		{
			name:     "module path",
			gomod:    "module github.com/acme/rocket\n\ngo 1.25\n",
			dirName:  "checkout",
			wantName: "rocket",
		},
		{
			name:     "single element module",
			gomod:    "module rocket\n",
			dirName:  "checkout",
			wantName: "rocket",
		},
		{
			name:     "directory name",
			dirName:  "hello-app",
			wantName: "hello-app",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			root := filepath.Join(t.TempDir(), tt.dirName)
			require.NoError(t, os.Mkdir(root, domain.DirPerm))
			if tt.gomod != "" {
				createFile(t, root, "go.mod", tt.gomod)
			}

			cfg, err := loader.Load(root)
			require.NoError(t, err)

			assert.Equal(t, root, cfg.Root)
			assert.Equal(t, tt.wantName, cfg.Name)
			assert.Equal(t, []domain.Platform{domain.Desktop}, cfg.TargetPlatforms)
			assert.Empty(t, cfg.BuildCommand)
			assert.Equal(t, []string{"go", "run", "."}, cfg.DesktopCommand())
			assert.Equal(t, domain.DefaultWebPort, cfg.Web.Port)
			assert.Equal(t, domain.DefaultDebounce, cfg.Watch.Debounce)
			assert.False(t, cfg.Watch.AutoRebuild)
		})
	}
}

func TestLoader_Load_FullFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
version: "1"
name: rocket
target_platforms: [desktop, IOS, web, web]
build_command: "go run ./cmd/rocket"
ios:
  device_name: "iPhone 15"
  ios_version: "17.2"
android:
  avd_name: Pixel_7
  api_level: 34
  abi: arm64-v8a
web:
  port: 3000
  browsers: [firefox]
  output_dir: public
scripts:
  web: tools/web.sh
watch:
  ignore: [node_modules, build/gen]
  auto_rebuild: true
  debounce: 250ms
status_addr: "127.0.0.1:9090"
`)

	cfg, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, "rocket", cfg.Name)
	assert.Equal(t, []domain.Platform{domain.Desktop, domain.IOS, domain.Web}, cfg.TargetPlatforms)
	assert.Equal(t, []string{"go", "run", "./cmd/rocket"}, cfg.DesktopCommand())
	assert.Equal(t, "iPhone 15", cfg.IOS.DeviceName)
	assert.Equal(t, "17.2", cfg.IOS.Version)
	assert.Equal(t, "rocket", cfg.IOS.Target)
	assert.Equal(t, "Pixel_7", cfg.Android.AVDName)
	assert.Equal(t, 34, cfg.Android.APILevel)
	assert.Equal(t, 3000, cfg.Web.Port)
	assert.Equal(t, []string{"firefox"}, cfg.Web.Browsers)
	assert.Equal(t, "tools/web.sh", cfg.Scripts.Web)
	assert.Equal(t, domain.DefaultAndroidScript, cfg.Scripts.Android)
	assert.True(t, cfg.Watch.AutoRebuild)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "127.0.0.1:9090", cfg.StatusAddr)
	assert.Equal(t,
		[]string{"target", ".git", domain.DevDirName, "public", "node_modules", "build/gen"},
		cfg.IgnoreFragments())
}

func TestLoader_Load_PathResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	loader := config.NewLoader(mockLogger)

	t.Run("found in parent", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, domain.ConfigFileName, "name: parent\n")
		nested := filepath.Join(root, "cmd", "app")
		require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

		cfg, err := loader.Load(nested)
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
		assert.Equal(t, "parent", cfg.Name)
	})

	t.Run("relative root", func(t *testing.T) {
		base := t.TempDir()
		configDir := filepath.Join(base, "config")
		require.NoError(t, os.Mkdir(configDir, domain.DirPerm))
		createFile(t, configDir, domain.ConfigFileName, "root: ..\n")

		cfg, err := loader.Load(configDir)
		require.NoError(t, err)
		assert.Equal(t, base, cfg.Root)
		assert.Equal(t, filepath.Base(base), cfg.Name)
	})

	t.Run("name from go.mod next to config", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, domain.ConfigFileName, "target_platforms: [android]\n")
		createFile(t, root, "go.mod", "module example.com/team/droid\n")

		cfg, err := loader.Load(root)
		require.NoError(t, err)
		assert.Equal(t, "droid", cfg.Name)
		assert.Equal(t, []domain.Platform{domain.Android}, cfg.TargetPlatforms)
	})
}

func TestLoader_Load_WarnsWithoutTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)
	loader := config.NewLoader(mockLogger)

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "name: quiet\n")

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{domain.Desktop}, cfg.TargetPlatforms)
}

func TestLoader_Load_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "malformed yaml",
			content: "name: [unterminated\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "unknown platform",
			content: "target_platforms: [desktop, windows]\n",
			wantErr: domain.ErrConfigInvalid,
			wantMsg: domain.ErrUnknownPlatform.Error(),
		},
		{
			name:    "bad debounce",
			content: "target_platforms: [desktop]\nwatch:\n  debounce: soon\n",
			wantErr: domain.ErrConfigInvalid,
			wantMsg: "watch.debounce",
		},
		{
			name:    "unknown schema version",
			content: "version: \"2\"\ntarget_platforms: [desktop]\n",
			wantErr: domain.ErrConfigInvalid,
			wantMsg: "unsupported schema version",
		},
		{
			name:    "port out of range",
			content: "target_platforms: [web]\nweb:\n  port: 70000\n",
			wantErr: domain.ErrConfigInvalid,
			wantMsg: "web.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			loader := config.NewLoader(mocks.NewMockLogger(ctrl))

			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := loader.Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestLoader_Load_SkipsConfigDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	// A directory named like the config file is skipped during discovery.
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), domain.DirPerm))

	cfg, err := loader.Load(root)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
}
