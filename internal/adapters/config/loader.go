// Package config provides the configuration loader for nativedev.
package config

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

const maxPort = 65535

// SchemaVersion is the only nativedev.yaml version understood. An empty
// version means the current one.
const SchemaVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds nativedev.yaml in cwd or one of its parents and resolves it into a
// ProjectConfig. Without a configuration file the defaults are rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "cwd", cwd)
	}

	configPath, err := findConfiguration(absCwd)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return domain.DefaultProjectConfig(absCwd, detectProjectName(absCwd)), nil
	}
	if err != nil {
		return nil, err
	}

	var nativefile Nativefile
	if err := readAndUnmarshalYAML(configPath, &nativefile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.toDomain(&nativefile, resolveRoot(configPath, nativefile.Root))
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) toDomain(f *Nativefile, root string) (*domain.ProjectConfig, error) {
	if f.Version != "" && f.Version != SchemaVersion {
		return nil, zerr.With(invalid("unsupported schema version"), "version", f.Version)
	}

	cfg := &domain.ProjectConfig{
		Root:         root,
		Name:         f.Name,
		BuildCommand: f.BuildCommand,
		Desktop:      domain.DesktopConfig{Binary: f.Desktop.Binary},
		IOS: domain.IOSConfig{
			DeviceName:       f.IOS.DeviceName,
			Version:          f.IOS.Version,
			Target:           f.IOS.Target,
			SimulatorCommand: f.IOS.SimulatorCommand,
		},
		Android: domain.AndroidConfig{
			AVDName:  f.Android.AVDName,
			APILevel: f.Android.APILevel,
			ABI:      f.Android.ABI,
			Emulator: f.Android.Emulator,
		},
		Web: domain.WebConfig{
			Port:      f.Web.Port,
			Browsers:  f.Web.Browsers,
			OutputDir: f.Web.OutputDir,
		},
		Scripts: domain.ScriptsConfig{
			IOS:     f.Scripts.IOS,
			Android: f.Scripts.Android,
			Web:     f.Scripts.Web,
		},
		Watch: domain.WatchConfig{
			Ignore:      f.Watch.Ignore,
			AutoRebuild: f.Watch.AutoRebuild,
		},
		StatusAddr: f.StatusAddr,
	}

	if cfg.Name == "" {
		cfg.Name = detectProjectName(root)
	}

	platforms, err := parsePlatforms(f.TargetPlatforms)
	if err != nil {
		return nil, err
	}
	if len(platforms) == 0 {
		l.Logger.Warn("no target_platforms in " + domain.ConfigFileName + ", defaulting to desktop")
	}
	cfg.TargetPlatforms = platforms

	if f.Watch.Debounce != "" {
		debounce, parseErr := time.ParseDuration(f.Watch.Debounce)
		if parseErr != nil || debounce < 0 {
			return nil, zerr.With(invalid("watch.debounce must be a non-negative duration"), "debounce", f.Watch.Debounce)
		}
		cfg.Watch.Debounce = debounce
	}

	if f.Web.Port < 0 || f.Web.Port > maxPort {
		return nil, zerr.With(invalid("web.port out of range"), "port", f.Web.Port)
	}
	if f.Android.APILevel < 0 {
		return nil, zerr.With(invalid("android.api_level must not be negative"), "api_level", f.Android.APILevel)
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// parsePlatforms resolves platform names in order, dropping duplicates.
func parsePlatforms(names []string) ([]domain.Platform, error) {
	platforms := make([]domain.Platform, 0, len(names))
	seen := make(map[domain.Platform]bool, len(names))
	for _, name := range names {
		p, err := domain.ParsePlatform(name)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "field", "target_platforms")
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}
	return platforms, nil
}

func invalid(reason string) error {
	return zerr.Wrap(zerr.New(reason), domain.ErrConfigInvalid.Error())
}

// detectProjectName names a project after the last element of its Go module
// path, falling back to the directory name.
func detectProjectName(root string) string {
	// #nosec G304 -- go.mod path is derived from the project root
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err == nil {
		if modulePath := modfile.ModulePath(data); modulePath != "" {
			return path.Base(modulePath)
		}
	}
	return fallbackName(root)
}

func fallbackName(root string) string {
	base := filepath.Base(root)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return domain.DefaultProjectName
	}
	return base
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
