package domain

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when the project configuration leaves a field empty.
const (
	DefaultProjectName      = "native-project"
	DefaultDesktopCommand   = "go run ."
	DefaultIOSScript        = "scripts/build-ios.sh"
	DefaultAndroidScript    = "scripts/build-android.sh"
	DefaultWebScript        = "scripts/build-web.sh"
	DefaultSimulatorCommand = "open -a Simulator"
	DefaultEmulator         = "emulator"
	DefaultAVDName          = "Pixel_4"
	DefaultWebPort          = 8080
	DefaultWebOutputDir     = "dist"
	DefaultBuildOutputDir   = "target"
	DefaultDebounce         = 100 * time.Millisecond
)

// ProjectConfig is the resolved configuration of the project being served.
type ProjectConfig struct {
	// Root is the absolute project directory; scripts resolve against it.
	Root            string
	Name            string
	TargetPlatforms []Platform
	// BuildCommand is the desktop build-and-run command line.
	BuildCommand string
	Desktop      DesktopConfig
	IOS          IOSConfig
	Android      AndroidConfig
	Web          WebConfig
	Scripts      ScriptsConfig
	Watch        WatchConfig
	// StatusAddr enables the status API when non-empty.
	StatusAddr string
}

// DesktopConfig configures the desktop pipeline.
type DesktopConfig struct {
	// Binary, when set, is spawned after BuildCommand has run to completion.
	Binary string
}

// IOSConfig configures the iOS pipeline.
type IOSConfig struct {
	DeviceName       string
	Version          string
	Target           string
	SimulatorCommand string
}

// AndroidConfig configures the Android pipeline.
type AndroidConfig struct {
	AVDName  string
	APILevel int
	ABI      string
	Emulator string
}

// WebConfig configures the web pipeline.
type WebConfig struct {
	Port      int
	Browsers  []string
	OutputDir string
}

// ScriptsConfig names the build script of each scripted platform, relative to Root.
type ScriptsConfig struct {
	IOS     string
	Android string
	Web     string
}

// WatchConfig configures change detection.
type WatchConfig struct {
	Ignore      []string
	AutoRebuild bool
	Debounce    time.Duration
}

// DefaultProjectConfig returns the configuration used when no file is present.
func DefaultProjectConfig(root, name string) *ProjectConfig {
	cfg := &ProjectConfig{
		Root:            root,
		Name:            name,
		TargetPlatforms: []Platform{Desktop},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every empty field with its default value.
func (c *ProjectConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultProjectName
	}
	if len(c.TargetPlatforms) == 0 {
		c.TargetPlatforms = []Platform{Desktop}
	}
	if c.IOS.Target == "" {
		c.IOS.Target = c.Name
	}
	if c.IOS.SimulatorCommand == "" {
		c.IOS.SimulatorCommand = DefaultSimulatorCommand
	}
	if c.Android.AVDName == "" {
		c.Android.AVDName = DefaultAVDName
	}
	if c.Android.Emulator == "" {
		c.Android.Emulator = DefaultEmulator
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultWebPort
	}
	if c.Web.OutputDir == "" {
		c.Web.OutputDir = DefaultWebOutputDir
	}
	if c.Scripts.IOS == "" {
		c.Scripts.IOS = DefaultIOSScript
	}
	if c.Scripts.Android == "" {
		c.Scripts.Android = DefaultAndroidScript
	}
	if c.Scripts.Web == "" {
		c.Scripts.Web = DefaultWebScript
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}

// Targets reports whether p is one of the project's target platforms.
func (c *ProjectConfig) Targets(p Platform) bool {
	return slices.Contains(c.TargetPlatforms, p)
}

// DesktopCommand returns the desktop command line split on whitespace. An unset
// BuildCommand falls back to DefaultDesktopCommand; a blank one yields nil.
func (c *ProjectConfig) DesktopCommand() []string {
	if c.BuildCommand == "" {
		return strings.Fields(DefaultDesktopCommand)
	}
	return strings.Fields(c.BuildCommand)
}

// IgnoreFragments returns the ignore fragments of the watcher: build outputs
// and VCS metadata followed by the configured ones, without duplicates.
func (c *ProjectConfig) IgnoreFragments() []string {
	fragments := []string{DefaultBuildOutputDir, ".git", DevDirName}
	extra := append([]string{c.Web.OutputDir}, c.Watch.Ignore...)
	for _, f := range extra {
		if f != "" && !slices.Contains(fragments, f) {
			fragments = append(fragments, f)
		}
	}
	return fragments
}

// ScriptEnv returns the NATIVEDEV_* variables passed to the build script of p.
// Unset optional values are omitted.
func (c *ProjectConfig) ScriptEnv(p Platform) []string {
	env := []string{
		"NATIVEDEV_PROJECT=" + c.Name,
		"NATIVEDEV_PLATFORM=" + p.String(),
		"NATIVEDEV_ROOT=" + c.Root,
	}
	add := func(key, value string) {
		if value != "" {
			env = append(env, key+"="+value)
		}
	}

	switch p {
	case IOS:
		add("NATIVEDEV_IOS_TARGET", c.IOS.Target)
		add("NATIVEDEV_IOS_DEVICE", c.IOS.DeviceName)
		add("NATIVEDEV_IOS_VERSION", c.IOS.Version)
	case Android:
		add("NATIVEDEV_ANDROID_AVD", c.Android.AVDName)
		if c.Android.APILevel > 0 {
			add("NATIVEDEV_ANDROID_API_LEVEL", strconv.Itoa(c.Android.APILevel))
		}
		add("NATIVEDEV_ANDROID_ABI", c.Android.ABI)
	case Web:
		add("NATIVEDEV_WEB_OUTPUT_DIR", c.Web.OutputDir)
		add("NATIVEDEV_WEB_PORT", strconv.Itoa(c.Web.Port))
	}
	return env
}
