package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when no nativedev.yaml exists in the directory tree.
	ErrConfigNotFound = zerr.New("configuration file not found")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrConfigInvalid is returned when the configuration is well-formed but unusable.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrUnknownPlatform is returned when a platform name does not match any supported platform.
	ErrUnknownPlatform = zerr.New("unknown platform")

	// ErrPlatformNotTargeted is returned when switching to a platform the project does not target.
	ErrPlatformNotTargeted = zerr.New("platform is not a target of this project")

	// ErrWatchFailed is returned when the file watch cannot be installed.
	ErrWatchFailed = zerr.New("failed to watch project")

	// ErrWatchRootNotFound is returned when the watch root does not exist.
	ErrWatchRootNotFound = zerr.New("watch root does not exist")

	// ErrWatcherAlreadyStarted is returned when Start is called twice on the same watcher.
	ErrWatcherAlreadyStarted = zerr.New("watcher already started")

	// ErrScriptNotFound is the kind of build errors caused by a missing build script.
	ErrScriptNotFound = zerr.New("build script not found")

	// ErrToolFailed is the kind of build errors caused by a tool exiting with a nonzero status.
	ErrToolFailed = zerr.New("build tool failed")

	// ErrSpawnFailed is the kind of build errors caused by a process that could not be started.
	ErrSpawnFailed = zerr.New("failed to spawn process")

	// ErrEmptyCommand is returned when a command line has no program.
	ErrEmptyCommand = zerr.New("command is empty")

	// ErrProcessKillFailed is returned when a process group cannot be signalled.
	ErrProcessKillFailed = zerr.New("failed to kill process")

	// ErrHistoryOpenFailed is returned when the build history database cannot be opened.
	ErrHistoryOpenFailed = zerr.New("failed to open build history")

	// ErrHistoryWriteFailed is returned when a build record cannot be stored.
	ErrHistoryWriteFailed = zerr.New("failed to write build history")

	// ErrHistoryReadFailed is returned when build records cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read build history")

	// ErrBrowserOpenFailed is returned when no browser could be launched.
	ErrBrowserOpenFailed = zerr.New("failed to open browser")

	// ErrServerFailed is returned when an HTTP listener stops with an error.
	ErrServerFailed = zerr.New("http server failed")
)
